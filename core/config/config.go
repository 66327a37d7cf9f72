package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/minish.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "minish.yaml"
)

type Configuration struct {
	HistoryFile        string            `json:"history_file"`
	HistorySize        int               `json:"history_size" validate:"gte=1,lte=1000000"`
	MaxLoopIterations  int               `json:"max_loop_iterations" validate:"gte=1"`
	MaxBackgroundJobs  int               `json:"max_background_jobs" validate:"gte=1,lte=4096"`
	CopyBytesPerSecond int64             `json:"copy_bytes_per_second" validate:"gte=0"`
	Greeting           string            `json:"greeting"`
	Aliases            map[string]string `json:"aliases" validate:"dive,keys,required,endkeys,required"`
	Env                map[string]string `json:"env"`
	EnvFiles           []string          `json:"env_files" validate:"dive,required"`

	SSH SSH `json:"ssh"`
}

type SSH struct {
	Port             int    `json:"port" validate:"gte=0,lte=65535"`
	HostKeyFile      string `json:"host_key_file"`
	Password         string `json:"password" validate:"required_without=AllowAnyPassword"`
	AllowAnyPassword bool   `json:"allow_any_password"`
	// RootFsTar is a tar image every connection starts from. Writes stay in the
	// connection's own in-memory layer.
	RootFsTar string `json:"root_fs_tar"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// DefaultData returns the raw built-in configuration file.
func DefaultData() []byte {
	return append([]byte(nil), defaultConfigData...)
}
