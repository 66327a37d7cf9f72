package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.HistorySize)
	assert.Equal(t, 1000, cfg.MaxLoopIterations)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"zero history": {
			mutate:  func(c *Configuration) { c.HistorySize = 0 },
			wantErr: "history_size",
		},
		"negative rate": {
			mutate:  func(c *Configuration) { c.CopyBytesPerSecond = -1 },
			wantErr: "copy_bytes_per_second",
		},
		"empty alias": {
			mutate:  func(c *Configuration) { c.Aliases = map[string]string{"ll": ""} },
			wantErr: "aliases",
		},
		"bad port": {
			mutate:  func(c *Configuration) { c.SSH.Port = 70000 },
			wantErr: "port",
		},
		"no password": {
			mutate:  func(c *Configuration) { c.SSH.Password = "" },
			wantErr: "password",
		},
		"any password": {
			mutate: func(c *Configuration) {
				c.SSH.Password = ""
				c.SSH.AllowAnyPassword = true
			},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
