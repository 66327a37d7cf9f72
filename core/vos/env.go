package vos

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// VEnv represents a virtual environment.
type VEnv interface {
	// UserHomeDir returns the current user's home directory.
	UserHomeDir() (string, error)

	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// Setenv sets the value of the environment variable named by the key.
	// It returns an error, if any.
	Setenv(key, value string) error

	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string

	// ExpandEnv replaces ${var} or $var in the string according to the values of
	// the current environment variables. References to undefined variables are
	// replaced by the empty string.
	ExpandEnv(s string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value", sorted by key.
	Environ() []string

	// Clearenv deletes all environment variables.
	Clearenv()
}

type EnvironFetcher interface {
	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// EnvList is a literal list of "key=value" strings.
type EnvList []string

// Environ implements EnvironFetcher.
func (e EnvList) Environ() []string {
	return append([]string(nil), e...)
}

// CopyEnv copies all the environment variables from src to dst.
func CopyEnv(dst VEnv, src EnvironFetcher) error {
	for _, e := range src.Environ() {
		key, value := splitEnv(e)
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

func splitEnv(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return key, value
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}
	// Ignore error, it will never be set for MapEnv.
	_ = CopyEnv(out, EnvList(environ))
	return out
}

// MapEnv implemnts an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// UserHomeDir implements VEnv.UserHomeDir.
func (m *MapEnv) UserHomeDir() (string, error) {
	return m.Getenv("HOME"), nil
}

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// ExpandEnv implements VEnv.ExpandEnv.
func (m *MapEnv) ExpandEnv(s string) string {
	return os.Expand(s, m.Getenv)
}

// Environ implements VEnv.Environ.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}

// Clearenv implements VEnv.Clearenv.
func (m *MapEnv) Clearenv() {
	m.rw.Lock()
	defer m.rw.Unlock()
	m.env = make(map[string]string)
}

// Inherited is the read-only environment a session starts from.
type Inherited interface {
	EnvironFetcher
	LookupEnv(key string) (string, bool)
}

// ProcessEnv reads the environment of the running process.
type ProcessEnv struct{}

// LookupEnv implements Inherited.
func (ProcessEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ implements Inherited.
func (ProcessEnv) Environ() []string {
	return os.Environ()
}

// OverlayEnv is a session environment layered on top of an inherited one.
// Writes only touch the session layer; reads fall back to the inherited
// environment when the session layer has no value.
type OverlayEnv struct {
	session   *MapEnv
	inherited Inherited
}

var _ VEnv = (*OverlayEnv)(nil)

// NewOverlayEnv creates an empty session layer over inherited. A nil
// inherited environment behaves as an empty one.
func NewOverlayEnv(inherited Inherited) *OverlayEnv {
	if inherited == nil {
		inherited = NewMapEnv()
	}
	return &OverlayEnv{session: NewMapEnv(), inherited: inherited}
}

// UserHomeDir implements VEnv.UserHomeDir.
func (o *OverlayEnv) UserHomeDir() (string, error) {
	return o.Getenv("HOME"), nil
}

// Unsetenv implements VEnv.Unsetenv. Inherited values become visible again.
func (o *OverlayEnv) Unsetenv(key string) error {
	return o.session.Unsetenv(key)
}

// Setenv implements VEnv.Setenv.
func (o *OverlayEnv) Setenv(key, value string) error {
	return o.session.Setenv(key, value)
}

// LookupEnv implements VEnv.LookupEnv.
func (o *OverlayEnv) LookupEnv(key string) (string, bool) {
	if val, ok := o.session.LookupEnv(key); ok {
		return val, true
	}
	return o.inherited.LookupEnv(key)
}

// Getenv implements VEnv.Getenv.
func (o *OverlayEnv) Getenv(key string) string {
	val, _ := o.LookupEnv(key)
	return val
}

// ExpandEnv implements VEnv.ExpandEnv.
func (o *OverlayEnv) ExpandEnv(s string) string {
	return os.Expand(s, o.Getenv)
}

// Environ implements VEnv.Environ. Session values win over inherited ones.
func (o *OverlayEnv) Environ() []string {
	merged := NewMapEnvFromEnvList(o.inherited.Environ())
	_ = CopyEnv(merged, o.session)
	return merged.Environ()
}

// Clearenv implements VEnv.Clearenv. Only the session layer is cleared.
func (o *OverlayEnv) Clearenv() {
	o.session.Clearenv()
}

// Session returns the variables set during this session.
func (o *OverlayEnv) Session() []string {
	return o.session.Environ()
}
