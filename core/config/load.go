package config

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from path, which may be a minish.yaml file or
// the directory holding one.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	if isDir, err := afero.IsDir(fs, path); err == nil && isDir {
		path = filepath.Join(path, ConfigurationName)
	}

	configContents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	// Start from the defaults so a partial file only overrides what it sets.
	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// LoadOrDefault loads path if it exists, otherwise the built-in defaults are
// used.
func LoadOrDefault(fs afero.Fs, path string) (*Configuration, error) {
	if path != "" {
		if exists, err := afero.Exists(fs, path); err != nil || exists {
			return Load(fs, path)
		}
	}
	return Default(), nil
}

// Initialize writes the default configuration into dir. An existing file is
// left alone.
func Initialize(fs afero.Fs, dir string, log io.Writer) (string, error) {
	path := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fs, path)
	switch {
	case err != nil:
		return "", err
	case exists:
		fmt.Fprintf(log, "%s already exists, skipping\n", path)
		return path, nil
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	if err := afero.WriteFile(fs, path, defaultConfigData, 0644); err != nil {
		return "", err
	}
	fmt.Fprintf(log, "wrote %s\n", path)
	return path, nil
}
