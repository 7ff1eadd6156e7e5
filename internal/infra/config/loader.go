// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/peterfpeterson/finddata/internal/domain"
)

// EnvVar names the environment variable that points at an alternate
// configuration file.
const EnvVar = "FINDDATA_CONFIG"

type yamlConfig struct {
	Catalog struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"catalog"`
	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
}

// Resolve picks the configuration file to read. An explicit flag value
// wins, then EnvVar, then the per-user default location. Only paths the
// user named are required to exist; the default is read when present.
func Resolve(flagPath string) (path string, required bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", "finddata", "config.yaml"), false
}

// Load reads the file at path and overlays it on the built-in defaults.
// A missing file is an error only when required; any value absent from
// the file keeps its default.
func Load(path string, required bool) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto yamlConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
		}
	}

	if dto.Catalog.BaseURL != "" {
		cfg.Catalog.BaseURL = dto.Catalog.BaseURL
	}
	if dto.HTTP.TimeoutSeconds > 0 {
		cfg.HTTP.Timeout = time.Duration(dto.HTTP.TimeoutSeconds) * time.Second
	}
	return cfg, nil
}
