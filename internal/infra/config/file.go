package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedConfigFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedConfigFormat = errors.New("unsupported config file format")

// fileConfig mirrors Config with file-friendly types. Zero values mean "not set".
type fileConfig struct {
	Host          string `yaml:"host" toml:"host"`
	Port          int    `yaml:"port" toml:"port"`
	HTTPTimeout   string `yaml:"http_timeout" toml:"http_timeout"`
	NASABaseURL   string `yaml:"nasa_base_url" toml:"nasa_base_url"`
	ImagesBaseURL string `yaml:"images_base_url" toml:"images_base_url"`
	ErrorStyle    string `yaml:"error_style" toml:"error_style"`
	LogLevel      string `yaml:"log_level" toml:"log_level"`
}

// LoadFile layers defaults, then the file at path, then environment variables.
// An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := fc.apply(&cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config file %s", path)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, errors.Wrapf(err, "parse yaml config %s", path)
		}
	case ".toml":
		if _, err := toml.Decode(string(raw), &fc); err != nil {
			return nil, errors.Wrapf(err, "parse toml config %s", path)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedConfigFormat, "%s", path)
	}
	return &fc, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return errors.Wrap(err, "http_timeout")
		}
		cfg.HTTPTimeout = d
	}
	if fc.NASABaseURL != "" {
		cfg.NASABaseURL = strings.TrimRight(fc.NASABaseURL, "/")
	}
	if fc.ImagesBaseURL != "" {
		cfg.ImagesBaseURL = strings.TrimRight(fc.ImagesBaseURL, "/")
	}
	if fc.ErrorStyle != "" {
		cfg.ErrorStyle = strings.ToLower(fc.ErrorStyle)
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(fc.LogLevel)
	}
	return nil
}
