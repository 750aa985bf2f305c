package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL  = "http://localhost:8080"
	DefaultListenAddr = ":8080"
)

// Config holds the client's and the collection service's settings.
// Values absent from the file fall back to defaults; flags override
// both.
type Config struct {
	ServerURL  string `yaml:"server_url"`
	ListenAddr string `yaml:"listen_addr"`
	DataFile   string `yaml:"data_file"`
}

// DefaultPath returns ~/.noteapp.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".noteapp.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error;
// it just yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		ServerURL:  DefaultServerURL,
		ListenAddr: DefaultListenAddr,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	return cfg, nil
}
