package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/govaudit/pkg/engine"
)

// CompanyConfig is the default company profile applied to new assessments
type CompanyConfig struct {
	Name     string `yaml:"name"`
	Industry string `yaml:"industry"`
	Size     string `yaml:"size"`
	Region   string `yaml:"region"`
}

// LogConfig selects the log output
type LogConfig struct {
	Format string `yaml:"format"` // text or json
}

// Config is the CLI configuration stored in ~/.govaudit/config.yaml
type Config struct {
	CostBasis engine.CostBasis `yaml:"cost_basis"`
	Company   CompanyConfig    `yaml:"company"`
	Log       LogConfig        `yaml:"log"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		CostBasis: engine.DefaultCostBasis(),
		Log:       LogConfig{Format: "text"},
	}
}

// Override points the configuration at another directory (used by tests and --config-dir)
var Override string

func GetConfigPath() (string, error) {
	configDir := Override
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".govaudit")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.CostBasis = cfg.CostBasis.Normalize()
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600: the file may carry client names and rates
	return os.WriteFile(path, data, 0600)
}
