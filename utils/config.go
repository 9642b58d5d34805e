package utils

import (
	"fmt"
	"genoscope/api/models"
	"os"

	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

const ConfigFileEnvVar = "GENOSCOPE_CONFIG_FILE"

// LoadConfig layers, in order: built-in defaults, the yaml file named
// by GENOSCOPE_CONFIG_FILE (if any), and GENOSCOPE_* environment variables
func LoadConfig() (*models.Config, error) {
	cfg := models.DefaultConfig()

	if configFile := os.Getenv(ConfigFileEnvVar); configFile != "" {
		if err := LoadConfigFile(configFile, &cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	return &cfg, nil
}

func LoadConfigFile(path string, cfg *models.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}
