package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFilename is the per-data-dir configuration file.
const ConfigFilename = "config.yaml"

// FileConfig is the optional YAML configuration stored alongside the
// data (e.g. <data>/config.yaml). Flags and options take precedence.
type FileConfig struct {
	Storage struct {
		// Backend is "file" or "sqlite". Empty means "file".
		Backend string `yaml:"backend"`
	} `yaml:"storage"`

	Gemini struct {
		Model            string `yaml:"model"`
		MinContentLength int    `yaml:"min_content_length"`
	} `yaml:"gemini"`
}

// LoadConfig reads the config file under dataDir. A missing file
// yields the zero config; a malformed one is an error.
func LoadConfig(dataDir string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(dataDir, ConfigFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
