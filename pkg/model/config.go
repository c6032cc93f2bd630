package model

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint is the Edamam nutrition analysis endpoint.
const DefaultEndpoint = "https://api.edamam.com/api/nutrition-data"

// Config holds runtime configuration for nutrilog.
type Config struct {
	DataRoot        string        `yaml:"data_root" mapstructure:"data_root"`                 // Where the log, rendered charts and PIDs live
	LogFile         string        `yaml:"log_file" mapstructure:"log_file"`                   // CSV log; may be a glob for read-only commands
	Port            int           `yaml:"port" mapstructure:"port"`                           // Dashboard HTTP port
	AppID           string        `yaml:"app_id" mapstructure:"app_id"`                       // Edamam application ID
	AppKey          string        `yaml:"app_key" mapstructure:"app_key"`                     // Edamam application key
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint"`                   // Nutrition API endpoint
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`                     // HTTP client timeout
	LegacyCarbsUnit bool          `yaml:"legacy_carbs_unit" mapstructure:"legacy_carbs_unit"` // Carbs borrows the Carbohydrates unit
	Display         []string      `yaml:"display" mapstructure:"display"`                     // Nutrients shown in the breakdown chart
}

// Credentials authenticate requests against the nutrition API.
type Credentials struct {
	AppID  string
	AppKey string
}

// Complete reports whether both halves of the credentials are set.
func (c Credentials) Complete() bool {
	return c.AppID != "" && c.AppKey != ""
}

// Credentials returns the API credentials carried by the config.
func (c Config) Credentials() Credentials {
	return Credentials{AppID: c.AppID, AppKey: c.AppKey}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	root := filepath.Join(home, ".nutrilog")
	return Config{
		DataRoot: root,
		LogFile:  filepath.Join(root, "daily_nutrition.csv"),
		Port:     8765,
		Endpoint: DefaultEndpoint,
		Timeout:  10 * time.Second,
		Display:  NutrientNames(DefaultDisplay),
	}
}
