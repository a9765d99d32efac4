package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"finboard/internal/pattern"
)

// Config holds the command-line client settings.
type Config struct {
	APIURL          string        `mapstructure:"api_url"`
	Token           string        `mapstructure:"token"`
	PipelineKey     string        `mapstructure:"pipeline_key"`
	MaxPatternWords int           `mapstructure:"max_pattern_words"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads ~/.config/finboard/config.toml (or the file named by
// FINBOARD_CONFIG) and applies FINBOARD_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("api_url", "http://localhost:8080/api/v1")
	v.SetDefault("token", "")
	v.SetDefault("pipeline_key", "")
	v.SetDefault("max_pattern_words", pattern.DefaultMaxWords)
	v.SetDefault("timeout", "30s")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("FINBOARD_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "finboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FINBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.MaxPatternWords <= 0 {
		c.MaxPatternWords = pattern.DefaultMaxWords
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	return c, nil
}
