package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Game     GameConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr        string
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LLMConfig holds provider settings.
type LLMConfig struct {
	Provider  string
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
	Model     string
}

// GameConfig holds gameplay tunables.
type GameConfig struct {
	ViolationChance    float64 `mapstructure:"violation_chance"`
	StartingMoney      float64 `mapstructure:"starting_money"`
	StartingReputation float64 `mapstructure:"starting_reputation"`
	Seed               int64
}

// Load reads configuration from file and env. Env var overrides use prefix YOCHAT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "yochat", "yochat.db"))
	v.SetDefault("llm.provider", "offline")
	v.SetDefault("llm.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("game.violation_chance", 0.3)
	v.SetDefault("game.starting_money", 1000.0)
	v.SetDefault("game.starting_reputation", 50.0)
	v.SetDefault("game.seed", 0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("YOCHAT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "yochat"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("YOCHAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
