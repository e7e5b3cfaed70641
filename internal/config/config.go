package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	S3         S3Config         `mapstructure:"s3"`
	Generation GenerationConfig `mapstructure:"generation"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// GeminiConfig configures the text-generation model client.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// GenerationConfig tunes the plan-generation pipeline.
type GenerationConfig struct {
	// StepTimeout bounds each external model call.
	StepTimeout time.Duration `mapstructure:"step_timeout"`
	// MaxRetries is the number of immediate re-attempts per step.
	MaxRetries int `mapstructure:"max_retries"`
	// RetryDelay is the pause before a re-attempt.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// StepEstimate feeds the remaining-time heuristic shown to clients.
	StepEstimate time.Duration `mapstructure:"step_estimate"`
	// CooldownDays is the minimum gap between plan generations per user.
	CooldownDays int `mapstructure:"cooldown_days"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Env override: generation.step_timeout -> GENERATION_STEP_TIMEOUT etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fitness_coach")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("generation.step_timeout", "90s")
	viper.SetDefault("generation.max_retries", 1)
	viper.SetDefault("generation.retry_delay", "2s")
	viper.SetDefault("generation.step_estimate", "30s")
	viper.SetDefault("generation.cooldown_days", 30)

	err = viper.ReadInConfig()
	// Missing config file is fine; env vars and defaults cover everything.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
