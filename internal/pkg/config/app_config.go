package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RestConfig aggregates every setting the REST API process needs.
type RestConfig struct {
	Port     string           `mapstructure:"port"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	S3       S3Settings       `mapstructure:"s3"`
	Cognito  CognitoSettings  `mapstructure:"cognito"`
	Queue    QueueSettings    `mapstructure:"queue"`
}

// Validate checks every settings section of the REST configuration.
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		c.Port = "8000"
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.S3.Validate(); err != nil {
		return err
	}
	if err := c.Cognito.Validate(); err != nil {
		return err
	}
	return c.Queue.Validate()
}

// WorkerConfig aggregates every setting the analysis worker process needs.
type WorkerConfig struct {
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	S3       S3Settings       `mapstructure:"s3"`
	Queue    QueueSettings    `mapstructure:"queue"`
	Worker   WorkerSettings   `mapstructure:"worker"`
}

// Validate checks every settings section of the worker configuration.
func (c *WorkerConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.S3.Validate(); err != nil {
		return err
	}
	if err := c.Queue.Validate(); err != nil {
		return err
	}
	return c.Worker.Validate()
}

// InitializeRestConfig loads and validates the REST API configuration from
// the given YAML file. Values can be overridden through BIZLENZ_* environment
// variables; a .env file in the working directory is honored when present.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitializeWorkerConfig loads and validates the worker configuration from
// the given YAML file.
func InitializeWorkerConfig(configPath string) (*WorkerConfig, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}

	var cfg WorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(configPath string) (*viper.Viper, error) {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("BIZLENZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return v, nil
}
