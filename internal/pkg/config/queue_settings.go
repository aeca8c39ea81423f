package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// QueueSettings holds the AMQP settings for the analysis request queue.
type QueueSettings struct {
	URL        string `mapstructure:"url" validate:"required"`
	Exchange   string `mapstructure:"exchange" validate:"required"`
	Queue      string `mapstructure:"queue" validate:"required"`
	RoutingKey string `mapstructure:"routing_key" validate:"required"`
}

// Validate checks that all fields in QueueSettings are valid
func (s *QueueSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for QueueSettings: %w", err)
	}

	return nil
}

// WorkerSettings holds settings for the analysis worker process.
type WorkerSettings struct {
	AnalyzerURL      string `mapstructure:"analyzer_url" validate:"required,url"`
	MaxRetries       int    `mapstructure:"max_retries"`
	ArchiveAfterDays int    `mapstructure:"archive_after_days"`
	ArchiveSchedule  string `mapstructure:"archive_schedule"`
}

// Validate checks that all fields in WorkerSettings are valid and applies
// defaults for the optional ones.
func (s *WorkerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for WorkerSettings: %w", err)
	}

	if s.MaxRetries == 0 {
		s.MaxRetries = 3
	}
	if s.ArchiveAfterDays == 0 {
		s.ArchiveAfterDays = 90
	}
	if s.ArchiveSchedule == "" {
		s.ArchiveSchedule = "0 3 * * *"
	}

	return nil
}
