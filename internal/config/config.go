package config

import (
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/limiter"
	"github.com/cloudjanitor/vpc-reaper/internal/core/service"
	"github.com/cloudjanitor/vpc-reaper/internal/log"
	"github.com/cloudjanitor/vpc-reaper/internal/reporting/text"
)

type Config struct {
	Settings SettingsConfig `mapstructure:"settings"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Policy   service.Policy `mapstructure:"policy"`
}

type SettingsConfig struct {
	LogLevel  log.Level       `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat log.Format      `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	Output    string          `mapstructure:"output" validate:"oneof=text json"`
	Reporter  ReporterConfigs `mapstructure:"reporter_config"`
}

type AWSConfig struct {
	// Requests per second across all AWS clients. Zero means the default.
	APIRateLimit int `mapstructure:"api_rate_limit" validate:"omitempty,min=1,max=100"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:  log.LevelInfo,
			LogFormat: log.FormatText,
			Output:    text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
			},
		},
		AWS: AWSConfig{
			APIRateLimit: limiter.DefaultRPS,
		},
		Policy: service.DefaultPolicy(),
	}
}
