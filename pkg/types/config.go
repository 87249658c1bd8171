package types

import "time"

// HTTPConfig holds shared HTTP settings used by every client that talks to
// an external service.
type HTTPConfig struct {
	// Timeout bounds a whole HTTP exchange on the shared client.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "vidvaan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the provider fan-out.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// ProviderTimeout bounds each provider call so one slow API cannot
	// hold back completion of a search (default 30s).
	ProviderTimeout time.Duration `json:"provider_timeout" yaml:"provider_timeout" mapstructure:"provider_timeout"`

	// MaxResults is the per-provider result count requested (default 100).
	// Zero leaves the provider's own default in place.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Providers names the enabled repositories. Empty enables all four.
	Providers []string `json:"providers,omitempty" yaml:"providers,omitempty" mapstructure:"providers"`

	// OpenAlexEmail is sent as the mailto parameter for the OpenAlex polite pool.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`
}

// SummaryConfig holds settings for the AI summary service client.
type SummaryConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// ServerBase is the base URL of the summary service; requests go to
	// {ServerBase}/summarise.
	ServerBase string `json:"server_base" yaml:"server_base" mapstructure:"server_base"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ViewConfig holds table display settings.
type ViewConfig struct {
	// PageSize is the number of rows per page (default 50).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Address         string        `json:"address" yaml:"address" mapstructure:"address"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is stdout or stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Config groups all stage configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Summary SummaryConfig `json:"summary" yaml:"summary" mapstructure:"summary"`
	View    ViewConfig    `json:"view" yaml:"view" mapstructure:"view"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
}
