package config

import (
	"fmt"
	"time"
)

// ClientConfig holds the settings of the command-line client.
//
// Values come from CLIENT_* environment variables (with the defaults declared
// in the envDefault tags); the CLI overrides them with explicitly set flags
// before calling [ClientConfig.Validate].
type ClientConfig struct {
	// ServerURL is the base URL of the video fetcher server.
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:10000"`

	// Timeout is the default timeout for a single outbound request.
	// Env: CLIENT_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" envDefault:"120s"`

	// PollInterval is how often task status is polled while waiting.
	// Env: CLIENT_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"500ms"`

	// OutputDir is where fetched files are written.
	// Env: CLIENT_OUTPUT_DIR
	OutputDir string `env:"OUTPUT_DIR" envDefault:"."`
}

// GetClientConfig reads the client configuration from the environment.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnvWithPrefix(cfg, "CLIENT_"); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, nil
}

// Validate reports whether the client configuration is usable.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}
