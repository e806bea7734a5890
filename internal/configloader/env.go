package configloader

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/yaklabco/gobbcode/pkg/config"
)

// EnvPrefix is the prefix for all gobbcode environment variables.
const EnvPrefix = "GOBBCODE_"

// LoadFromEnv reads GOBBCODE_* variables into a partial configuration.
// Unset variables leave their fields at the zero value so the result can be
// merged over file configuration. Nested sections use their own prefix,
// e.g. GOBBCODE_OUTPUT_FORMAT or GOBBCODE_SERVER_REDIS_URL.
func LoadFromEnv() (*config.Config, error) {
	return loadFromEnvironment(nil)
}

// loadFromEnvironment parses environ when non-nil, the process
// environment otherwise.
func loadFromEnvironment(environ map[string]string) (*config.Config, error) {
	cfg := &config.Config{}
	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
