package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays MITRA_* variables; unset variables leave cfg untouched.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}
