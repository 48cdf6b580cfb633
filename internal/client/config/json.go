package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/mitrakurir/internal/flagx"
)

// duration unmarshals from "15s" style strings or integer nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*d = duration(time.Duration(x))
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = duration(p)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// jsonConfig is the file DTO. Pointers distinguish absent keys from zero
// values so a partial file only overrides what it names.
type jsonConfig struct {
	APIBaseURL       *string   `json:"api_base_url"`
	DatabasePath     *string   `json:"database_path"`
	RequestTimeout   *duration `json:"request_timeout"`
	LogLevel         *int      `json:"log_level"`
	CredentialSecret *string   `json:"credential_secret"`
	TempDir          *string   `json:"temp_dir"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeout)
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.CredentialSecret != nil {
		cfg.CredentialSecret = *jc.CredentialSecret
	}
	if jc.TempDir != nil {
		cfg.TempDir = *jc.TempDir
	}
	return nil
}
