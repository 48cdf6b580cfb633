package config

import "time"

// Config holds runtime settings for the mitra client.
type Config struct {
	// APIBaseURL is the REST API root; endpoint paths are resolved against it.
	APIBaseURL string `env:"API_BASE_URL"`
	// DatabasePath is the SQLite file holding credentials and the profile cache.
	DatabasePath string `env:"DB_PATH"`
	// RequestTimeout bounds every HTTP call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// LogLevel uses slog numbering: -4 debug, 0 info, 4 warn, 8 error.
	LogLevel int `env:"LOG_LEVEL"`
	// CredentialSecret seals stored credentials; empty stores them in clear.
	CredentialSecret string `env:"CREDENTIAL_SECRET"`
	// TempDir receives materialized upload files; empty means os.TempDir().
	TempDir string `env:"TEMP_DIR"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MITRA_"

// FlagNames lists the command-line flags consumed by LoadConfig. They are
// stripped from the arguments handed to the command tree.
var FlagNames = []string{"-c", "-config", "-a", "-d", "-t", "-l"}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/"
	c.DatabasePath = "mitra.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = 4
	c.CredentialSecret = ""
	c.TempDir = ""
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// MITRA_* environment variables, then flags. Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
