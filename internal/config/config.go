// Package config loads paperswipe settings from ~/.paperswipe/config.toml,
// PAPERSWIPE_* environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "PAPERSWIPE"
	configName = "config"
	configType = "toml"
	configDir  = ".paperswipe"

	KeyAPIBaseURL       = "api.base_url"
	KeyAPIEndpoint      = "api.endpoint"
	KeyAPIKey           = "api.key"
	KeyAPISecret        = "api.secret"
	KeyAPIFlowID        = "api.flow_id"
	KeyAPIUID           = "api.uid"
	KeyAPITimeout       = "api.timeout"
	KeyAPIRatePerSecond = "api.rate_per_second"
	KeyLibraryBackend   = "library.backend"
	KeyLibraryPath      = "library.path"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyServerAddr       = "server.addr"
)

const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

var (
	ErrUnknownBackend     = errors.New("unknown library backend")
	ErrInvalidTimeout     = errors.New("api timeout must be positive")
	ErrMissingCredentials = errors.New("api key, secret and flow id must be configured")
)

type Config struct {
	API     APIConfig
	Library LibraryConfig
	Log     LogConfig
	Server  ServerConfig
}

type APIConfig struct {
	BaseURL       string
	Endpoint      string
	Key           string
	Secret        string
	FlowID        string
	UID           string
	Timeout       time.Duration
	RatePerSecond float64
}

type LibraryConfig struct {
	Backend string
	Path    string
}

type LogConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	Addr string
}

type Options struct {
	// ConfigFile overrides the default config file location.
	ConfigFile string
	// DotEnvFile is loaded into the process environment when it exists.
	DotEnvFile string
}

// Load reads configuration into v and returns the resolved values. A
// missing config file or .env file is not an error.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	if err := loadDotEnv(opts.DotEnvFile); err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// credential names used by the hosted workflow's own tooling
	_ = v.BindEnv(KeyAPIKey, EnvPrefix+"_API_KEY", "XFIND_API_KEY")
	_ = v.BindEnv(KeyAPISecret, EnvPrefix+"_API_SECRET", "XFIND_API_SECRET")
	_ = v.BindEnv(KeyAPIFlowID, EnvPrefix+"_API_FLOW_ID", "XFIND_FLOW_ID")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:       strings.TrimRight(v.GetString(KeyAPIBaseURL), "/"),
			Endpoint:      v.GetString(KeyAPIEndpoint),
			Key:           v.GetString(KeyAPIKey),
			Secret:        v.GetString(KeyAPISecret),
			FlowID:        v.GetString(KeyAPIFlowID),
			UID:           v.GetString(KeyAPIUID),
			Timeout:       v.GetDuration(KeyAPITimeout),
			RatePerSecond: v.GetFloat64(KeyAPIRatePerSecond),
		},
		Library: LibraryConfig{
			Backend: strings.ToLower(v.GetString(KeyLibraryBackend)),
			Path:    v.GetString(KeyLibraryPath),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Server: ServerConfig{
			Addr: v.GetString(KeyServerAddr),
		},
	}

	if cfg.Library.Path == "" {
		cfg.Library.Path = DefaultLibraryPath(homeDir, cfg.Library.Backend)
		v.Set(KeyLibraryPath, cfg.Library.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Library.Backend {
	case BackendTOML, BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Library.Backend)
	}

	if c.API.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// RequireCredentials reports whether a search can be sent.
func (c APIConfig) RequireCredentials() error {
	if c.Key == "" || c.Secret == "" || c.FlowID == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (c APIConfig) URL() string {
	return c.BaseURL + "/" + strings.TrimLeft(c.Endpoint, "/")
}

func DefaultLibraryPath(homeDir, backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(homeDir, configDir, "library.db")
	}
	return filepath.Join(homeDir, configDir, "library.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, "https://xingchen-api.xf-yun.com")
	v.SetDefault(KeyAPIEndpoint, "/workflow/v1/chat/completions")
	v.SetDefault(KeyAPIUID, "123")
	v.SetDefault(KeyAPITimeout, 120*time.Second)
	v.SetDefault(KeyAPIRatePerSecond, 1.0)
	v.SetDefault(KeyLibraryBackend, BackendTOML)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyServerAddr, "127.0.0.1:5000")
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}
