package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	lakehttp "github.com/sagarc03/lakegate/http"
	"github.com/sagarc03/lakegate/keybackend"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Storage backends accepted by storage.backend.
const (
	BackendAzure      = "azure"
	BackendGCS        = "gcs"
	BackendFilesystem = "filesystem"
)

// Config is the root configuration struct for lakegate.
type Config struct {
	Server      ServerConfig        `mapstructure:"server"`
	Storage     StorageConfig       `mapstructure:"storage"`
	Environment string              `mapstructure:"environment"`
	Version     string              `mapstructure:"version" validate:"required"`
	Auth        AuthConfig          `mapstructure:"auth"`
	CORS        lakehttp.CORSConfig `mapstructure:"cors"`
	Metrics     MetricsConfig       `mapstructure:"metrics"`
	Tracing     TracingConfig       `mapstructure:"tracing"`
	Log         LogConfig           `mapstructure:"log"`
	Env         string              `mapstructure:"env"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port          int   `mapstructure:"port" validate:"required,min=1,max=65535"`
	MaxUploadSize int64 `mapstructure:"max_upload_size" validate:"min=0"`
}

// StorageConfig selects the storage backend and the account it serves.
//
// Account may be empty; requests then fail with a configuration error and the
// health report shows the storage as not configured.
type StorageConfig struct {
	Backend        string `mapstructure:"backend" validate:"required,oneof=azure gcs filesystem"`
	Account        string `mapstructure:"account"`
	EndpointSuffix string `mapstructure:"endpoint_suffix"`
	Endpoint       string `mapstructure:"endpoint" validate:"omitempty,url"`
	Path           string `mapstructure:"path" validate:"required_if=Backend filesystem"`
}

// AuthConfig holds function key configuration.
type AuthConfig struct {
	Keys keybackend.KeysConfig `mapstructure:"keys"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// TracingConfig controls OTLP trace export.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"min=0,max=1"`
	ServiceName string  `mapstructure:"service_name"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// IsProduction reports whether env selects production logging.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"backend":      "storage.backend",
	"account":      "storage.account",
	"storage-path": "storage.path",
	"endpoint":     "storage.endpoint",
	"port":         "server.port",
	"log-level":    "log.level",
}

// envAliases are platform variables read in addition to the LAKEGATE_ names.
var envAliases = map[string][]string{
	"storage.account": {"LAKEGATE_STORAGE_ACCOUNT", "DATA_LAKE_STORAGE_ACCOUNT"},
	"environment":     {"LAKEGATE_ENVIRONMENT", "AZURE_FUNCTIONS_ENVIRONMENT"},
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 7071)
	v.SetDefault("server.max_upload_size", 0) // 0 means no limit

	v.SetDefault("storage.backend", BackendAzure)
	v.SetDefault("storage.account", "")
	v.SetDefault("storage.endpoint_suffix", "dfs.core.windows.net")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.path", "./data")

	v.SetDefault("environment", "Development")
	v.SetDefault("version", "1.0.0")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.service_name", "lakegate")

	v.SetDefault("log.level", "info")
	v.SetDefault("env", "development")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	v.SetEnvPrefix("LAKEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Environment == "" {
		cfg.Environment = "Development"
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
