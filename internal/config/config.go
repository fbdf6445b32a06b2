package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	Graph   GraphConfig   `mapstructure:"graph"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	AllowedOriginsCSV string        `mapstructure:"allowed_origins"`
}

// StoreConfig selects and configures the route store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file badger neo4j memory"`
	// Path is the routes file for the file backend and the database directory
	// for badger.
	Path           string `mapstructure:"path" validate:"required_if=Backend file"`
	BadgerInMemory bool   `mapstructure:"badger_in_memory"`
	SyncWrites     bool   `mapstructure:"sync_writes"`
}

// GraphConfig describes connectivity to the graph database (Neo4j).
type GraphConfig struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format        string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// TracingConfig toggles the stdout span exporter.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

const (
	envPrefix = "ROUTEPLANNER"

	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultStoreBackend     = "file"
	defaultStorePath        = "routes.txt"
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultServiceName      = "routeplanner"
)

// ErrGraphURIRequired is returned when the neo4j backend is selected without a URI.
var ErrGraphURIRequired = errors.New("graph.uri is required for the neo4j store backend")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from the optional file at path and from
// ROUTEPLANNER_* environment variables, applying defaults for every key.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-section requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Backend == "neo4j" && c.Graph.URI == "" {
		return ErrGraphURIRequired
	}
	return nil
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (c HTTPConfig) AllowedOrigins() []string {
	if c.AllowedOriginsCSV == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(c.AllowedOriginsCSV, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

// Addr returns the host:port listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	cfg, _ := fromDefaults()
	return cfg
}

func fromDefaults() (Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	err := v.Unmarshal(&cfg)
	return cfg, err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", defaultHost)
	v.SetDefault("http.port", defaultPort)
	v.SetDefault("http.read_timeout", defaultReadTimeout)
	v.SetDefault("http.write_timeout", defaultWriteTimeout)
	v.SetDefault("http.idle_timeout", defaultIdleTimeout)
	v.SetDefault("http.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("http.metrics_enabled", true)
	v.SetDefault("http.allowed_origins", "")

	v.SetDefault("store.backend", defaultStoreBackend)
	v.SetDefault("store.path", defaultStorePath)
	v.SetDefault("store.badger_in_memory", false)
	v.SetDefault("store.sync_writes", true)

	v.SetDefault("graph.uri", "")
	v.SetDefault("graph.database", "")
	v.SetDefault("graph.username", "")
	v.SetDefault("graph.password", "")
	v.SetDefault("graph.max_connections", defaultGraphMaxSessions)

	v.SetDefault("logging.level", defaultLoggingLevel)
	v.SetDefault("logging.format", defaultLoggingFormat)
	v.SetDefault("logging.include_caller", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", defaultServiceName)
}
