package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/product-catalog-service/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New after defaults
	HTTP     HTTPConfig          `mapstructure:"http"`
	Catalog  CatalogConfig       `mapstructure:"catalog"`
	Store    StoreConfig         `mapstructure:"store"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	MySQL    MySQLConfig         `mapstructure:"mysql"`
	Mongo    MongoConfig         `mapstructure:"mongo"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RequestTimeout bounds the store call behind every API request; 0 disables it.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORS           CORSConfig    `mapstructure:"cors"`
}

// CORSConfig is the cross-origin policy of the HTTP adapter.
type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

// CatalogConfig holds the listing defaults applied when a request leaves them out.
type CatalogConfig struct {
	DefaultPageSize  int    `mapstructure:"default_page_size" validate:"min=1"`
	MaxPageSize      int    `mapstructure:"max_page_size" validate:"gtefield=DefaultPageSize"`
	DefaultSort      string `mapstructure:"default_sort" validate:"required"`
	DefaultDirection string `mapstructure:"default_direction" validate:"oneof=asc desc"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres mysql mongo"`
	// Fixture is a YAML catalog loaded into the memory store at startup.
	Fixture string `mapstructure:"fixture"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

type MySQLConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	// Transactions needs a replica set; a standalone mongod rejects them.
	Transactions bool `mapstructure:"transactions"`
}

// Validate checks field formats first, then the settings the selected store driver cannot run without.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	var missing []string
	need := func(key, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	switch c.Store.Driver {
	case "postgres":
		need("postgres.host", c.Postgres.Host)
		need("postgres.user", c.Postgres.User)
		need("postgres.password", c.Postgres.Password)
		need("postgres.db", c.Postgres.DBName)
	case "mysql":
		need("mysql.host", c.MySQL.Host)
		need("mysql.user", c.MySQL.User)
		need("mysql.db", c.MySQL.DBName)
	case "mongo":
		need("mongo.uri", c.Mongo.URI)
		need("mongo.database", c.Mongo.Database)
	}
	if len(missing) > 0 {
		return errors.New("missing required settings for store " + c.Store.Driver + ": " + strings.Join(missing, ", "))
	}
	return nil
}
