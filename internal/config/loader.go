package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaults doubles as the key registry: AutomaticEnv only overrides keys viper knows about.
var defaults = map[string]any{
	"app.name":    "product-catalog-service",
	"app.version": "0.1.0",
	"app.env":     "dev",

	"logger.level":           "",
	"logger.format":          "",
	"logger.output_target":   "",
	"logger.time_field":      "",
	"logger.time_format":     "",
	"logger.service_name":    "",
	"logger.service_version": "",
	"logger.env":             "",
	"logger.with_caller":     false,
	"logger.stacktrace":      false,
	"logger.debug_file":      "",

	"http.addr":                   ":8080",
	"http.read_timeout":           "20s",
	"http.write_timeout":          "20s",
	"http.idle_timeout":           "60s",
	"http.shutdown_timeout":       "10s",
	"http.request_timeout":        "5s",
	"http.cors.allowed_origins":   []string{"http://localhost:4200"},
	"http.cors.allow_credentials": false,
	"http.cors.max_age":           "12h",

	"catalog.default_page_size": 20,
	"catalog.max_page_size":     1000,
	"catalog.default_sort":      "id",
	"catalog.default_direction": "asc",

	"store.driver":  "memory",
	"store.fixture": "",

	"postgres.host":                "localhost",
	"postgres.port":                5432,
	"postgres.user":                "",
	"postgres.password":            "",
	"postgres.db":                  "",
	"postgres.sslmode":             "disable",
	"postgres.max_conns":           10,
	"postgres.min_conns":           1,
	"postgres.max_conn_lifetime":   3600,
	"postgres.max_conn_idle_time":  600,
	"postgres.health_check_period": 30,

	"mysql.host":               "127.0.0.1",
	"mysql.port":               3306,
	"mysql.user":               "",
	"mysql.password":           "",
	"mysql.db":                 "",
	"mysql.max_open_conns":     25,
	"mysql.max_idle_conns":     25,
	"mysql.conn_max_lifetime":  "10m",
	"mysql.conn_max_idle_time": "5m",

	"mongo.uri":             "",
	"mongo.database":        "",
	"mongo.max_pool_size":   50,
	"mongo.min_pool_size":   0,
	"mongo.connect_timeout": "5s",
	"mongo.transactions":    false,
}

// Load reads an optional .env file, then path (when non-empty), then APP_* env overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
