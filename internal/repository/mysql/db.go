// Package mysql stores the catalog in MySQL 8 through database/sql and go-sql-driver.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// DriverConfig maps service settings onto the driver's own config so credentials never get hand-formatted.
func DriverConfig(cfg config.MySQLConfig) *mysql.Config {
	dc := mysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dc.DBName = cfg.DBName
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Timeout = 5 * time.Second
	dc.Params = map[string]string{"charset": "utf8mb4"}
	return dc
}

// Open connects, applies pool tuning and verifies the server with a bounded ping.
func Open(ctx context.Context, cfg config.MySQLConfig, logger *zerolog.Logger) (*sql.DB, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	connector, err := mysql.NewConnector(DriverConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to build mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, repository.Unavailable(fmt.Errorf("failed to ping mysql: %w", err))
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("db", cfg.DBName).
		Msg("Successfully connected to MySQL")
	return db, nil
}

// NewStore wires every MySQL repository over db. Close closes db.
func NewStore(db *sql.DB) repository.Store {
	return repository.Store{
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		Countries:  NewCountryRepository(db),
		States:     NewStateRepository(db),
		Tx:         NewTxManager(db),
		Pinger:     NewPinger(db),
		Close:      db.Close,
	}
}

type pinger struct{ db *sql.DB }

func NewPinger(db *sql.DB) repository.Pinger { return &pinger{db: db} }

func (p *pinger) Ping(ctx context.Context) error {
	if p.db == nil {
		return errNilDB
	}
	return mapReadError(p.db.PingContext(ctx))
}
