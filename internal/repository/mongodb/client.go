// Package mongodb stores the catalog in MongoDB. Product and category IDs are
// used as _id so every backend shares the same identity rules.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

const (
	productCollection  = "product"
	categoryCollection = "product_category"
	countryCollection  = "country"
	stateCollection    = "state"
)

var errNilDB = errors.New("mongo database is nil")

// Open connects with pool settings from cfg and verifies the primary with a bounded ping.
func Open(ctx context.Context, cfg config.MongoConfig, logger *zerolog.Logger) (*mongo.Client, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	opts.SetMinPoolSize(cfg.MinPoolSize)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, repository.Unavailable(fmt.Errorf("failed to connect to mongodb: %w", err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, repository.Unavailable(fmt.Errorf("failed to ping mongodb: %w", err))
	}

	logger.Info().Str("database", cfg.Database).Msg("Successfully connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return errNilDB
	}
	_, err := db.Collection(productCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().
				SetName("product_sku_uq").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"sku": bson.M{"$gt": ""}}),
		},
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("product_category_id_idx"),
		},
	})
	if err != nil {
		return mapWriteError(err)
	}
	_, err = db.Collection(countryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetName("country_code_uq").SetUnique(true),
	})
	if err != nil {
		return mapWriteError(err)
	}
	_, err = db.Collection(stateCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "country_id", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("state_country_id_idx"),
	})
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// NewStore wires every Mongo repository over db. With transactions disabled,
// WithinTx runs its function directly, which is what a standalone mongod needs.
func NewStore(client *mongo.Client, db *mongo.Database, transactions bool) repository.Store {
	return repository.Store{
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		Countries:  NewCountryRepository(db),
		States:     NewStateRepository(db),
		Tx:         NewTxManager(client, transactions),
		Pinger:     NewPinger(client),
		Close: func() error {
			return client.Disconnect(context.Background())
		},
	}
}

type pinger struct{ client *mongo.Client }

func NewPinger(client *mongo.Client) repository.Pinger { return &pinger{client: client} }

func (p *pinger) Ping(ctx context.Context) error {
	if p.client == nil {
		return errors.New("mongo client is nil")
	}
	return mapReadError(p.client.Ping(ctx, readpref.Primary()))
}

type txManager struct {
	client  *mongo.Client
	enabled bool
}

func NewTxManager(client *mongo.Client, enabled bool) repository.TxManager {
	return &txManager{client: client, enabled: enabled}
}

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if !m.enabled || m.client == nil {
		return fn(ctx)
	}
	sess, err := m.client.StartSession()
	if err != nil {
		return repository.Unavailable(err)
	}
	defer sess.EndSession(context.Background())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}
