package mysql

import (
	"context"
	"database/sql"

	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// q is implemented by both *sql.DB and *sql.Tx.
type q interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func getQ(ctx context.Context, db *sql.DB) q {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return db
}

type txManager struct{ db *sql.DB }

func NewTxManager(db *sql.DB) repository.TxManager { return &txManager{db: db} }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if m.db == nil {
		return errNilDB
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return repository.Unavailable(err)
	}
	defer func() {
		// sql.ErrTxDone after commit is expected.
		_ = tx.Rollback()
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapWriteError(err)
	}
	return nil
}

var _ repository.TxManager = (*txManager)(nil)
