package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// Server error numbers from the MySQL reference manual.
const (
	erDupEntry           = 1062
	erNoReferencedRow2   = 1452
	erNoReferencedRowOld = 1216
)

var errNilDB = errors.New("mysql db is nil")

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case erDupEntry:
			return repository.ErrAlreadyExists
		case erNoReferencedRow2, erNoReferencedRowOld:
			return repository.ErrConflict
		}
		return err
	}
	return repository.Unavailable(err)
}

func mapReadError(err error) error {
	if err == nil {
		return nil
	}
	return repository.Unavailable(err)
}
