package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maxviazov/product-catalog-service/internal/repository"
)

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrAlreadyExists
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
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
