package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type countryRepository struct{ db *mongo.Database }

func NewCountryRepository(db *mongo.Database) repository.CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) List(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.Country], error) {
	if r.db == nil {
		return repository.PageResult[model.Country]{}, errNilDB
	}
	pipeline := pagePipeline(bson.M{}, p, repository.CountrySortFields)
	return runPage[model.Country](ctx, r.db.Collection(countryCollection), pipeline, p)
}

func (r *countryRepository) Create(ctx context.Context, c model.Country) (model.Country, error) {
	if r.db == nil {
		return model.Country{}, errNilDB
	}
	if _, err := r.db.Collection(countryCollection).InsertOne(ctx, c); err != nil {
		return model.Country{}, mapWriteError(err)
	}
	return c, nil
}

type stateRepository struct{ db *mongo.Database }

func NewStateRepository(db *mongo.Database) repository.StateRepository {
	return &stateRepository{db: db}
}

// statesPipeline resolves the country code with $lookup inside the same
// aggregate that pages the states.
func statesPipeline(code string, p repository.PageRequest) mongo.Pipeline {
	lookup := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: countryCollection},
			{Key: "localField", Value: "country_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "country"},
		}}},
		{{Key: "$match", Value: bson.M{"country.code": code}}},
		{{Key: "$project", Value: bson.M{"country": 0}}},
	}
	return append(lookup, pagePipeline(bson.M{}, p, repository.StateSortFields)...)
}

func (r *stateRepository) ListByCountryCode(ctx context.Context, code string, p repository.PageRequest) (repository.PageResult[model.State], error) {
	if r.db == nil {
		return repository.PageResult[model.State]{}, errNilDB
	}
	return runPage[model.State](ctx, r.db.Collection(stateCollection), statesPipeline(code, p), p)
}

// Create checks the country first; like products, the check and insert are not atomic.
func (r *stateRepository) Create(ctx context.Context, s model.State) (model.State, error) {
	if r.db == nil {
		return model.State{}, errNilDB
	}
	n, err := r.db.Collection(countryCollection).CountDocuments(ctx, bson.M{"_id": s.CountryID})
	if err != nil {
		return model.State{}, mapReadError(err)
	}
	if n == 0 {
		return model.State{}, repository.ErrConflict
	}
	if _, err := r.db.Collection(stateCollection).InsertOne(ctx, s); err != nil {
		return model.State{}, mapWriteError(err)
	}
	return s, nil
}

var (
	_ repository.CountryRepository = (*countryRepository)(nil)
	_ repository.StateRepository   = (*stateRepository)(nil)
)
