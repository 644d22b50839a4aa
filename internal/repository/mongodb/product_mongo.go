package mongodb

import (
	"context"
	"errors"
	"regexp"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

type productRepository struct{ db *mongo.Database }

func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{db: db}
}

// facetPage is the single document produced by pagePipeline.
type facetPage[T any] struct {
	Items []T `bson:"items"`
	Total []struct {
		N int `bson:"n"`
	} `bson:"total"`
}

// productMatch turns the filter into a $match document.
func productMatch(f repository.ProductFilter) bson.M {
	m := bson.M{}
	if f.CategoryID != nil {
		m["category_id"] = *f.CategoryID
	}
	if f.NameContains != "" {
		m["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.NameContains), Options: "i"}
	}
	return m
}

// sortDoc maps a whitelisted sort key onto document fields with _id as the tie-breaker.
func sortDoc(p repository.PageRequest, fields []string) bson.D {
	dir := 1
	if p.Desc() {
		dir = -1
	}
	key := p.SortKey
	if !slices.Contains(fields, key) || key == repository.DefaultSortKey {
		return bson.D{{Key: "_id", Value: dir}}
	}
	return bson.D{{Key: key, Value: dir}, {Key: "_id", Value: dir}}
}

// pagePipeline returns the page and the total count from one aggregate, so
// both describe the same set of documents.
func pagePipeline(match bson.M, p repository.PageRequest, fields []string) mongo.Pipeline {
	items := bson.A{
		bson.D{{Key: "$sort", Value: sortDoc(p, fields)}},
		bson.D{{Key: "$skip", Value: int64(p.Offset())}},
	}
	if p.PageSize > 0 {
		items = append(items, bson.D{{Key: "$limit", Value: int64(p.PageSize)}})
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$facet", Value: bson.D{
			{Key: "items", Value: items},
			{Key: "total", Value: bson.A{bson.D{{Key: "$count", Value: "n"}}}},
		}}},
	}
}

func runPage[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, p repository.PageRequest) (repository.PageResult[T], error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return repository.PageResult[T]{}, mapReadError(err)
	}
	defer cur.Close(ctx)

	var page facetPage[T]
	if cur.Next(ctx) {
		if err := cur.Decode(&page); err != nil {
			return repository.PageResult[T]{}, mapReadError(err)
		}
	}
	if err := cur.Err(); err != nil {
		return repository.PageResult[T]{}, mapReadError(err)
	}
	total := 0
	if len(page.Total) > 0 {
		total = page.Total[0].N
	}
	return repository.NewPageResult(page.Items, p, total), nil
}

func (r *productRepository) Find(ctx context.Context, f repository.ProductFilter, p repository.PageRequest) (repository.PageResult[model.Product], error) {
	if r.db == nil {
		return repository.PageResult[model.Product]{}, errNilDB
	}
	pipeline := pagePipeline(productMatch(f), p, repository.ProductSortFields)
	return runPage[model.Product](ctx, r.db.Collection(productCollection), pipeline, p)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	if r.db == nil {
		return model.Product{}, errNilDB
	}
	var out model.Product
	err := r.db.Collection(productCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Product{}, repository.ErrNotFound
		}
		return model.Product{}, mapReadError(err)
	}
	return out, nil
}

// Create checks the category before inserting. Mongo has no foreign keys, so a
// category removed between the check and the insert is not detected.
func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if r.db == nil {
		return model.Product{}, errNilDB
	}
	n, err := r.db.Collection(categoryCollection).CountDocuments(ctx, bson.M{"_id": p.CategoryID})
	if err != nil {
		return model.Product{}, mapReadError(err)
	}
	if n == 0 {
		return model.Product{}, repository.ErrConflict
	}
	p.DateCreated = p.DateCreated.UTC()
	p.LastUpdated = p.LastUpdated.UTC()
	if _, err := r.db.Collection(productCollection).InsertOne(ctx, p); err != nil {
		return model.Product{}, mapWriteError(err)
	}
	return p, nil
}

var _ repository.ProductRepository = (*productRepository)(nil)
