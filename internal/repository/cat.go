package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/model"
)

// UpdateCounts mirrors the matched/modified pair MongoDB reports.
type UpdateCounts struct {
	Matched  int64
	Modified int64
}

// CatRepository reads and writes documents in the cats collection.
type CatRepository struct {
	coll *mongo.Collection
}

func NewCatRepository(coll *mongo.Collection) *CatRepository {
	return &CatRepository{coll: coll}
}

func byName(name string) bson.D {
	return bson.D{{Key: "name", Value: name}}
}

// FindAll returns every cat ordered by name.
func (r *CatRepository) FindAll(ctx context.Context) ([]model.Cat, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, handleMongoError(err)
	}

	cats := []model.Cat{}
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, handleMongoError(err)
	}
	return cats, nil
}

// FindByName returns the cat called name or a not found error.
func (r *CatRepository) FindByName(ctx context.Context, name string) (*model.Cat, error) {
	var cat model.Cat
	if err := r.coll.FindOne(ctx, byName(name)).Decode(&cat); err != nil {
		return nil, handleMongoError(err)
	}
	return &cat, nil
}

func (r *CatRepository) SetAge(ctx context.Context, name string, age int) (UpdateCounts, error) {
	res, err := r.coll.UpdateOne(ctx, byName(name), bson.D{{Key: "$set", Value: bson.D{{Key: "age", Value: age}}}})
	if err != nil {
		return UpdateCounts{}, handleMongoError(err)
	}
	return UpdateCounts{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// AddFeature appends feature unless the cat already has it ($addToSet),
// in which case Modified is 0.
func (r *CatRepository) AddFeature(ctx context.Context, name, feature string) (UpdateCounts, error) {
	res, err := r.coll.UpdateOne(ctx, byName(name), bson.D{{Key: "$addToSet", Value: bson.D{{Key: "features", Value: feature}}}})
	if err != nil {
		return UpdateCounts{}, handleMongoError(err)
	}
	return UpdateCounts{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *CatRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, byName(name))
	if err != nil {
		return 0, handleMongoError(err)
	}
	return res.DeletedCount, nil
}

func (r *CatRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, handleMongoError(err)
	}
	return res.DeletedCount, nil
}

// Insert stores cat and returns its new id.
func (r *CatRepository) Insert(ctx context.Context, cat model.Cat) (string, error) {
	if cat.Features == nil {
		cat.Features = []string{}
	}
	res, err := r.coll.InsertOne(ctx, cat)
	if err != nil {
		return "", handleMongoError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// handleMongoError is the MongoDB counterpart of sqlerr.HandleError.
func handleMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		code := "CAT_NOT_FOUND"
		return errs.NewNotFoundError("Cat not found", true, &code)
	case mongo.IsDuplicateKeyError(err):
		code := "CAT_ALREADY_EXISTS"
		return errs.NewConflictError("A Cat with this Name already exists", true, &code, err)
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return errs.NewUnavailableError("MongoDB is not reachable", err)
	default:
		return errs.NewInternalError(err)
	}
}
