package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travel-app/tour-review-service/internal/models"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection("tour_reviews")}
}

// EnsureIndexes builds the unique (tour_id, user_id) index. Duplicate inserts
// fail at the storage layer, so there is no separate existence check racing
// against concurrent submissions.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tour_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicate
		}
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) GetByTourID(ctx context.Context, tourID string) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"tour_id": tourID})
	if err != nil {
		return nil, err
	}
	var results []models.Review
	err = cursor.All(ctx, &results)
	return results, err
}

func (r *ReviewRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

// FindPage returns one page window of the filtered set. sort may be nil, in
// which case natural order is used.
func (r *ReviewRepository) FindPage(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Review, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var results []models.Review
	err = cursor.All(ctx, &results)
	return results, err
}

func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
