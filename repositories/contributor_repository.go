package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/HSouheill/lifelessons_backend/config"
	"github.com/HSouheill/lifelessons_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContributorRepository struct {
	collection *mongo.Collection
}

func NewContributorRepository(db *mongo.Database) *ContributorRepository {
	return &ContributorRepository{
		collection: db.Collection(config.ContributorsCollection),
	}
}

var _ ContributorStore = (*ContributorRepository)(nil)

// RecordLesson counts one more lesson for the named author, creating the
// contributor on first sight. It is the only writer of the lessons field.
func (r *ContributorRepository) RecordLesson(ctx context.Context, name, avatar string, now time.Time) error {
	filter := bson.M{"name": name}
	update := bson.M{
		"$setOnInsert": bson.M{"avatar": avatar, "createdAt": now},
		"$inc":         bson.M{"lessons": 1},
		"$set":         bson.M{"updatedAt": now},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	// Two concurrent first-sight upserts race on the unique name index; the
	// loser retries as a plain increment.
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return fmt.Errorf("record contributor lesson: %w", err)
	}
	return nil
}

// Upsert creates or refreshes a contributor profile without touching lessons
func (r *ContributorRepository) Upsert(ctx context.Context, name, avatar string, now time.Time) (*models.Contributor, error) {
	filter := bson.M{"name": name}
	update := bson.M{
		"$set":         bson.M{"avatar": avatar, "updatedAt": now},
		"$setOnInsert": bson.M{"lessons": 0, "createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var contributor models.Contributor
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&contributor)
	if mongo.IsDuplicateKeyError(err) {
		err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&contributor)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert contributor: %w", err)
	}
	return &contributor, nil
}

// List returns all contributors, most lessons first
func (r *ContributorRepository) List(ctx context.Context) ([]models.Contributor, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "lessons", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find contributors: %w", err)
	}
	defer cursor.Close(ctx)

	contributors := []models.Contributor{}
	if err := cursor.All(ctx, &contributors); err != nil {
		return nil, fmt.Errorf("decode contributors: %w", err)
	}
	return contributors, nil
}
