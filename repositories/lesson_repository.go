package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HSouheill/lifelessons_backend/config"
	"github.com/HSouheill/lifelessons_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LessonRepository struct {
	collection *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{
		collection: db.Collection(config.LessonsCollection),
	}
}

var _ LessonStore = (*LessonRepository)(nil)

// Create inserts the lesson and sets its generated identifier
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	if lesson.ID.IsZero() {
		lesson.ID = primitive.NewObjectID()
	}

	res, err := r.collection.InsertOne(ctx, lesson)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert lesson: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return lesson.ID, nil
	}
	return id, nil
}

// List returns lessons newest first. A limit of zero or less returns all.
func (r *LessonRepository) List(ctx context.Context, limit int64) ([]models.Lesson, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return r.find(ctx, bson.M{}, findOptions)
}

// TopSaved returns at most n lessons ordered by saves, highest first
func (r *LessonRepository) TopSaved(ctx context.Context, n int64) ([]models.Lesson, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "saves", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(n)
	return r.find(ctx, bson.M{}, findOptions)
}

func (r *LessonRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Lesson, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find lessons: %w", err)
	}
	defer cursor.Close(ctx)

	lessons := []models.Lesson{}
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	for i := range lessons {
		lessons[i].ApplyDefaults()
	}
	return lessons, nil
}

func (r *LessonRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	lesson.ApplyDefaults()
	return &lesson, nil
}

// Increment bumps a lesson counter by exactly one
func (r *LessonRepository) Increment(ctx context.Context, id primitive.ObjectID, counter models.Counter) error {
	if !counter.Valid() {
		return fmt.Errorf("unknown counter %q", counter)
	}
	update := bson.M{"$inc": bson.M{string(counter): 1}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

// Update sets only the given fields plus updatedAt
func (r *LessonRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}, now time.Time) error {
	set := bson.M{"updatedAt": now}
	for k, v := range fields {
		set[k] = v
	}
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (r *LessonRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddComment appends a comment to the lesson's comment sequence
func (r *LessonRepository) AddComment(ctx context.Context, lessonID primitive.ObjectID, comment models.Comment) error {
	update := bson.M{"$push": bson.M{"comments": comment}}
	return r.updateOne(ctx, bson.M{"_id": lessonID}, update)
}

// AddReply matches the lesson and the comment in one filter and pushes into
// that comment's replies through the positional operator.
func (r *LessonRepository) AddReply(ctx context.Context, lessonID, commentID primitive.ObjectID, reply models.Reply) error {
	filter := bson.M{"_id": lessonID, "comments._id": commentID}
	update := bson.M{"$push": bson.M{"comments.$.replies": reply}}
	return r.updateOne(ctx, filter, update)
}

func (r *LessonRepository) LikeComment(ctx context.Context, lessonID, commentID primitive.ObjectID) error {
	filter := bson.M{"_id": lessonID, "comments._id": commentID}
	update := bson.M{"$inc": bson.M{"comments.$.likes": 1}}
	return r.updateOne(ctx, filter, update)
}

// CountByAuthor counts the lessons published under an author name
func (r *LessonRepository) CountByAuthor(ctx context.Context, author string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"author": author})
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return count, nil
}

func (r *LessonRepository) updateOne(ctx context.Context, filter, update interface{}) error {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
