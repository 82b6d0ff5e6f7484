package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/HSouheill/lifelessons_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an identifier-based operation matched no document
var ErrNotFound = errors.New("document not found")

// LessonStore is the persistence contract used by the lesson handlers
type LessonStore interface {
	Create(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error)
	List(ctx context.Context, limit int64) ([]models.Lesson, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error)
	TopSaved(ctx context.Context, n int64) ([]models.Lesson, error)
	Increment(ctx context.Context, id primitive.ObjectID, counter models.Counter) error
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}, now time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddComment(ctx context.Context, lessonID primitive.ObjectID, comment models.Comment) error
	AddReply(ctx context.Context, lessonID, commentID primitive.ObjectID, reply models.Reply) error
	LikeComment(ctx context.Context, lessonID, commentID primitive.ObjectID) error
	CountByAuthor(ctx context.Context, author string) (int64, error)
}

// ContributorStore is the persistence contract for contributor aggregates
type ContributorStore interface {
	RecordLesson(ctx context.Context, name, avatar string, now time.Time) error
	Upsert(ctx context.Context, name, avatar string, now time.Time) (*models.Contributor, error)
	List(ctx context.Context) ([]models.Contributor, error)
}
