package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied to lessons and contributors without an author profile
const (
	DefaultAuthor       = "Anonymous"
	DefaultAuthorAvatar = "/default-avatar.png"
)

// Lesson model for a shared life lesson
type Lesson struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Content       string             `json:"content" bson:"content"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	Category      string             `json:"category,omitempty" bson:"category,omitempty"`
	EmotionalTone string             `json:"emotionalTone,omitempty" bson:"emotionalTone,omitempty"`
	Author        string             `json:"author" bson:"author"`
	AuthorAvatar  string             `json:"authorAvatar" bson:"authorAvatar"`
	AuthorEmail   string             `json:"authorEmail,omitempty" bson:"authorEmail,omitempty"`
	Likes         int64              `json:"likes" bson:"likes"`
	Views         int64              `json:"views" bson:"views"`
	Saves         int64              `json:"saves" bson:"saves"`
	Shares        int64              `json:"shares" bson:"shares"`
	Comments      []Comment          `json:"comments" bson:"comments"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`

	// Read-time enrichment, never stored
	AuthorLessonCount *int64 `json:"authorLessonCount,omitempty" bson:"-"`
}

// Comment model for a top-level lesson comment
type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	User      string             `json:"user,omitempty" bson:"user,omitempty"`
	Text      string             `json:"text" bson:"text"`
	Likes     int64              `json:"likes" bson:"likes"`
	Replies   []Reply            `json:"replies" bson:"replies"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Reply model for a reply to a comment. Replies do not nest further.
type Reply struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	User      string             `json:"user,omitempty" bson:"user,omitempty"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Counter names a monotonically incrementing lesson field
type Counter string

const (
	CounterViews  Counter = "views"
	CounterLikes  Counter = "likes"
	CounterSaves  Counter = "saves"
	CounterShares Counter = "shares"
)

// Valid reports whether c is one of the known counters
func (c Counter) Valid() bool {
	switch c {
	case CounterViews, CounterLikes, CounterSaves, CounterShares:
		return true
	}
	return false
}

// NewLesson builds a lesson from a creation request with zeroed counters
func NewLesson(req LessonRequest, authorEmail string, now time.Time) Lesson {
	lesson := Lesson{
		Title:         req.Title,
		Content:       req.Content,
		Image:         req.Image,
		Category:      req.Category,
		EmotionalTone: req.EmotionalTone,
		Author:        req.Author,
		AuthorAvatar:  req.AuthorAvatar,
		AuthorEmail:   authorEmail,
		Comments:      []Comment{},
		CreatedAt:     now,
	}
	lesson.ApplyDefaults()
	return lesson
}

// ApplyDefaults fills the author fields and nil slices for presentation
func (l *Lesson) ApplyDefaults() {
	if l.Author == "" {
		l.Author = DefaultAuthor
	}
	if l.AuthorAvatar == "" {
		l.AuthorAvatar = DefaultAuthorAvatar
	}
	if l.Comments == nil {
		l.Comments = []Comment{}
	}
	for i := range l.Comments {
		if l.Comments[i].Replies == nil {
			l.Comments[i].Replies = []Reply{}
		}
	}
}

// NewComment builds a comment with a fresh identifier and no replies
func NewComment(user, text string, now time.Time) Comment {
	return Comment{
		ID:        primitive.NewObjectID(),
		User:      user,
		Text:      text,
		Likes:     0,
		Replies:   []Reply{},
		CreatedAt: now,
	}
}

// NewReply builds a reply with a fresh identifier
func NewReply(user, text string, now time.Time) Reply {
	return Reply{
		ID:        primitive.NewObjectID(),
		User:      user,
		Text:      text,
		CreatedAt: now,
	}
}

// LessonRequest model for creating a lesson
type LessonRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Content       string `json:"content" validate:"required"`
	Image         string `json:"image,omitempty"`
	Category      string `json:"category,omitempty"`
	EmotionalTone string `json:"emotionalTone,omitempty"`
	Author        string `json:"author,omitempty" validate:"omitempty,max=100"`
	AuthorAvatar  string `json:"authorAvatar,omitempty"`
}

// LessonUpdateRequest model for partially updating a lesson
type LessonUpdateRequest struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Image         *string `json:"image,omitempty"`
	Category      *string `json:"category,omitempty"`
	EmotionalTone *string `json:"emotionalTone,omitempty"`
}

// Fields returns the provided fields keyed by their document names
func (r LessonUpdateRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Content != nil {
		fields["content"] = *r.Content
	}
	if r.Image != nil {
		fields["image"] = *r.Image
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.EmotionalTone != nil {
		fields["emotionalTone"] = *r.EmotionalTone
	}
	return fields
}

// TextRequest model for comment and reply bodies
type TextRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// CreateLessonResponse is returned after inserting a lesson
type CreateLessonResponse struct {
	InsertedID primitive.ObjectID `json:"insertedId"`
	Lesson     Lesson             `json:"lesson"`
}
