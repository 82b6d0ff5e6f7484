package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contributor aggregates lesson authorship per author name.
// Lessons is written only when a lesson is created.
type Contributor struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Avatar    string             `json:"avatar" bson:"avatar"`
	Lessons   int64              `json:"lessons" bson:"lessons"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ContributorRequest model for creating or refreshing a contributor profile
type ContributorRequest struct {
	Name   string `json:"name" validate:"omitempty,max=100"`
	Avatar string `json:"avatar,omitempty"`
}
