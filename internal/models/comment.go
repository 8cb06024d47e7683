package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID string             `bson:"post_id" json:"post_id"`
	// Author is nil for comments left by anonymous visitors.
	Author    *string   `bson:"name" json:"name"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
