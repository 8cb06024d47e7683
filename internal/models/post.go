package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Link      string             `bson:"link" json:"link"`
	Votes     int                `bson:"votes" json:"votes"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
