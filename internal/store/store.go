// Package store wraps the document database behind a small typed
// interface: three collections (posts, comments, users) plus a
// reachability probe for health checks.
package store

import (
	"context"
	"errors"

	"linkboard/internal/models"
)

var (
	// ErrNotFound: the id was well formed but no document matches it.
	ErrNotFound = errors.New("store: document not found")
	// ErrInvalidID: the id string is not a valid document id.
	ErrInvalidID = errors.New("store: malformed document id")
	// ErrDuplicate: an insert collided with an existing primary key.
	ErrDuplicate = errors.New("store: duplicate key")
)

// IsNotFound reports whether err is a not-found class failure, covering
// both a missing document and a malformed id. Callers that need to keep
// the two apart can errors.Is against the sentinels directly.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID)
}

type Store interface {
	// ListPosts returns all posts, newest first.
	ListPosts(ctx context.Context) ([]models.Post, error)
	InsertPost(ctx context.Context, post *models.Post) error
	FindPost(ctx context.Context, id string) (*models.Post, error)
	// SetPostVotes overwrites the votes field of one post.
	SetPostVotes(ctx context.Context, id string, votes int) error

	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	InsertComment(ctx context.Context, comment *models.Comment) error

	FindUser(ctx context.Context, username string) (*models.User, error)
	// InsertUser returns ErrDuplicate when the username is taken.
	InsertUser(ctx context.Context, user *models.User) error
}
