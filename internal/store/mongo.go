package store

import (
	"context"
	"time"

	"linkboard/internal/config"
	"linkboard/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	client   *mongo.Client
	posts    *mongo.Collection
	comments *mongo.Collection
	users    *mongo.Collection

	url  string
	user string
	pass string
}

func clientOptions(cfg *config.Config) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.DatabaseURL)
	if cfg.DatabaseUser != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.DatabaseUser,
			Password: cfg.DatabasePass,
		})
	}
	return opts
}

// NewMongo connects to the configured database. Failure here is fatal to
// the caller: the service does not start without its store.
func NewMongo(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.DatabaseName)
	return &Mongo{
		client:   client,
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
		users:    db.Collection("users"),
		url:      cfg.DatabaseURL,
		user:     cfg.DatabaseUser,
		pass:     cfg.DatabasePass,
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) ListPosts(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.posts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (m *Mongo) InsertPost(ctx context.Context, post *models.Post) error {
	res, err := m.posts.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

func (m *Mongo) FindPost(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var post models.Post
	err = m.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (m *Mongo) SetPostVotes(ctx context.Context, id string, votes int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := m.posts.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"votes": votes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := m.comments.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (m *Mongo) InsertComment(ctx context.Context, comment *models.Comment) error {
	res, err := m.comments.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

func (m *Mongo) FindUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"_id": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (m *Mongo) InsertUser(ctx context.Context, user *models.User) error {
	_, err := m.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// Probe opens a fresh short-timeout connection and lists database names,
// the cheapest call that proves the store is reachable. It deliberately
// does not reuse the long-lived client: a wedged pool must not make the
// probe lie.
func (m *Mongo) Probe(ctx context.Context, timeout time.Duration) error {
	opts := options.Client().
		ApplyURI(m.url).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	if m.user != "" {
		opts.SetAuth(options.Credential{Username: m.user, Password: m.pass})
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	_, err = client.ListDatabaseNames(ctx, bson.D{})
	return err
}
