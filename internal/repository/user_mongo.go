package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
)

// UserMongo provides Mongo-backed persistence for seeded users.
type UserMongo struct {
	col *mongo.Collection
	log *zap.Logger
}

// NewUserRepository returns a UserMongo that operates on the "users" collection.
func NewUserRepository(db *mongo.Database, log *zap.Logger) *UserMongo {
	return &UserMongo{
		col: db.Collection(UsersCollection),
		log: log.With(zap.String("collection", UsersCollection)),
	}
}

// ReplaceUsers drops the collection and bulk-inserts users.
func (r *UserMongo) ReplaceUsers(ctx context.Context, users []models.User) error {
	docs := make([]interface{}, len(users))
	for i, u := range users {
		docs[i] = u
	}
	return replaceAll(ctx, r.col, r.log, docs)
}

// ListUsers returns every user ordered by _id.
func (r *UserMongo) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	r.log.Debug("listed users", zap.Int("count", len(users)))
	return users, nil
}

// replaceAll drops col and inserts docs in order. Dropping a collection that
// does not exist is not an error; an empty docs leaves the collection absent.
func replaceAll(ctx context.Context, col *mongo.Collection, log *zap.Logger, docs []interface{}) error {
	if err := col.Drop(ctx); err != nil {
		log.Error("failed to drop collection", zap.Error(err))
		return fmt.Errorf("drop %s: %w", col.Name(), err)
	}
	log.Debug("dropped collection")

	if len(docs) == 0 {
		return nil
	}

	res, err := col.InsertMany(ctx, docs)
	if err != nil {
		log.Error("failed to insert documents", zap.Error(err))
		return fmt.Errorf("insert into %s: %w", col.Name(), err)
	}
	log.Info("inserted documents", zap.Int("count", len(res.InsertedIDs)))
	return nil
}
