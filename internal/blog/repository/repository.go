package repository

import (
	"context"

	"blog-service/internal/blog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateFields carries the replacement values for an update. Author is
// optional: a nil pointer leaves the stored value untouched.
type UpdateFields struct {
	Title  string
	Body   string
	Author *string
}

// Repository is the persistence contract for blog posts. Both the MongoDB
// and the in-memory implementations satisfy it.
type Repository interface {
	Create(ctx context.Context, post *blog.Post) (*blog.Post, error)
	List(ctx context.Context) ([]*blog.Post, error)
	Get(ctx context.Context, id primitive.ObjectID) (*blog.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (*blog.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
