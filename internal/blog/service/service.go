package service

import (
	"context"
	"fmt"

	"blog-service/internal/blog"
	"blog-service/internal/blog/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service exposes the blog post operations used by the HTTP layer. It owns
// identifier parsing and field validation so every repository only ever sees
// well-formed input.
type Service interface {
	Create(ctx context.Context, title, body, author string) (*blog.Post, error)
	List(ctx context.Context) ([]*blog.Post, error)
	Get(ctx context.Context, id string) (*blog.Post, error)
	Update(ctx context.Context, id, title, body string, author *string) (*blog.Post, error)
	Delete(ctx context.Context, id string) error
}

type postService struct {
	repo repository.Repository
}

// New returns a Service backed by the given repository.
func New(repo repository.Repository) Service {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, title, body, author string) (*blog.Post, error) {
	if err := validateFields(title, body); err != nil {
		return nil, err
	}
	if author == "" {
		author = blog.DefaultAuthor
	}
	return s.repo.Create(ctx, &blog.Post{Title: title, Body: body, Author: author})
}

func (s *postService) List(ctx context.Context) ([]*blog.Post, error) {
	return s.repo.List(ctx)
}

func (s *postService) Get(ctx context.Context, id string) (*blog.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *postService) Update(ctx context.Context, id, title, body string, author *string) (*blog.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := validateFields(title, body); err != nil {
		return nil, err
	}
	// An empty author means "not provided", same as on create; the stored
	// value stays untouched rather than being blanked.
	if author != nil && *author == "" {
		author = nil
	}
	return s.repo.Update(ctx, oid, repository.UpdateFields{Title: title, Body: body, Author: author})
}

func (s *postService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// parseID rejects anything that is not a well-formed ObjectID before the
// store is consulted, so a malformed id never reads as "not found".
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", blog.ErrInvalidID, id)
	}
	return oid, nil
}

func validateFields(title, body string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", blog.ErrValidation)
	}
	if body == "" {
		return fmt.Errorf("%w: body is required", blog.ErrValidation)
	}
	return nil
}
