package repository

import (
	"context"
	"sync"
	"time"

	"blog-service/internal/blog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository keeps posts in process memory. It backs local development
// and tests when no MongoDB instance is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*blog.Post
	order []primitive.ObjectID // insertion order, oldest first
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts: make(map[primitive.ObjectID]*blog.Post),
	}
}

func (r *MemoryRepository) Create(_ context.Context, post *blog.Post) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *post
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.posts[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	out := stored
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Walking the insertion order backwards yields newest createdAt first
	// without relying on timestamp resolution to break ties.
	posts := make([]*blog.Post, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out := *r.posts[r.order[i]]
		posts = append(posts, &out)
	}
	return posts, nil
}

func (r *MemoryRepository) Get(_ context.Context, id primitive.ObjectID) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (r *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, fields UpdateFields) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, blog.ErrNotFound
	}
	post.Title = fields.Title
	post.Body = fields.Body
	if fields.Author != nil {
		post.Author = *fields.Author
	}
	post.UpdatedAt = time.Now().UTC()

	out := *post
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return blog.ErrNotFound
	}
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
