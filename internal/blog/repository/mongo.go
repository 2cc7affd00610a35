package repository

import (
	"context"
	"fmt"
	"time"

	"blog-service/internal/blog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores posts in a MongoDB collection. Listing is served
// from a descending index on createdAt so newest-first reads stay cheap as
// the collection grows.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a MongoDB-backed repository and ensures the
// createdAt index exists. Index creation is best effort: a secondary without
// index rights can still serve traffic, just slower.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return &MongoRepository{collection: collection}
}

// Create inserts the post and fills in its store-assigned id and timestamps.
func (r *MongoRepository) Create(ctx context.Context, post *blog.Post) (*blog.Post, error) {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return post, nil
}

// List returns every post, newest createdAt first.
func (r *MongoRepository) List(ctx context.Context) ([]*blog.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*blog.Post{}
	for cursor.Next(ctx) {
		var post blog.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, fmt.Errorf("failed to decode post: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}

// Get fetches a single post by id.
func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*blog.Post, error) {
	var post blog.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, blog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Update replaces the mutable fields of a post and returns the stored
// document as it looks after the write.
func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (*blog.Post, error) {
	set := bson.M{
		"title":     fields.Title,
		"body":      fields.Body,
		"updatedAt": time.Now().UTC(),
	}
	if fields.Author != nil {
		set["author"] = *fields.Author
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post blog.Post
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, blog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

// Delete removes a post by id.
func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return blog.ErrNotFound
	}
	return nil
}
