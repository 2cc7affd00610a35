package blog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAuthor is stored when a create request does not name an author.
const DefaultAuthor = "Anonymous"

// Post is the persistent blog post model. The document store assigns the
// ObjectID on insert; the repository maintains both timestamps.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	Author    string             `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
