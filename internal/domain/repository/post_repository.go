package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	Create(p *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	// ListAll returns every post, newest first.
	ListAll() ([]entity.Post, error)
	ListByUser(userID primitive.ObjectID) ([]entity.Post, error)
	// SearchContent matches post content case-insensitively, newest first.
	SearchContent(keyword string) ([]entity.Post, error)
	// TrendingHashtags unwinds hashtags and returns the top tags by count.
	TrendingHashtags(limit int) ([]entity.HashtagCount, error)
	Update(p *entity.Post) error
	Delete(id string) error
	// PushComment appends a comment id to the post's comment list.
	PushComment(postID, commentID primitive.ObjectID) error
}

// CommentRepository defines the interface for comment persistence.
type CommentRepository interface {
	Create(c *entity.Comment) error
	GetByIDs(ids []primitive.ObjectID) ([]entity.Comment, error)
}
