package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry. UserName and UserProfilePic are denormalized at
// creation time so the post stays renderable if the owner later edits
// their profile; listings overlay the live values when the owner still
// exists.
type Post struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID   `bson:"userId" json:"userId"`
	UserName       string               `bson:"userName" json:"userName"`
	UserProfilePic string               `bson:"userProfilePic" json:"userProfilePic"`
	Content        string               `bson:"content" json:"content"`
	Image          string               `bson:"image,omitempty" json:"image,omitempty"`
	Hashtags       []string             `bson:"hashtags" json:"hashtags"`
	Likes          []primitive.ObjectID `bson:"likes" json:"likes"`
	CommentIDs     []primitive.ObjectID `bson:"comments" json:"-"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`

	// Populated for responses only, never persisted.
	Comments  []Comment `bson:"-" json:"comments"`
	UserEmail string    `bson:"-" json:"userEmail,omitempty"`
}

// LikedBy reports whether userID is in the likes set.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike adds userID to the likes set when absent and removes it when
// present. Each call flips membership exactly once.
func (p *Post) ToggleLike(userID primitive.ObjectID) {
	if !p.LikedBy(userID) {
		p.Likes = append(p.Likes, userID)
		return
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return
		}
	}
}

// Comment is a root entity referenced from Post.CommentIDs. Comments are
// append-only; no exposed operation updates or deletes them.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName" json:"userName"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// HashtagCount is one row of the trending aggregation.
type HashtagCount struct {
	Tag   string `bson:"_id" json:"_id"`
	Count int    `bson:"count" json:"count"`
}
