package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/connectify-hq/connectify/internal/domain/entity"
	"github.com/connectify-hq/connectify/internal/domain/repository"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(PostsCollection)}
}

func (r *PostRepository) Create(p *entity.Post) error {
	ctx := context.Background()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.CommentIDs == nil {
		p.CommentIDs = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *PostRepository) GetByID(id string) (*entity.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	p := &entity.Post{}
	err = r.col.FindOne(context.Background(), bson.M{"_id": oid}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) list(filter bson.M) ([]entity.Post, error) {
	ctx := context.Background()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	posts := []entity.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) ListAll() ([]entity.Post, error) {
	return r.list(bson.M{})
}

func (r *PostRepository) ListByUser(userID primitive.ObjectID) ([]entity.Post, error) {
	return r.list(bson.M{"userId": userID})
}

func (r *PostRepository) SearchContent(keyword string) ([]entity.Post, error) {
	return r.list(bson.M{"content": bson.M{"$regex": keyword, "$options": "i"}})
}

func (r *PostRepository) TrendingHashtags(limit int) ([]entity.HashtagCount, error) {
	ctx := context.Background()
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$hashtags"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$hashtags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	out := []entity.HashtagCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepository) Update(p *entity.Post) error {
	ctx := context.Background()
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.col.DeleteOne(context.Background(), bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) PushComment(postID, commentID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(
		context.Background(),
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": commentID}},
	)
	return err
}

var _ repository.PostRepository = (*PostRepository)(nil)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(CommentsCollection)}
}

func (r *CommentRepository) Create(c *entity.Comment) error {
	ctx := context.Background()
	c.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (r *CommentRepository) GetByIDs(ids []primitive.ObjectID) ([]entity.Comment, error) {
	ctx := context.Background()
	if len(ids) == 0 {
		return []entity.Comment{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	comments := []entity.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
