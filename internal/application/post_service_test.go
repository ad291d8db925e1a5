package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/domain/entity"
)

func TestExtractHashtags(t *testing.T) {
	cases := []struct {
		content string
		want    []string
	}{
		{"Learning #Golang and #DDD today", []string{"#golang", "#ddd"}},
		{"no tags here", []string{}},
		{"#a #A #a", []string{"#a", "#a", "#a"}},
		{"trailing punctuation #go!", []string{"#go"}},
		{"#under_score and #123", []string{"#under_score", "#123"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractHashtags(tc.content), "content: %q", tc.content)
	}

	// Same input always yields the same list.
	assert.Equal(t, ExtractHashtags("#Go #go"), ExtractHashtags("#Go #go"))
}

type postFixture struct {
	svc   *PostService
	posts *memPostRepo
	users *memUserRepo
	owner *entity.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newMemUserRepo()
	owner := &entity.User{Name: "Ada", Email: "a@x.com", Password: "x"}
	require.NoError(t, users.Create(owner))

	posts := newMemPostRepo()
	svc := NewPostService(posts, newMemCommentRepo(), users, nil, logger, nil, "", time.Minute)
	return &postFixture{svc: svc, posts: posts, users: users, owner: owner}
}

func (f *postFixture) create(t *testing.T, content string) *entity.Post {
	t.Helper()
	p, err := f.svc.Create(context.Background(), CreatePostInput{
		UserID:   f.owner.ID,
		UserName: f.owner.Name,
		Content:  content,
	})
	require.NoError(t, err)
	return p
}

func TestCreatePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreatePostInput{UserID: f.owner.ID, Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyPost)

	// An image alone is enough.
	p, err := f.svc.Create(ctx, CreatePostInput{UserID: f.owner.ID, Image: "https://cdn/x.png"})
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
	assert.Empty(t, p.Hashtags)

	p = f.create(t, "  shipping #Go code  ")
	assert.Equal(t, "shipping #Go code", p.Content)
	assert.Equal(t, []string{"#go"}, p.Hashtags)
}

func TestToggleLikePairRestoresState(t *testing.T) {
	f := newPostFixture(t)
	p := f.create(t, "hello")
	liker := primitive.NewObjectID()

	likes, err := f.svc.ToggleLike(p.ID.Hex(), liker)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
	assert.Equal(t, liker, likes[0])

	likes, err = f.svc.ToggleLike(p.ID.Hex(), liker)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = f.svc.ToggleLike(primitive.NewObjectID().Hex(), liker)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestEditPost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.create(t, "original #one")

	_, err := f.svc.Edit(ctx, p.ID.Hex(), primitive.NewObjectID(), "hijack")
	assert.ErrorIs(t, err, ErrNotPostOwner)
	stored, _ := f.posts.GetByID(p.ID.Hex())
	assert.Equal(t, "original #one", stored.Content)

	got, err := f.svc.Edit(ctx, p.ID.Hex(), f.owner.ID, "rewritten #Two #three")
	require.NoError(t, err)
	assert.Equal(t, "rewritten #Two #three", got.Content)
	assert.Equal(t, []string{"#two", "#three"}, got.Hashtags)

	// Blank content keeps the existing text but still recomputes tags.
	got, err = f.svc.Edit(ctx, p.ID.Hex(), f.owner.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, "rewritten #Two #three", got.Content)
	assert.Equal(t, []string{"#two", "#three"}, got.Hashtags)
}

func TestDeletePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	p := f.create(t, "to be removed")

	err := f.svc.Delete(ctx, p.ID.Hex(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotPostOwner)

	require.NoError(t, f.svc.Delete(ctx, p.ID.Hex(), f.owner.ID))

	_, err = f.svc.Get(p.ID.Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddComment(t *testing.T) {
	f := newPostFixture(t)
	p := f.create(t, "discuss")

	_, err := f.svc.AddComment(p.ID.Hex(), f.owner.ID, "Ada", "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = f.svc.AddComment(primitive.NewObjectID().Hex(), f.owner.ID, "Ada", "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)

	cm, err := f.svc.AddComment(p.ID.Hex(), f.owner.ID, "Ada", " first! ")
	require.NoError(t, err)
	assert.False(t, cm.ID.IsZero())
	assert.Equal(t, "first!", cm.Text)
	assert.Equal(t, p.ID, cm.PostID)

	got, err := f.svc.Get(p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "first!", got.Comments[0].Text)
}

func TestListOverlaysLiveOwner(t *testing.T) {
	f := newPostFixture(t)
	f.create(t, "before rename")

	// Owner renames after posting; listings reflect the live profile.
	f.owner.Name = "Ada Lovelace"
	require.NoError(t, f.users.Update(f.owner))

	posts, err := f.svc.List()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Ada Lovelace", posts[0].UserName)
	assert.Equal(t, "a@x.com", posts[0].UserEmail)
}

func TestListByUserFilters(t *testing.T) {
	f := newPostFixture(t)
	f.create(t, "mine")

	other := &entity.User{Name: "Grace", Email: "g@x.com", Password: "x"}
	require.NoError(t, f.users.Create(other))
	_, err := f.svc.Create(context.Background(), CreatePostInput{UserID: other.ID, Content: "theirs"})
	require.NoError(t, err)

	posts, err := f.svc.ListByUser(f.owner.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Content)
}

func TestSearchStoreFallback(t *testing.T) {
	f := newPostFixture(t)
	f.create(t, "Deploying with Kubernetes today")
	f.create(t, "gardening tips")

	posts, err := f.svc.Search(context.Background(), "kubernetes")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Contains(t, posts[0].Content, "Kubernetes")

	posts, err = f.svc.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestTrendingAggregation(t *testing.T) {
	f := newPostFixture(t)
	f.create(t, "#go #go is great")
	f.create(t, "more #go and some #rust")
	f.create(t, "#rust too")

	trending, err := f.svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, entity.HashtagCount{Tag: "#go", Count: 3}, trending[0])
	assert.Equal(t, entity.HashtagCount{Tag: "#rust", Count: 2}, trending[1])
}
