package application

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/domain/entity"
	repo "github.com/connectify-hq/connectify/internal/domain/repository"
	"github.com/connectify-hq/connectify/pkg/helpers"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the post owner")
	ErrEmptyPost    = errors.New("post cannot be empty")
	ErrEmptyComment = errors.New("comment cannot be empty")
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractHashtags derives the lower-cased hashtag list from post content.
// The result is deterministic for a given content string; it is recomputed
// on both create and edit.
func ExtractHashtags(content string) []string {
	tags := hashtagPattern.FindAllString(content, -1)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.ToLower(t))
	}
	return out
}

const trendingCacheKey = "posts:trending"

// PostService implements the feed: create/edit/delete, like toggling,
// comments, search, and the trending-hashtags aggregation.
type PostService struct {
	Posts        repo.PostRepository
	Comments     repo.CommentRepository
	Users        repo.UserRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESPostsIndex string
	TrendingTTL  time.Duration
}

func NewPostService(posts repo.PostRepository, comments repo.CommentRepository, users repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esPostsIndex string, trendingTTL time.Duration) *PostService {
	if trendingTTL <= 0 {
		trendingTTL = time.Minute
	}
	return &PostService{
		Posts:        posts,
		Comments:     comments,
		Users:        users,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESPostsIndex: esPostsIndex,
		TrendingTTL:  trendingTTL,
	}
}

type CreatePostInput struct {
	UserID         primitive.ObjectID
	UserName       string
	UserProfilePic string
	Content        string
	Image          string
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && in.Image == "" {
		return nil, ErrEmptyPost
	}
	p := &entity.Post{
		UserID:         in.UserID,
		UserName:       in.UserName,
		UserProfilePic: in.UserProfilePic,
		Content:        content,
		Image:          in.Image,
		Hashtags:       ExtractHashtags(content),
	}
	if err := s.Posts.Create(p); err != nil {
		return nil, err
	}
	_ = s.indexPost(ctx, p)
	s.invalidateTrending(ctx)
	return p, nil
}

// invalidateTrending drops the cached trending window after any write that
// changes the hashtag population. Cache misses rebuild from the store.
func (s *PostService) invalidateTrending(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, trendingCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("trending cache invalidation failed")
	}
}

// populate loads comments and overlays live owner fields onto a batch of
// posts. Owner lookups are memoized per call since feeds repeat authors.
func (s *PostService) populate(posts []entity.Post) []entity.Post {
	owners := map[primitive.ObjectID]*entity.User{}
	for i := range posts {
		p := &posts[i]

		comments, err := s.Comments.GetByIDs(p.CommentIDs)
		if err != nil {
			comments = []entity.Comment{}
		}
		p.Comments = comments

		u, ok := owners[p.UserID]
		if !ok {
			u, _ = s.Users.GetByID(p.UserID.Hex())
			owners[p.UserID] = u
		}
		if u != nil {
			p.UserName = u.Name
			if u.ProfilePic != "" {
				p.UserProfilePic = u.ProfilePic
			}
			p.UserEmail = u.Email
		}
	}
	return posts
}

func (s *PostService) List() ([]entity.Post, error) {
	posts, err := s.Posts.ListAll()
	if err != nil {
		return nil, err
	}
	return s.populate(posts), nil
}

func (s *PostService) ListByUser(userID primitive.ObjectID) ([]entity.Post, error) {
	posts, err := s.Posts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.populate(posts), nil
}

func (s *PostService) Get(id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	one := s.populate([]entity.Post{*p})
	return &one[0], nil
}

// Edit replaces content (when non-blank) and recomputes hashtags. Only the
// owning user may edit.
func (s *PostService) Edit(ctx context.Context, id string, callerID primitive.ObjectID, content string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != callerID {
		return nil, ErrNotPostOwner
	}
	if trimmed := strings.TrimSpace(content); trimmed != "" {
		p.Content = trimmed
	}
	p.Hashtags = ExtractHashtags(p.Content)
	if err := s.Posts.Update(p); err != nil {
		return nil, err
	}
	_ = s.indexPost(ctx, p)
	s.invalidateTrending(ctx)
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id string, callerID primitive.ObjectID) error {
	p, err := s.Posts.GetByID(id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if p.UserID != callerID {
		return ErrNotPostOwner
	}
	if err := s.Posts.Delete(id); err != nil {
		return err
	}
	s.deleteIndexed(ctx, id)
	s.invalidateTrending(ctx)
	return nil
}

// ToggleLike flips the caller's membership in the likes set and returns
// the resulting set. Two calls restore the original state.
func (s *PostService) ToggleLike(id string, callerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	p, err := s.Posts.GetByID(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	p.ToggleLike(callerID)
	if err := s.Posts.Update(p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (s *PostService) AddComment(postID string, callerID primitive.ObjectID, callerName, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	p, err := s.Posts.GetByID(postID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	cm := &entity.Comment{
		PostID:   p.ID,
		UserID:   callerID,
		UserName: callerName,
		Text:     text,
	}
	if err := s.Comments.Create(cm); err != nil {
		return nil, err
	}
	if err := s.Posts.PushComment(p.ID, cm.ID); err != nil {
		return nil, err
	}
	return cm, nil
}

// Search queries Elasticsearch on post content, falling back to a Mongo
// regex match when ES is not configured.
func (s *PostService) Search(ctx context.Context, keyword string) ([]entity.Post, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []entity.Post{}, nil
	}
	if s.ES != nil && s.ESPostsIndex != "" {
		if posts, err := s.searchES(ctx, keyword); err == nil {
			return s.populate(posts), nil
		} else if s.Logger != nil {
			s.Logger.WithError(err).Warn("es post search failed, falling back to store")
		}
	}
	posts, err := s.Posts.SearchContent(keyword)
	if err != nil {
		return nil, err
	}
	return s.populate(posts), nil
}

func (s *PostService) searchES(ctx context.Context, keyword string) ([]entity.Post, error) {
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"content": keyword,
			},
		},
		"size": 50,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESPostsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	// Re-read from the store so responses carry the full document.
	posts := make([]entity.Post, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if p, err := s.Posts.GetByID(h.ID); err == nil {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

// Trending returns the top-10 hashtags by usage, cached in Redis for a
// short window. Cache failures fall through to the aggregation.
func (s *PostService) Trending(ctx context.Context) ([]entity.HashtagCount, error) {
	if s.Redis != nil {
		var cached []entity.HashtagCount
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, trendingCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	trending, err := s.Posts.TrendingHashtags(10)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, trendingCacheKey, trending, s.TrendingTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("trending cache write failed")
		}
	}
	return trending, nil
}

func (s *PostService) indexPost(ctx context.Context, p *entity.Post) error {
	if s.ES == nil || s.ESPostsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"_id":      p.ID.Hex(),
		"userId":   p.UserID.Hex(),
		"userName": p.UserName,
		"content":  p.Content,
		"hashtags": p.Hashtags,
		"image":    p.Image,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPostsIndex, DocumentID: p.ID.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID.Hex()).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID.Hex()).Warn("es index response error")
	}
	return nil
}

func (s *PostService) deleteIndexed(ctx context.Context, id string) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPostsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
