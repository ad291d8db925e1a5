package application

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/domain/entity"
	repo "github.com/connectify-hq/connectify/internal/domain/repository"
	"github.com/connectify-hq/connectify/pkg/helpers"
)

// memUserRepo mirrors the store-side behavior of the Mongo implementation:
// normalization and defaults applied on create, ErrNotFound for misses, and
// value copies so callers never share memory with the store.
type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[primitive.ObjectID]*entity.User{}}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Education = append([]entity.Education(nil), u.Education...)
	cp.Projects = append([]entity.Project(nil), u.Projects...)
	return &cp
}

func (m *memUserRepo) Create(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = primitive.NewObjectID()
	u.Email = helpers.NormalizeEmail(u.Email)
	if u.ProfilePic == "" {
		u.ProfilePic = entity.DefaultProfilePic
	}
	if u.Education == nil {
		u.Education = []entity.Education{}
	}
	if u.Projects == nil {
		u.Projects = []entity.Project{}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = cloneUser(u)
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	email = helpers.NormalizeEmail(email)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) Update(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	m.users[u.ID] = cloneUser(u)
	return nil
}

func (m *memUserRepo) UpdateFields(id string, fields map[string]any) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "name":
			u.Name = s
		case "bio":
			u.Bio = s
		case "profilePic":
			u.ProfilePic = s
		case "location":
			u.Location = s
		case "phone":
			u.Phone = s
		case "website":
			u.Website = s
		}
	}
	u.UpdatedAt = time.Now()
	return cloneUser(u), nil
}

func (m *memUserRepo) SearchByName(name string, limit int) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	needle := strings.ToLower(name)
	out := []entity.User{}
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, *cloneUser(u))
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type memPostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*entity.Post
	order []primitive.ObjectID
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[primitive.ObjectID]*entity.Post{}}
}

func clonePost(p *entity.Post) *entity.Post {
	cp := *p
	cp.Hashtags = append([]string(nil), p.Hashtags...)
	cp.Likes = append([]primitive.ObjectID(nil), p.Likes...)
	cp.CommentIDs = append([]primitive.ObjectID(nil), p.CommentIDs...)
	return &cp
}

func (m *memPostRepo) Create(p *entity.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.CommentIDs == nil {
		p.CommentIDs = []primitive.ObjectID{}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.posts[p.ID] = clonePost(p)
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memPostRepo) GetByID(id string) (*entity.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repo.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[oid]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clonePost(p), nil
}

// ListAll returns newest first, matching the store's createdAt sort.
func (m *memPostRepo) ListAll() ([]entity.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Post, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if p, ok := m.posts[m.order[i]]; ok {
			out = append(out, *clonePost(p))
		}
	}
	return out, nil
}

func (m *memPostRepo) ListByUser(userID primitive.ObjectID) ([]entity.Post, error) {
	all, _ := m.ListAll()
	out := []entity.Post{}
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPostRepo) SearchContent(keyword string) ([]entity.Post, error) {
	all, _ := m.ListAll()
	needle := strings.ToLower(keyword)
	out := []entity.Post{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Content), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPostRepo) TrendingHashtags(limit int) ([]entity.HashtagCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, p := range m.posts {
		for _, t := range p.Hashtags {
			counts[t]++
		}
	}
	out := make([]entity.HashtagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, entity.HashtagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPostRepo) Update(p *entity.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[p.ID]; !ok {
		return repo.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	m.posts[p.ID] = clonePost(p)
	return nil
}

func (m *memPostRepo) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repo.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[oid]; !ok {
		return repo.ErrNotFound
	}
	delete(m.posts, oid)
	return nil
}

func (m *memPostRepo) PushComment(postID, commentID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[postID]
	if !ok {
		return repo.ErrNotFound
	}
	p.CommentIDs = append(p.CommentIDs, commentID)
	return nil
}

type memCommentRepo struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]*entity.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[primitive.ObjectID]*entity.Comment{}}
}

func (m *memCommentRepo) Create(c *entity.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memCommentRepo) GetByIDs(ids []primitive.ObjectID) ([]entity.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Comment{}
	for _, id := range ids {
		if c, ok := m.comments[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}
