package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/domain/entity"
	repo "github.com/connectify-hq/connectify/internal/domain/repository"
	"github.com/connectify-hq/connectify/pkg/helpers"
	"github.com/connectify-hq/connectify/pkg/mailer"
	tpl "github.com/connectify-hq/connectify/pkg/mailer/templates"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrMissingSecurity    = errors.New("security question and answer are required")
	ErrInvalidQuestion    = errors.New("invalid security question")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectAnswer    = errors.New("incorrect security answer")
	ErrEducationNotFound  = errors.New("education not found")
	ErrProjectNotFound    = errors.New("project not found")
)

// UserService implements signup, login, the security-question recovery
// flow, and the ownership-checked profile mutations.
type UserService struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Pub          *helpers.RabbitPublisher
	MailEnabled  bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, pub *helpers.RabbitPublisher, mailEnabled bool) *UserService {
	return &UserService{
		Repo:         r,
		JWT:          jwt,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Pub:          pub,
		MailEnabled:  mailEnabled,
	}
}

type SignupInput struct {
	Name             string
	Email            string
	Password         string
	SecurityQuestion string
	SecurityAnswer   string
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if in.SecurityQuestion == "" || in.SecurityAnswer == "" {
		return nil, ErrMissingSecurity
	}
	if !entity.ValidSecurityQuestion(in.SecurityQuestion) {
		return nil, ErrInvalidQuestion
	}

	email := helpers.NormalizeEmail(in.Email)
	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	hashedAnswer, err := helpers.HashPassword(helpers.NormalizeAnswer(in.SecurityAnswer))
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:             in.Name,
		Email:            email,
		Password:         hashedPassword,
		SecurityQuestion: in.SecurityQuestion,
		SecurityAnswer:   hashedAnswer,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.enqueueMail(ctx, u, tpl.Welcome)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Login validates credentials and issues the 1-day identity assertion.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil, ErrUserNotFound
	}
	if err != nil {
		return "", nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.JWT.Generate(u.ID.Hex(), u.Name, u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// FindQuestion is step one of the recovery flow. The stored question is
// returned verbatim; an empty string reveals that no question is
// configured, which matches the original design.
func (s *UserService) FindQuestion(email string) (string, error) {
	u, err := s.Repo.GetByEmail(email)
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return u.SecurityQuestion, nil
}

// ResetPassword is step two. Each call independently re-validates against
// the store by email; no server-side state links it to FindQuestion.
func (s *UserService) ResetPassword(ctx context.Context, email, answer, newPassword string) error {
	u, err := s.Repo.GetByEmail(email)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if !helpers.CompareHashAndPassword(u.SecurityAnswer, helpers.NormalizeAnswer(answer)) {
		return ErrIncorrectAnswer
	}
	hashed, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hashed
	if err := s.Repo.Update(u); err != nil {
		return err
	}
	s.enqueueMail(ctx, u, tpl.PasswordChanged)
	return nil
}

func (s *UserService) GetProfile(id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ProfileUpdate is the typed partial update for scalar profile fields.
// Identity and credential fields have no representation here, so a payload
// carrying password, email, or securityAnswer is structurally incapable of
// changing them.
type ProfileUpdate struct {
	Name       *string `json:"name"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
	Location   *string `json:"location"`
	Phone      *string `json:"phone"`
	Website    *string `json:"website"`
}

func (p ProfileUpdate) fields() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Bio != nil {
		out["bio"] = *p.Bio
	}
	if p.ProfilePic != nil {
		out["profilePic"] = *p.ProfilePic
	}
	if p.Location != nil {
		out["location"] = *p.Location
	}
	if p.Phone != nil {
		out["phone"] = *p.Phone
	}
	if p.Website != nil {
		out["website"] = *p.Website
	}
	return out
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*entity.User, error) {
	u, err := s.Repo.UpdateFields(userID, in.fields())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// EducationInput carries the free-form education fields; nil pointers on
// update leave the stored value untouched.
type EducationInput struct {
	Institution *string `json:"institution"`
	Degree      *string `json:"degree"`
	Field       *string `json:"field"`
	StartYear   *string `json:"startYear"`
	EndYear     *string `json:"endYear"`
}

func (in EducationInput) apply(e *entity.Education) {
	if in.Institution != nil {
		e.Institution = *in.Institution
	}
	if in.Degree != nil {
		e.Degree = *in.Degree
	}
	if in.Field != nil {
		e.Field = *in.Field
	}
	if in.StartYear != nil {
		e.StartYear = *in.StartYear
	}
	if in.EndYear != nil {
		e.EndYear = *in.EndYear
	}
}

// AddEducation appends a new entry with a server-assigned identity and
// returns the updated parent. The subject is always the verified token's
// user, never a client-supplied owner id.
func (s *UserService) AddEducation(userID string, in EducationInput) (*entity.User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	e := entity.Education{ID: primitive.NewObjectID()}
	in.apply(&e)
	u.Education = append(u.Education, e)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateEducation(userID, eduID string, in EducationInput) (*entity.User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(eduID)
	if err != nil {
		return nil, ErrEducationNotFound
	}
	e := u.FindEducation(oid)
	if e == nil {
		return nil, ErrEducationNotFound
	}
	in.apply(e)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteEducation(userID, eduID string) (*entity.User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(eduID)
	if err != nil {
		return nil, ErrEducationNotFound
	}
	if !u.RemoveEducation(oid) {
		return nil, ErrEducationNotFound
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ProjectInput mirrors EducationInput for the projects sub-list.
type ProjectInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

func (in ProjectInput) apply(p *entity.Project) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Link != nil {
		p.Link = *in.Link
	}
}

func (s *UserService) AddProject(userID string, in ProjectInput) (*entity.User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	p := entity.Project{ID: primitive.NewObjectID()}
	in.apply(&p)
	u.Projects = append(u.Projects, p)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateProject(userID, projID string, in ProjectInput) (*entity.User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(projID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	p := u.FindProject(oid)
	if p == nil {
		return nil, ErrProjectNotFound
	}
	in.apply(p)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteProject(userID, projID string) (*entity.User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(projID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if !u.RemoveProject(oid) {
		return nil, ErrProjectNotFound
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SearchUsers queries Elasticsearch on name, falling back to a Mongo regex
// match when ES is not configured.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if strings.TrimSpace(q) == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	if s.ES == nil || s.ESUsersIndex == "" {
		users, err := s.Repo.SearchByName(q, size)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, map[string]any{
				"_id":        u.ID.Hex(),
				"name":       u.Name,
				"email":      u.Email,
				"profilePic": u.ProfilePic,
			})
		}
		return out, nil
	}

	// Match on name only, the same field the store fallback filters on.
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"name": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"_id":        u.ID.Hex(),
		"name":       u.Name,
		"email":      u.Email,
		"profilePic": u.ProfilePic,
		"bio":        u.Bio,
		"location":   u.Location,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID.Hex(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID.Hex()).Warn("es index response error")
	}
	return nil
}

func (s *UserService) enqueueMail(ctx context.Context, u *entity.User, template string) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: template,
		Data:     map[string]any{"Name": u.Name, "Email": u.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("enqueue email failed")
	}
}
