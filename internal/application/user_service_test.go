package application

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/domain/entity"
	"github.com/connectify-hq/connectify/pkg/helpers"
)

func newTestUserService(users *memUserRepo) *UserService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(users, jwt, logger, nil, "", nil, false)
}

func signupInput() SignupInput {
	return SignupInput{
		Name:             "Ada",
		Email:            "A@X.com ",
		Password:         "secret6",
		SecurityQuestion: entity.SecurityQuestions[1],
		SecurityAnswer:   " Fluffy ",
	}
}

func TestSignupLoginRoundtrip(t *testing.T) {
	svc := newTestUserService(newMemUserRepo())
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, entity.DefaultProfilePic, u.ProfilePic)
	assert.NotEqual(t, "secret6", u.Password)
	assert.NotEqual(t, "fluffy", u.SecurityAnswer)

	token, logged, err := svc.Login(ctx, " a@X.COM", "secret6")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := svc.JWT.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.ID)
	assert.Equal(t, "a@x.com", claims.Email)

	_, _, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@x.com", "secret6")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignupDuplicateEmailNormalized(t *testing.T) {
	svc := newTestUserService(newMemUserRepo())
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	dup := signupInput()
	dup.Email = "  a@X.COM  "
	_, err = svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupSecurityValidation(t *testing.T) {
	svc := newTestUserService(newMemUserRepo())
	ctx := context.Background()

	in := signupInput()
	in.SecurityAnswer = ""
	_, err := svc.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrMissingSecurity)

	in = signupInput()
	in.SecurityQuestion = ""
	_, err = svc.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrMissingSecurity)

	in = signupInput()
	in.SecurityQuestion = "What is the answer to everything?"
	_, err = svc.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestRecoveryFlow(t *testing.T) {
	svc := newTestUserService(newMemUserRepo())
	ctx := context.Background()

	in := signupInput()
	_, err := svc.Signup(ctx, in)
	require.NoError(t, err)

	q, err := svc.FindQuestion("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, in.SecurityQuestion, q)

	_, err = svc.FindQuestion("missing@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.ResetPassword(ctx, "a@x.com", "wrong answer", "newpass6")
	assert.ErrorIs(t, err, ErrIncorrectAnswer)

	// Answer comparison is case and whitespace insensitive.
	err = svc.ResetPassword(ctx, "a@x.com", "FLUFFY  ", "newpass6")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "secret6")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "a@x.com", "newpass6")
	assert.NoError(t, err)
}

func TestUpdateProfileCannotTouchCredentials(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	// Hostile payload: credential keys are not representable in the
	// update type, so they fall away at decode time.
	var upd ProfileUpdate
	payload := `{"name":"Ada L.","bio":"mathematician","password":"evil","email":"evil@x.com","securityAnswer":"evil"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &upd))

	got, err := svc.UpdateProfile(ctx, u.ID.Hex(), upd)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "mathematician", got.Bio)
	assert.Equal(t, "a@x.com", got.Email)

	stored, err := users.GetByID(u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, u.Password, stored.Password)
	assert.Equal(t, u.SecurityAnswer, stored.SecurityAnswer)

	// Omitted fields stay untouched; only present ones change.
	loc := "London"
	got, err = svc.UpdateProfile(ctx, u.ID.Hex(), ProfileUpdate{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, "London", got.Location)

	_, err = svc.UpdateProfile(ctx, primitive.NewObjectID().Hex(), ProfileUpdate{Location: &loc})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEducationLifecycle(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)
	id := u.ID.Hex()

	inst := "MIT"
	degree := "BSc"
	got, err := svc.AddEducation(id, EducationInput{Institution: &inst, Degree: &degree})
	require.NoError(t, err)
	require.Len(t, got.Education, 1)
	assert.False(t, got.Education[0].ID.IsZero())
	assert.Equal(t, "MIT", got.Education[0].Institution)

	eduID := got.Education[0].ID.Hex()

	field := "CS"
	got, err = svc.UpdateEducation(id, eduID, EducationInput{Field: &field})
	require.NoError(t, err)
	assert.Equal(t, "CS", got.Education[0].Field)
	assert.Equal(t, "MIT", got.Education[0].Institution)

	_, err = svc.UpdateEducation(id, primitive.NewObjectID().Hex(), EducationInput{Field: &field})
	assert.ErrorIs(t, err, ErrEducationNotFound)

	// Deleting a bogus id fails and leaves the list unchanged.
	_, err = svc.DeleteEducation(id, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrEducationNotFound)
	stored, _ := users.GetByID(id)
	assert.Len(t, stored.Education, 1)

	got, err = svc.DeleteEducation(id, eduID)
	require.NoError(t, err)
	assert.Empty(t, got.Education)
}

func TestProjectLifecycle(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)
	id := u.ID.Hex()

	title := "connectify"
	link := "https://github.com/ada/connectify"
	got, err := svc.AddProject(id, ProjectInput{Title: &title, Link: &link})
	require.NoError(t, err)
	require.Len(t, got.Projects, 1)
	assert.False(t, got.Projects[0].ID.IsZero())

	projID := got.Projects[0].ID.Hex()

	desc := "a social network"
	got, err = svc.UpdateProject(id, projID, ProjectInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "a social network", got.Projects[0].Description)
	assert.Equal(t, "connectify", got.Projects[0].Title)

	_, err = svc.DeleteProject(id, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProjectNotFound)

	got, err = svc.DeleteProject(id, projID)
	require.NoError(t, err)
	assert.Empty(t, got.Projects)
}

func TestSearchUsersStoreFallback(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestUserService(users)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	other := signupInput()
	other.Name = "Grace"
	other.Email = "grace@x.com"
	_, err = svc.Signup(ctx, other)
	require.NoError(t, err)

	out, err := svc.SearchUsers(ctx, "ada", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ada", out[0]["name"])
	assert.NotContains(t, out[0], "password")

	out, err = svc.SearchUsers(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
