package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/connectify-hq/connectify/config"
	"github.com/connectify-hq/connectify/internal/domain/entity"
	"github.com/connectify-hq/connectify/internal/infrastructure/mongodb"
	"github.com/connectify-hq/connectify/pkg/helpers"
)

// Seeds a couple of demo accounts and posts for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)

	demo := []struct {
		name, email, password, question, answer, bio string
	}{
		{"Ada Dev", "ada@example.com", "password123", entity.SecurityQuestions[1], "rex", "Building things."},
		{"Sam Writer", "sam@example.com", "password123", entity.SecurityQuestions[2], "springfield", "Words and coffee."},
	}

	for _, d := range demo {
		if existing, err := users.GetByEmail(d.email); err == nil && existing != nil {
			log.Printf("user %s already exists, skipping", d.email)
			continue
		}
		pwdHash, err := helpers.HashPassword(d.password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		ansHash, err := helpers.HashPassword(helpers.NormalizeAnswer(d.answer))
		if err != nil {
			log.Fatalf("hash answer: %v", err)
		}
		u := &entity.User{
			Name:             d.name,
			Email:            d.email,
			Password:         pwdHash,
			SecurityQuestion: d.question,
			SecurityAnswer:   ansHash,
			Bio:              d.bio,
		}
		if err := users.Create(u); err != nil {
			log.Fatalf("create user %s: %v", d.email, err)
		}

		content := "Hello Connectify! First post from " + d.name + " #hello #connectify"
		p := &entity.Post{
			UserID:         u.ID,
			UserName:       u.Name,
			UserProfilePic: u.ProfilePic,
			Content:        content,
			Hashtags:       []string{"#hello", "#connectify"},
		}
		if err := posts.Create(p); err != nil {
			log.Fatalf("create post for %s: %v", d.email, err)
		}
		log.Printf("seeded %s with one post", d.email)
	}
}
