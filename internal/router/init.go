package router

import (
	"github.com/connectify-hq/connectify/internal/application"
	"github.com/connectify-hq/connectify/internal/container"
	"github.com/connectify-hq/connectify/internal/infrastructure/mongodb"
	handlers "github.com/connectify-hq/connectify/internal/interface/http"
	"github.com/connectify-hq/connectify/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the
// container singletons and registers every feature module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	db := container.GetMongo()
	logger := container.GetLogger()

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	userSvc := application.NewUserService(
		userRepo,
		container.GetJWT(),
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
	)
	postSvc := application.NewPostService(
		postRepo,
		commentRepo,
		userRepo,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESPostsIndex,
		cfg.TrendingCacheTTL,
	)

	authHandler := handlers.NewAuthHandler(userSvc, container.GetJWT(), logger)
	profileHandler := handlers.NewProfileHandler(userSvc, logger)
	postHandler := handlers.NewPostHandler(postSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, postSvc, logger)
	uploadHandler := handlers.NewUploadHandler(container.GetGCS(), cfg.GCSBucket, cfg.GCSUploadFolder, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewProfileModule(profileHandler, container.GetJWT(), userRepo))
	r.Add(modules.NewPostModule(postHandler, container.GetJWT(), userRepo))
	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewUploadModule(uploadHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
