package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmoteka/catalog-api/internal/api/handler"
	"github.com/filmoteka/catalog-api/internal/api/middleware"
	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
	"github.com/filmoteka/catalog-api/internal/core/service"
	"github.com/filmoteka/catalog-api/internal/infrastructure/config"
	mongodb "github.com/filmoteka/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/filmoteka/catalog-api/internal/infrastructure/db/redis"
	"github.com/filmoteka/catalog-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The mail sender is injected so main can choose between the SMTP dispatcher
// and the log-only sender.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, mailer ports.MailSender, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("filmoteka"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	content := mongodb.NewContentRepository(db)
	genres := mongodb.NewGenreRepository(db)
	comments := mongodb.NewCommentRepository(db)
	ratings := mongodb.NewRatingRepository(db)
	commentRatings := mongodb.NewCommentRatingRepository(db)
	bookmarks := mongodb.NewBookmarkRepository(db)
	persons := mongodb.NewPersonRepository(db)
	personRoles := mongodb.NewPersonRoleRepository(db)
	credits := mongodb.NewCreditRepository(db)
	cache := redisdb.NewContentCache(rdb)
	files := storage.NewLocalStore(cfg.UploadsDir)

	hasher := service.NewArgon2Hasher()
	codec := service.NewTokenCodec(cfg.JWT.Secret)
	accessTTL := service.ParseTokenTTL(cfg.JWT.AccessTTL, log)
	refreshTTL := service.ParseTokenTTL(cfg.JWT.RefreshTTL, log)

	authService := service.NewAuthService(users, hasher, codec, mailer, files, accessTTL, refreshTTL, log)
	userService := service.NewUserService(users, hasher, files, log)
	contentService := service.NewContentService(content, genres, credits, cache, files, log)
	communityService := service.NewCommunityService(content, comments, ratings, commentRatings, bookmarks, log)
	personService := service.NewPersonService(persons, personRoles, credits, content, files, log)

	cookies := handler.CookiePolicy{Domain: cfg.Cookie.Domain, Dev: cfg.IsDev()}
	authHandler := handler.NewAuthHandler(authService, cookies)
	userHandler := handler.NewUserHandler(userService)
	contentHandler := handler.NewContentHandler(contentService)
	communityHandler := handler.NewCommunityHandler(communityService)
	personHandler := handler.NewPersonHandler(personService)

	requireAuth := middleware.Auth(codec)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)
	requireVerified := middleware.EmailVerified()

	// --- Auth routes (public by registration: no auth middleware attached) ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/verify-email", authHandler.VerifyEmail)
	auth.POST("/resend-verification", authHandler.ResendVerification)

	// --- Profile routes ---
	me := e.Group("/users/me", requireAuth)
	me.GET("", userHandler.Me)
	me.PATCH("", userHandler.Update)
	me.PATCH("/password", userHandler.ChangePassword)
	me.GET("/ratings", communityHandler.ListRatings)
	me.GET("/comment-ratings", communityHandler.ListMyCommentRatings)

	// --- Catalogue reads (public) ---
	e.GET("/content", contentHandler.List)
	e.GET("/content/:id", contentHandler.Get)
	e.GET("/genres", contentHandler.ListGenres)
	e.GET("/genres/search", contentHandler.SearchGenres)

	// --- Persons and credits (reads require a session, like comments) ---
	e.GET("/persons", personHandler.List, requireAuth)
	e.GET("/persons/search", personHandler.Search, requireAuth)
	e.GET("/persons/:id", personHandler.Get, requireAuth)
	e.GET("/content/:id/credits", personHandler.ListContentCredits, requireAuth)
	e.GET("/persons-roles", personHandler.ListRoles, requireAuth)
	e.GET("/persons-roles/:id", personHandler.GetRole, requireAuth)

	// --- Catalogue writes (admin) ---
	admin := e.Group("", requireAuth, requireAdmin)
	admin.POST("/content", contentHandler.Create)
	admin.PUT("/content/:id", contentHandler.Update)
	admin.DELETE("/content/:id", contentHandler.Delete)
	admin.PUT("/content/:id/poster", contentHandler.SetPoster)
	admin.POST("/genres", contentHandler.CreateGenre)
	admin.PUT("/genres/:id", contentHandler.UpdateGenre)
	admin.DELETE("/genres/:id", contentHandler.DeleteGenre)
	admin.POST("/persons", personHandler.Create)
	admin.PUT("/persons/:id", personHandler.Update)
	admin.DELETE("/persons/:id", personHandler.Delete)
	admin.PUT("/content/:id/credits", personHandler.SetContentCredits)
	admin.POST("/persons-roles", personHandler.CreateRole)
	admin.PUT("/persons-roles/:id", personHandler.UpdateRole)
	admin.DELETE("/persons-roles/:id", personHandler.DeleteRole)

	// --- Community routes ---
	e.GET("/content/:id/comments", communityHandler.ListComments, requireAuth)
	e.GET("/comments/:id/replies", communityHandler.ListReplies, requireAuth)
	e.POST("/content/:id/comments", communityHandler.CreateComment, requireAuth, requireVerified)
	e.DELETE("/comments/:id", communityHandler.DeleteComment, requireAuth, requireVerified)
	e.PUT("/content/:id/rating", communityHandler.RateContent, requireAuth)
	e.DELETE("/content/:id/rating", communityHandler.RemoveRating, requireAuth)
	e.PUT("/comments/:id/rating", communityHandler.RateComment, requireAuth)
	e.DELETE("/comments/:id/rating", communityHandler.RemoveCommentRating, requireAuth)
	e.GET("/comments/:id/ratings", communityHandler.ListCommentRatings, requireAuth)
	e.GET("/bookmarks", communityHandler.ListBookmarks, requireAuth)
	e.POST("/content/:id/bookmark", communityHandler.AddBookmark, requireAuth)
	e.DELETE("/content/:id/bookmark", communityHandler.RemoveBookmark, requireAuth)

	// --- Uploaded files ---
	e.Static("/uploads", cfg.UploadsDir)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
