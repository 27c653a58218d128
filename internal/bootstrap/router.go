package bootstrap

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/calendario-app/calendario-backend/internal/api/http"
	apimw "github.com/calendario-app/calendario-backend/internal/api/http/middleware"
	authhttp "github.com/calendario-app/calendario-backend/internal/auth/http"
	authmw "github.com/calendario-app/calendario-backend/internal/auth/middleware"
	authrepo "github.com/calendario-app/calendario-backend/internal/auth/repository"
	authsvc "github.com/calendario-app/calendario-backend/internal/auth/service"
	"github.com/calendario-app/calendario-backend/internal/auth/tokencache"
	cathttp "github.com/calendario-app/calendario-backend/internal/categories/http"
	catrepo "github.com/calendario-app/calendario-backend/internal/categories/repository"
	catsvc "github.com/calendario-app/calendario-backend/internal/categories/service"
	cohttp "github.com/calendario-app/calendario-backend/internal/companies/http"
	corepo "github.com/calendario-app/calendario-backend/internal/companies/repository"
	cosvc "github.com/calendario-app/calendario-backend/internal/companies/service"
	evhttp "github.com/calendario-app/calendario-backend/internal/events/http"
	evrepo "github.com/calendario-app/calendario-backend/internal/events/repository"
	evsvc "github.com/calendario-app/calendario-backend/internal/events/service"
	taskhttp "github.com/calendario-app/calendario-backend/internal/tasks/http"
	taskrepo "github.com/calendario-app/calendario-backend/internal/tasks/repository"
	tasksvc "github.com/calendario-app/calendario-backend/internal/tasks/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	// Cache is optional; when set, verified tokens are kept for TokenTTL.
	Cache    *redis.Client
	TokenTTL time.Duration
	Verifier authmw.Verifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	var dbPing, cachePing httpapi.Pinger
	if dep.DB != nil {
		dbPing = dep.DB
	}
	if dep.Cache != nil {
		cachePing = RedisPinger{Client: dep.Cache}
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dbPing, cachePing).RegisterRoutes(r)

	verifier := dep.Verifier
	if dep.Cache != nil {
		verifier = tokencache.New(dep.Cache, verifier, dep.TokenTTL)
	}
	verify := authmw.FirebaseAuthMiddleware(verifier)

	userRepo := authrepo.NewUserRepository(dep.DB)
	categoryRepo := catrepo.NewRepo(dep.DB)
	companyRepo := corepo.NewRepo(dep.DB)
	eventRepo := evrepo.NewRepo(dep.DB)
	taskRepo := taskrepo.NewRepo(dep.DB)

	authService := authsvc.NewAuthService(userRepo)

	api := r.Group("/api")

	// Sign-up and sign-in routes only need a verified token: they create the user.
	authGroup := api.Group("/auth")
	authGroup.Use(verify)
	authhttp.New(authService).Register(authGroup)

	owned := api.Group("")
	owned.Use(verify, authmw.RequireUser(authService))

	cathttp.New(catsvc.New(categoryRepo, eventRepo, taskRepo)).Register(owned.Group("/categories"))
	cohttp.New(cosvc.New(companyRepo, eventRepo)).Register(owned.Group("/companies"))
	evhttp.New(evsvc.New(eventRepo)).Register(owned.Group("/events"))
	taskhttp.New(tasksvc.New(taskRepo)).Register(owned.Group("/tasks"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", apimw.HeaderRequestID},
		ExposeHeaders: []string{apimw.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
