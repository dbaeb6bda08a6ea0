package bootstrap

import (
	"database/sql"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/refurnish/refurnish-backend/internal/api/http"
	"github.com/refurnish/refurnish-backend/internal/api/http/middleware"
	"github.com/refurnish/refurnish-backend/internal/auth"
	canvashttp "github.com/refurnish/refurnish-backend/internal/canvas/http"
	canvasrepo "github.com/refurnish/refurnish-backend/internal/canvas/repository"
	"github.com/refurnish/refurnish-backend/internal/colors"
	"github.com/refurnish/refurnish-backend/internal/images"
	"github.com/refurnish/refurnish-backend/internal/maintenance"
	"github.com/refurnish/refurnish-backend/internal/palette"
	"github.com/refurnish/refurnish-backend/internal/projects"
	"github.com/refurnish/refurnish-backend/internal/regions"
	"github.com/refurnish/refurnish-backend/internal/uploads"
	"github.com/refurnish/refurnish-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
	Storage     uploads.Storage
	UploadDir   string // served at /uploads when the local driver is active
	MaxUpload   int64
	AuthClient  *fbauth.Client
	AdminAPIKey string
	Pruner      *maintenance.Pruner
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id", "X-API-Key"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())

	r.MaxMultipartMemory = dep.MaxUpload

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	if dep.UploadDir != "" {
		r.Static("/uploads", dep.UploadDir)
	}

	api := r.Group("/api/v1")

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	imageRepo := images.NewRepo(dep.DB)
	regionRepo := regions.NewRepo(dep.DB)
	colorRepo := colors.NewRepo(dep.DB)
	stateRepo := canvasrepo.NewStateRepository(dep.SQLDB)
	historyRepo := canvasrepo.NewHistoryRepository(dep.Redis)

	api.Use(auth.WithUser(userRepo, dep.AuthClient))

	uploadLimiter := middleware.NewRateLimiter(rate.Every(time.Second), 5)
	uploadHandler := uploads.NewHandler(dep.Storage, dep.MaxUpload)
	uploadGroup := api.Group("")
	uploadGroup.Use(uploadLimiter.Middleware())
	uploadHandler.Register(uploadGroup)

	palette.Register(api.Group("/palette"))
	colors.Register(api.Group("/colors"), colorRepo)

	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, projectRepo, imageRepo, regionRepo, stateRepo, historyRepo)
	images.RegisterProjectsSubroutes(projectsGroup, projectRepo, imageRepo)
	regions.RegisterProjectsSubroutes(projectsGroup, projectRepo, regionRepo)

	canvasHandler := canvashttp.NewHandler(projectRepo, stateRepo, historyRepo)
	canvashttp.RegisterProjectsSubroutes(projectsGroup, canvasHandler)

	admin := api.Group("/admin")
	admin.Use(middleware.APIKeyMiddleware(dep.AdminAPIKey))
	maintenance.Register(admin, dep.Pruner)

	return r
}
