package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/handler"
	"github.com/cbnu/campus-ontology/internal/middleware"
	"github.com/cbnu/campus-ontology/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Graph    *handler.GraphHandler
	Run      *handler.RunHandler
	Progress *handler.ProgressHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	auth middleware.TokenValidator,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	router.GET("/health", handlers.System.Health)

	// ─── 1. Graph Group (Public, Compressed) ───────────────────────────
	graph := router.Group("/api/v1/graph")
	graph.Use(
		middleware.Brotli(cfg.BrotliQuality, 0),
		middleware.CacheControl(cfg.QueryCacheTTL),
	)
	{
		graph.GET("/stats", handlers.Graph.Stats)
		graph.GET("/students", handlers.Graph.ListStudents)
		graph.GET("/students/:id/context", handlers.Graph.StudentContext)
		graph.GET("/courses/:id/resources", handlers.Graph.CourseResources)
		graph.GET("/departments/:id/courses", handlers.Graph.DepartmentCourses)
	}

	// ─── 2. Auth Group (Public, Rate Limited) ──────────────────────────
	authLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	authAPI := router.Group("/api/v1/auth")
	{
		authAPI.POST("/admin/login", authLimiter.Middleware(), handlers.Auth.AdminLogin)
		authAPI.GET("/admin/me", middleware.RequireAdminJWT(auth), handlers.Auth.GetAdminProfile)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(auth))
	{
		adminAPI.POST("/runs", handlers.Run.EnqueueRun)
		adminAPI.GET("/runs", handlers.Run.ListRuns)
		adminAPI.GET("/runs/:id", handlers.Run.GetRun)
	}

	// ─── 4. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(auth))
	{
		ws.GET("/admin/runs/:id/progress", handlers.Progress.RunProgressStream)
	}

	return router
}
