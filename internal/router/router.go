package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eduhub/eduhub-backend/internal/config"
	"github.com/eduhub/eduhub-backend/internal/handler"
	"github.com/eduhub/eduhub-backend/internal/middleware"
	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/response"
	"github.com/eduhub/eduhub-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	AccessLevel  *handler.AccessLevelHandler
	Subject      *handler.SubjectHandler
	Material     *handler.MaterialHandler
	PreviousExam *handler.PreviousExamHandler
	Question     *handler.QuestionHandler
	Quiz         *handler.QuizHandler
	QuizSession  *handler.QuizSessionHandler
	Event        *handler.EventHandler
	News         *handler.NewsHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Authenticated Group (JWT + Active Session) ─────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		// Catalog browsing
		api.GET("/subjects", handlers.Subject.GetAll)
		api.GET("/subjects/:id/chapters", handlers.Subject.ListChapters)
		api.GET("/materials", handlers.Material.List)
		api.GET("/materials/:id", handlers.Material.Get)
		api.GET("/previous-exams", handlers.PreviousExam.List)
		api.GET("/previous-exams/:id", handlers.PreviousExam.Get)
		api.GET("/quizzes", handlers.Quiz.List)
		api.GET("/quizzes/:id", handlers.Quiz.Get)
		api.GET("/news", middleware.CacheControl(60), handlers.News.List)
		api.GET("/news/:id", middleware.CacheControl(60), handlers.News.Get)

		// Timed quiz sessions
		api.POST("/sessions/start", handlers.QuizSession.Start)
		api.POST("/sessions/:id/submit", handlers.QuizSession.Submit)
		api.GET("/sessions/:id", handlers.QuizSession.Get)
		api.GET("/sessions", handlers.QuizSession.List)

		// Events
		api.GET("/events", handlers.Event.List)
		api.GET("/events/:id", handlers.Event.Get)
		api.POST("/events/:id/register", handlers.Event.Register)
		api.GET("/events/:id/my-code", handlers.Event.MyCode)
	}

	// ─── 3. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications", handlers.WS.NotificationStream)
	}

	// ─── 4. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		// User management
		adminAPI.GET("/users",
			middleware.RequirePermission(model.PermissionUsersRead),
			handlers.User.List,
		)
		adminAPI.GET("/users/:id",
			middleware.RequirePermission(model.PermissionUsersRead),
			handlers.User.Get,
		)
		adminAPI.POST("/users",
			middleware.RequirePermission(model.PermissionUsersWrite),
			handlers.User.Create,
		)
		adminAPI.PUT("/users/:id",
			middleware.RequirePermission(model.PermissionUsersWrite),
			handlers.User.Update,
		)
		adminAPI.DELETE("/users/:id",
			middleware.RequirePermission(model.PermissionUsersWrite),
			handlers.User.Delete,
		)

		// Access level management
		adminAPI.GET("/access-levels",
			middleware.RequireAnyPermission(model.PermissionAccessLevelsRead, model.PermissionUsersRead),
			handlers.AccessLevel.GetAll,
		)
		adminAPI.POST("/access-levels",
			middleware.RequirePermission(model.PermissionAccessLevelsWrite),
			handlers.AccessLevel.Create,
		)
		adminAPI.PUT("/access-levels/:id",
			middleware.RequirePermission(model.PermissionAccessLevelsWrite),
			handlers.AccessLevel.Update,
		)
		adminAPI.DELETE("/access-levels/:id",
			middleware.RequirePermission(model.PermissionAccessLevelsWrite),
			handlers.AccessLevel.Delete,
		)

		// Subjects and chapters
		subjectsGroup := adminAPI.Group("")
		subjectsGroup.Use(middleware.RequirePermission(model.PermissionSubjectsWrite))
		{
			subjectsGroup.POST("/subjects", handlers.Subject.Create)
			subjectsGroup.PUT("/subjects/:id", handlers.Subject.Update)
			subjectsGroup.DELETE("/subjects/:id", handlers.Subject.Delete)
			subjectsGroup.POST("/chapters", handlers.Subject.CreateChapter)
			subjectsGroup.PUT("/chapters/:id", handlers.Subject.UpdateChapter)
			subjectsGroup.DELETE("/chapters/:id", handlers.Subject.DeleteChapter)
		}

		// Materials
		materialsGroup := adminAPI.Group("/materials")
		materialsGroup.Use(middleware.RequirePermission(model.PermissionMaterialsWrite))
		{
			materialsGroup.POST("", handlers.Material.Create)
			materialsGroup.PUT("/:id", handlers.Material.Update)
			materialsGroup.DELETE("/:id", handlers.Material.Delete)
		}

		// Previous exams
		prevExamsGroup := adminAPI.Group("/previous-exams")
		prevExamsGroup.Use(middleware.RequirePermission(model.PermissionPrevExamsWrite))
		{
			prevExamsGroup.POST("", handlers.PreviousExam.Create)
			prevExamsGroup.PUT("/:id", handlers.PreviousExam.Update)
			prevExamsGroup.DELETE("/:id", handlers.PreviousExam.Delete)
		}

		// Question bank
		questionsGroup := adminAPI.Group("/questions")
		questionsGroup.Use(middleware.RequirePermission(model.PermissionQuestionsWrite))
		{
			questionsGroup.GET("", handlers.Question.List)
			questionsGroup.GET("/:id", handlers.Question.Get)
			questionsGroup.POST("", handlers.Question.Create)
			questionsGroup.PUT("/:id", handlers.Question.Update)
			questionsGroup.DELETE("/:id", handlers.Question.Delete)
		}

		// Quiz management
		quizzesGroup := adminAPI.Group("/quizzes")
		quizzesGroup.Use(middleware.RequirePermission(model.PermissionQuizzesWrite))
		{
			quizzesGroup.POST("", handlers.Quiz.Create)
			quizzesGroup.PUT("/:id", handlers.Quiz.Update)
			quizzesGroup.DELETE("/:id", handlers.Quiz.Delete)
		}

		// Events
		adminAPI.POST("/events",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.Create,
		)
		adminAPI.PUT("/events/:id",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.Update,
		)
		adminAPI.DELETE("/events/:id",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.Delete,
		)
		adminAPI.GET("/events/:id/registrations",
			middleware.RequireAnyPermission(model.PermissionEventsWrite, model.PermissionEventsCheckIn),
			handlers.Event.ListRegistrations,
		)
		adminAPI.POST("/events/:id/check-in",
			middleware.RequirePermission(model.PermissionEventsCheckIn),
			handlers.Event.CheckIn,
		)

		// News
		newsGroup := adminAPI.Group("/news")
		newsGroup.Use(middleware.RequirePermission(model.PermissionNewsWrite))
		{
			newsGroup.POST("", handlers.News.Create)
			newsGroup.PUT("/:id", handlers.News.Update)
			newsGroup.DELETE("/:id", handlers.News.Delete)
		}
	}

	return router
}
