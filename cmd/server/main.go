package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/config"
	"github.com/eduhub/eduhub-backend/internal/database"
	"github.com/eduhub/eduhub-backend/internal/handler"
	"github.com/eduhub/eduhub-backend/internal/logger"
	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/notifier"
	"github.com/eduhub/eduhub-backend/internal/repository"
	"github.com/eduhub/eduhub-backend/internal/router"
	"github.com/eduhub/eduhub-backend/internal/scheduler"
	"github.com/eduhub/eduhub-backend/internal/service"
	"github.com/eduhub/eduhub-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduHub Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	accessLevelRepo := repository.NewAccessLevelRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	chapterRepo := repository.NewChapterRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	prevExamRepo := repository.NewPreviousExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	sessionRepo := repository.NewQuizSessionRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)

	// ─── Initialize Scheduler and Notifier ─────────────────────────────
	jobScheduler := scheduler.NewScheduler(jobRepo, cfg.SchedulerPollInterval, cfg.SchedulerBatchSize, log)
	hub := notifier.NewHub(rdb, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo, accessLevelRepo)
	userService := service.NewUserService(userRepo, authService, log)
	accessLevelService := service.NewAccessLevelService(accessLevelRepo, log)
	subjectService := service.NewSubjectService(subjectRepo, chapterRepo, log)
	materialService := service.NewMaterialService(materialRepo, chapterRepo, log)
	prevExamService := service.NewPreviousExamService(prevExamRepo, log)
	questionService := service.NewQuestionService(questionRepo, chapterRepo, log)
	quizService := service.NewQuizService(quizRepo, questionRepo, chapterRepo, log)
	sessionService := service.NewQuizSessionService(sessionRepo, quizService, jobScheduler, hub, log)
	newsService := service.NewNewsService(newsRepo, log)

	eventService, err := service.NewEventService(eventRepo, []byte(cfg.QREncryptionKey), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize event service (QR_ENCRYPTION_KEY must be 32 bytes)")
	}

	// Session expiry jobs are handled by the shared scheduler worker.
	jobScheduler.Register(model.TaskEndQuizSession, sessionService.HandleScheduledEnd)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		User:         handler.NewUserHandler(userService),
		AccessLevel:  handler.NewAccessLevelHandler(accessLevelService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Material:     handler.NewMaterialHandler(materialService),
		PreviousExam: handler.NewPreviousExamHandler(prevExamService),
		Question:     handler.NewQuestionHandler(questionService),
		Quiz:         handler.NewQuizHandler(quizService),
		QuizSession:  handler.NewQuizSessionHandler(sessionService),
		Event:        handler.NewEventHandler(eventService),
		News:         handler.NewNewsHandler(newsService),
		WS:           handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	go jobScheduler.Start(workerCtx)
	go hub.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers. Jobs mid-run finish against a fresh
	// context; claimed-but-unrun jobs stay RUNNING and are visible in
	// the job table.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
