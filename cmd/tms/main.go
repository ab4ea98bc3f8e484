package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/auth"
	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/application/project"
	"github.com/yusuufashraaf/TMS-backend/internal/application/task"
	"github.com/yusuufashraaf/TMS-backend/internal/config"
	infraauth "github.com/yusuufashraaf/TMS-backend/internal/infrastructure/auth"
	httprouter "github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/handlers"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/middleware"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/persistence/database"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/persistence/postgres"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/presence"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/queue"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/realtime"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without the reminder queue")
			redisClient = nil
		}
	}

	identityRepo := postgres.NewIdentityRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiry)*time.Second)

	registry := presence.NewRegistry()
	notifier := presence.NewRouter(registry, log)
	middleware.RegisterPresenceGauge(registry.Len)
	hub := realtime.NewHub(registry, issuer, log, nil)

	var reminders ports.ReminderEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		enq := queue.NewReminderEnqueuer(asynqOpt, log)
		defer enq.Close()
		reminders = enq
		worker = queue.NewWorker(asynqOpt, taskRepo, notifier, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("reminder worker stopped")
			}
		}()
	} else {
		reminders = queue.NewNoopEnqueuer()
	}

	signupUC := auth.NewSignup(identityRepo, hasher, issuer)
	loginUC := auth.NewLogin(identityRepo, hasher, issuer)

	createProjectUC := project.NewCreateProject(projectRepo, identityRepo)
	listProjectsUC := project.NewListProjects(projectRepo)
	getProjectUC := project.NewGetProject(projectRepo)
	updateProjectUC := project.NewUpdateProject(projectRepo, identityRepo)
	deleteProjectUC := project.NewDeleteProject(projectRepo)

	createTaskUC := task.NewCreateTask(taskRepo, projectRepo, identityRepo, notifier, reminders, log)
	listTasksUC := task.NewListTasks(taskRepo)
	getTaskUC := task.NewGetTask(taskRepo)
	updateTaskUC := task.NewUpdateTask(taskRepo, identityRepo)
	deleteTaskUC := task.NewDeleteTask(taskRepo)
	statsUC := task.NewStats(taskRepo)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.Server.AuthRateLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.IsDevelopment))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     handlers.NewAuthHandler(signupUC, loginUC, log),
		UsersHandler:    handlers.NewUsersHandler(identityRepo, log),
		ProjectsHandler: handlers.NewProjectsHandler(createProjectUC, listProjectsUC, getProjectUC, updateProjectUC, deleteProjectUC, log),
		TasksHandler:    handlers.NewTasksHandler(createTaskUC, listTasksUC, getTaskUC, updateTaskUC, deleteTaskUC, statsUC, log),
		HealthHandler:   handlers.NewHealthHandler(pool, redisClient),
		LiveHandler:     hub,
		RequireAuth:     middleware.NewAuthValidator(issuer).Handler,
		Secure:          secureMiddleware,
		CORS:            middleware.CORS(cfg.Server.AllowedOrigins),
		IPRateLimit:     ipLimit,
		Log:             log,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
