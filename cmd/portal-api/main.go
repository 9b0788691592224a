package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-portal-api/api/swagger"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/lifecycle"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/cache"
	"github.com/noah-isme/campus-portal-api/pkg/config"
	"github.com/noah-isme/campus-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-portal-api/pkg/middleware/requestid"
)

// @title Campus Portal API
// @version 1.0.0
// @description Student portal views aggregated from the campus document store
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := repository.OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			logr.Warn("failed to close document store", zap.Error(err))
		}
	}()
	logr.Info("document store ready", zap.String("driver", backend.Driver))

	if cfg.DocStore.SeedFile != "" {
		if err := seed(ctx, backend.Store, cfg.DocStore.SeedFile, logr); err != nil {
			return err
		}
	}

	metrics := service.NewMetricsService()
	repo := repository.NewPortalRepository(backend.Store, metrics)
	checks := map[string]handler.ReadinessCheck{"docstore": backend.Ping}

	var redisClient *redis.Client
	var lifecycleStore lifecycle.Store = lifecycle.NewMemoryStore()
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, using in-process lifecycle and rate limit state", zap.Error(err))
		} else {
			defer client.Close()
			redisClient = client
			lifecycleStore = lifecycle.NewRedisStore(client, "", 0)
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	var tracker *lifecycle.Tracker
	if cfg.Lifecycle.Enabled {
		tracker = lifecycle.NewTracker(lifecycleStore)
	}

	location, err := time.LoadLocation(cfg.Portal.TimeZone)
	if err != nil {
		logr.Warn("invalid portal time zone, falling back to UTC", zap.String("time_zone", cfg.Portal.TimeZone), zap.Error(err))
		location = time.UTC
	}

	validate := validator.New()
	audit := service.NewAuditService(repo, service.AuditConfig{
		Enabled:    cfg.Audit.Enabled,
		Workers:    cfg.Audit.Workers,
		MaxRetries: cfg.Audit.MaxRetries,
		RetryDelay: cfg.Audit.RetryDelay,
	}, logr)
	audit.Start(ctx)
	defer audit.Stop()

	guard := service.NewViewGuard(repo, tracker, metrics, logr)
	resolver := service.NewCourseResolver(repo, metrics, logr)
	auth := service.NewAuthService(repo, audit, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	handlers := handler.Handlers{
		Auth: handler.NewAuthHandler(auth),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(service.DashboardServiceParams{
			Guard:     guard,
			Schedules: repo,
			Location:  location,
			Logger:    logr,
		})),
		Courses: handler.NewCourseHandler(service.NewCourseService(guard, resolver)),
		Enrollment: handler.NewEnrollmentHandler(service.NewEnrollmentService(service.EnrollmentServiceParams{
			Guard:     guard,
			Repo:      repo,
			Resolver:  resolver,
			Audit:     audit,
			Validator: validate,
			Logger:    logr,
		})),
		Withdrawal: handler.NewWithdrawalHandler(service.NewWithdrawalService(guard, repo, resolver, audit, validate, logr)),
		Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(guard, repo, resolver)),
		Marks:      handler.NewMarksHandler(service.NewMarksService(guard, repo, resolver)),
		Profile:    handler.NewProfileHandler(service.NewProfileService(guard, repo, audit, validate, logr)),
		Transcript: handler.NewTranscriptHandler(service.NewTranscriptService(guard)),
		Metrics:    handler.NewMetricsHandler(metrics, checks),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	if cfg.RateLimit.Enabled {
		var limiter middleware.Limiter = middleware.NewTokenBucket(cfg.RateLimit.Burst, cfg.RateLimit.PerMinute)
		if redisClient != nil {
			limiter = middleware.NewRedisWindow(redisClient, cfg.RateLimit.PerMinute)
		}
		r.Use(middleware.RateLimit(limiter, metrics, logr))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, middleware.JWT(auth))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seed(ctx context.Context, store repository.DocumentStore, path string, logr *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	fixture, err := repository.ReadFixture(file)
	if err != nil {
		return err
	}
	count, err := repository.LoadFixture(ctx, store, fixture)
	if err != nil {
		return err
	}
	logr.Info("seed documents loaded", zap.String("file", path), zap.Int("documents", count))
	return nil
}
