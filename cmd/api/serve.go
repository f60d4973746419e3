package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobmarket/internal/auth"
	"github.com/justsurfingit/jobmarket/internal/cache"
	"github.com/justsurfingit/jobmarket/internal/config"
	"github.com/justsurfingit/jobmarket/internal/database"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/events"
	"github.com/justsurfingit/jobmarket/internal/handlers"
	"github.com/justsurfingit/jobmarket/internal/oracle"
	"github.com/justsurfingit/jobmarket/internal/repository"
	"github.com/justsurfingit/jobmarket/internal/scheduler"
	"github.com/justsurfingit/jobmarket/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting the api", zap.String("version", version))

	db, err := database.Connect(cfg.DatabaseURL, cfg.Debug, log)
	if err != nil {
		return err
	}

	// Redis is optional: without it notifications are read from the
	// database and events are dropped.
	var (
		notifCache services.Cache
		publisher  events.Publisher = events.Nop{}
	)
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache and events", zap.Error(err))
		} else {
			defer rdb.Close()
			notifCache = cache.NewJSONCache(rdb, app+":notifications:")
			publisher = events.NewRedisPublisher(rdb)
			log.Info("redis connected")
		}
	}

	users := repository.NewUserRepository(db)
	jobs := repository.NewJobRepository(db)
	apps := repository.NewApplicationRepository(db)
	payments := repository.NewPaymentRepository(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	scorer := oracle.NewClient(cfg.MLAPIURL, cfg.OracleTimeout, log.Named("oracle"))

	llm, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log.Named("llm"))
	if err != nil {
		return err
	}
	if llm == nil {
		log.Warn("GEMINI_API_KEY is empty, skill extraction disabled")
	}

	notifications := services.NewNotificationService(jobs, notifCache, log)
	userService := services.NewUserService(users, tokens, log)
	jobService := services.NewJobService(jobs, publisher, notifications, log)
	feedService := services.NewFeedService(users, jobs, scorer, cfg.FeedWindow, log.Named("feed"))
	appService := services.NewApplicationService(apps, jobs, publisher, log)
	paymentService := services.NewPaymentService(payments, jobs, publisher,
		dtos.FeeResponse{Amount: cfg.PlatformFee, Wallet: cfg.PlatformWallet}, log)

	routes := &handlers.Routes{
		Auth:          handlers.NewAuthHandler(userService, cfg.UploadDir, log),
		Jobs:          handlers.NewJobHandler(jobService, feedService, log),
		Applications:  handlers.NewApplicationHandler(appService, log),
		Payments:      handlers.NewPaymentHandler(paymentService, log),
		Notifications: handlers.NewNotificationHandler(notifications, log),
		AI:            handlers.NewAIHandler(llm, scorer, log),
		RequireAuth:   auth.Middleware(tokens),
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(log.Named("http")))
	r.Use(cors.New(corsConfig(cfg)))
	r.Static("/uploads", cfg.UploadDir)
	routes.Mount(r.Group("/api"))

	sched := scheduler.New(cfg.NotificationsSchedule, notifications, log.Named("scheduler"))
	if notifCache != nil {
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Scored feeds can wait on the match service for the full oracle budget.
		WriteTimeout: cfg.OracleTimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}
