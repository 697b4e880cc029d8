package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-dashboard/internal/audit"
	"finance-dashboard/internal/auth"
	"finance-dashboard/internal/config"
	"finance-dashboard/internal/finance"
	"finance-dashboard/internal/httpapi"
	"finance-dashboard/internal/registration"
	"finance-dashboard/internal/reporting"
	"finance-dashboard/internal/session"
	"finance-dashboard/internal/user"
	"finance-dashboard/pkg/logger"
	"finance-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const confirmationTokenTTL = 15 * time.Minute

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Stores and services
	users := user.NewPostgresStore(db)
	userSvc := user.NewService(users)

	auditor := audit.NewService(audit.NewPostgresRepo(db))

	sessions := session.NewPostgresStore(db, cfg.Auth.RefreshTokenTTL)
	sessionSvc := session.NewService(userSvc, authManager, sessions, auditor)

	regTokens := registration.NewPostgresStore(db, confirmationTokenTTL)
	regSvc := registration.NewService(users, regTokens, registration.LogNotifier{}, auditor)

	financeSvc := finance.NewService(finance.NewPostgresRepo(db))
	reportSvc := reporting.NewService(reporting.NewPostgresRepo(db), rdb, 5*time.Minute)

	h := httpapi.Handlers{
		Sessions:        sessionSvc,
		Registration:    regSvc,
		Finance:         financeSvc,
		Reports:         reportSvc,
		Redis:           rdb,
		LoginRateLimit:  10,
		LoginRateWindow: time.Minute,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	public := auth.NewPathMatcher(cfg.Security.PublicPaths)
	r.Use(auth.Gate(authManager, userSvc, public))

	registerRoutes(r, h, db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
