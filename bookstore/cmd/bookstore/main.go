package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apiHandler "bookstore-admin/bookstore/internal/handler/api"
	uiHandler "bookstore-admin/bookstore/internal/handler/ui"
	"bookstore-admin/bookstore/internal/config"
	"bookstore-admin/bookstore/internal/infra"
	"bookstore-admin/bookstore/internal/logging"
	appmw "bookstore-admin/bookstore/internal/middleware"
	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
	"bookstore-admin/bookstore/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv("bookstore/.env", ".env"); err != nil {
		return err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := infra.OpenDB(cfg.DB.Path, infra.DBOptions{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		Debug:        cfg.DB.Debug,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	auth, err := service.NewAuthenticator(cfg.Admin.User, cfg.Admin.Password, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	if err != nil {
		return err
	}
	factory := uow.NewFactory(uow.NewGormEngine(db), uow.WithLogger(log.Named("uow")))
	api := apiHandler.NewHandler(factory, auth, log.Named("api"))
	ui, err := uiHandler.NewHandler(factory, log.Named("ui"))
	if err != nil {
		return fmt.Errorf("load ui templates: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.Logger(log.Named("http")))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	api.RegisterRoutes(r)
	r.With(appmw.AdminBasicAuth(auth)).Mount("/ui", ui.Routes())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := &worker.CartSweeper{
		Factory:  factory,
		TTL:      cfg.Carts.TTL,
		Interval: cfg.Carts.SweepInterval,
		Log:      log.Named("sweeper"),
	}
	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("cart sweeper stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("bookstore listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
