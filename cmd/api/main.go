package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meetupservice/config"
	_ "meetupservice/docs"
	"meetupservice/internal/adapters/email"
	httpDelivery "meetupservice/internal/delivery/http"
	"meetupservice/internal/delivery/http/controllers"
	"meetupservice/internal/domain"
	"meetupservice/internal/repository/cache"
	"meetupservice/internal/repository/memory"
	"meetupservice/internal/repository/mongodb"
	"meetupservice/internal/repository/postgres"
	"meetupservice/internal/services"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
)

// @title Meetup API
// @version 1.0
// @description Meetups with per-user ratings, reviews and RSVPs.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.MeetupCacheTTL > 0 {
		repo = cache.NewMeetupRepository(repo, cfg.MeetupCacheTTL)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.SESRegion,
			AccessKeyID:        cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load email templates: %w", err)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)
	meetupService := services.NewMeetupService(repo, emailService, logger, cfg.RequestTimeout)

	var checker domain.HealthChecker
	if hc, ok := repo.(domain.HealthChecker); ok {
		checker = hc
	}
	mux := httpDelivery.NewRouter(
		controllers.NewMeetupController(logger, meetupService),
		controllers.NewHealthController(logger, checker),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpDelivery.NewHandler(logger, cfg.CORSAllowedOrigins, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured store and prepares its schema or indexes.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.MeetupRepository, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("connected to postgres")
		return postgres.NewMeetupRepository(db), func() { db.Close() }, nil

	case config.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		disconnect := func() {
			dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer dcancel()
			_ = client.Disconnect(dctx)
		}
		coll := client.Database(cfg.MongoDatabase).Collection(mongodb.CollectionName)
		repo := mongodb.NewMeetupRepository(coll)
		if err := repo.(domain.HealthChecker).Ping(ctx); err != nil {
			disconnect()
			return nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
			disconnect()
			return nil, nil, err
		}
		logger.Info("connected to mongo", "database", cfg.MongoDatabase)
		return repo, disconnect, nil

	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewMeetupRepository(), func() {}, nil
	}
}
