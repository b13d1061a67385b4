package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/UnyteAfrica/unyte-backoffice/internal/config"
	"github.com/UnyteAfrica/unyte-backoffice/internal/domain/repository/postgres"
	domainService "github.com/UnyteAfrica/unyte-backoffice/internal/domain/service"
	"github.com/UnyteAfrica/unyte-backoffice/internal/events/kafka"
	handler "github.com/UnyteAfrica/unyte-backoffice/internal/handler/http"
	"github.com/UnyteAfrica/unyte-backoffice/internal/infrastructure/mail"
	"github.com/UnyteAfrica/unyte-backoffice/internal/infrastructure/pricing"
	"github.com/UnyteAfrica/unyte-backoffice/internal/infrastructure/security"
	"github.com/UnyteAfrica/unyte-backoffice/internal/service"
	"github.com/UnyteAfrica/unyte-backoffice/internal/utils/rate"
	"github.com/UnyteAfrica/unyte-backoffice/migrations"
)

// App owns the process lifecycle: construct collaborators, serve, shut down.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	pool      *pgxpool.Pool
	redis     *redis.Client
	publisher kafka.Publisher
	server    *http.Server
}

// New constructs the full dependency graph. Misconfiguration fails here,
// before the service accepts traffic.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.DSN(), logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	var publisher kafka.Publisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		publisher = producer
	}

	passwords, err := security.NewArgon2idPasswordService(security.Argon2idParams{
		Memory:      cfg.Security.PasswordHash.Memory,
		Iterations:  cfg.Security.PasswordHash.Iterations,
		Parallelism: cfg.Security.PasswordHash.Parallelism,
		SaltLength:  cfg.Security.PasswordHash.SaltLength,
		KeyLength:   cfg.Security.PasswordHash.KeyLength,
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	tokens, err := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	if err != nil {
		pool.Close()
		return nil, err
	}

	resetTokens, err := domainService.NewResetTokenService(
		cfg.Security.ResetTokenSecret, cfg.Security.ResetTokenBucket, nil)
	if err != nil {
		pool.Close()
		return nil, err
	}

	authService := service.NewAuthService(service.AuthServiceDeps{
		Config:        cfg,
		Logger:        logger,
		PrincipalRepo: postgres.NewPrincipalRepositoryPostgres(pool),
		InviteRepo:    postgres.NewInviteRepositoryPostgres(pool),
		OTP:           domainService.NewOTPService(nil, nil),
		ResetTokens:   resetTokens,
		Passwords:     passwords,
		Tokens:        tokens,
		Mailer:        mail.NewClient(&cfg.Mail, logger),
		Publisher:     publisher,
		RateLimiter:   rate.NewLimiter(redisClient, logger, cfg.Security.RateLimiting.Enabled),
	})

	pricingClient := pricing.NewClient(&cfg.Pricing, logger)
	router := handler.SetupRouter(authService, pricingClient, tokens, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		redis:     redisClient,
		publisher: publisher,
		server:    server,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then drains within the configured
// shutdown timeout.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("forced shutdown", zap.Error(err))
	}

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("failed to close event publisher", zap.Error(err))
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("failed to close redis client", zap.Error(err))
	}
	a.pool.Close()

	a.logger.Info("shutdown complete")
	return nil
}
