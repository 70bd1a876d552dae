package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sentinel/sentinel/internal/adapter/ai"
	httpadapter "github.com/sentinel/sentinel/internal/adapter/http"
	"github.com/sentinel/sentinel/internal/adapter/persistence"
	"github.com/sentinel/sentinel/internal/config"
	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/identity"
	"github.com/sentinel/sentinel/internal/infra/events"
	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/infra/metrics"
	"github.com/sentinel/sentinel/internal/infra/ratelimit"
	"github.com/sentinel/sentinel/internal/ports"
	"github.com/sentinel/sentinel/internal/session"
	"github.com/sentinel/sentinel/internal/store"
	"github.com/sentinel/sentinel/internal/usecase"
)

// application holds the composed server and the connections it owns
type application struct {
	server  *httpadapter.Server
	closers []io.Closer
	logger  logger.Logger
}

// Close releases every owned connection
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error(context.Background(), "Failed to close resource", err, nil)
		}
	}
}

func buildApplication(ctx context.Context, cfg *config.Config, log logger.Logger) (*application, error) {
	app := &application{logger: log}

	var redisClient *redis.Client
	if cfg.SessionBackend == config.SessionBackendRedis || (cfg.RateLimitEnabled && cfg.RedisURL != "") {
		client, err := persistence.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		redisClient = client
		app.closers = append(app.closers, client)
	}

	kv, err := initStorage(ctx, cfg, redisClient, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	codec, err := initCodec(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	sessions := session.NewRepository(kv, codec, cfg.SessionKey, log)

	broker := events.NewBroker(cfg.EventsBufferSize, cfg.EventsHeartbeat, log)
	broker.Start(ctx)

	opts := []store.Option{
		store.WithLogger(log),
		store.WithSessionRepository(sessions),
		store.WithAuditHook(func(_ context.Context, entry domain.AuditEntry) {
			metrics.RecordAudit(string(entry.Action))
		}),
		store.WithAuditHook(func(hookCtx context.Context, entry domain.AuditEntry) {
			if err := broker.Publish("audit", entry); err != nil {
				log.Warn(hookCtx, "Failed to publish audit event", map[string]interface{}{
					"error":    err.Error(),
					"audit_id": entry.ID,
				})
			}
		}),
	}
	if cfg.SeedDemoData {
		opts = append(opts, store.WithSeed(store.DemoSeed(time.Now())))
	}
	st := store.New(ctx, opts...)

	advisor, err := ai.NewAdvisor(cfg.AdvisorConfig())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize resolution advisor: %w", err)
	}

	authUseCase := usecase.NewAuthUseCase(st, identity.NewCannedProvisioner(cfg.LoginDelay), log)
	incidentUseCase := usecase.NewIncidentUseCase(st, log)
	userUseCase := usecase.NewUserUseCase(st, log)
	advisorUseCase := usecase.NewAdvisorUseCase(st, advisor, log)

	rlConfig := cfg.RateLimitConfig()
	limiter := httpadapter.NewRateLimitMiddleware(ratelimit.NewService(rlConfig, redisClient, log), log)
	loginLimiter := limiter.Limit("login", rlConfig.LoginAttempts, rlConfig.Window, rlConfig.BlockDuration)
	advisorLimiter := limiter.Limit("advisor", rlConfig.AdvisorAttempts, rlConfig.Window, rlConfig.BlockDuration)

	handlers := httpadapter.Handlers{
		Auth:     httpadapter.NewAuthHandler(authUseCase, loginLimiter),
		Incident: httpadapter.NewIncidentHandler(incidentUseCase, advisorUseCase, advisorLimiter),
		User:     httpadapter.NewUserHandler(userUseCase),
		Events:   httpadapter.NewEventsHandler(broker),
	}

	app.server = httpadapter.NewServer(httpadapter.ServerConfig{
		Host:           cfg.ServerHost,
		Port:           cfg.ServerPort,
		ReadTimeout:    cfg.ServerReadTimeout,
		WriteTimeout:   cfg.ServerWriteTimeout,
		IdleTimeout:    cfg.ServerIdleTimeout,
		CORSEnabled:    cfg.CORSEnabled,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Version:        Version,
	}, handlers, log)

	return app, nil
}

func initStorage(ctx context.Context, cfg *config.Config, redisClient *redis.Client, app *application) (ports.KeyValueStorage, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		return persistence.NewRedisKV(redisClient, "sentinel:"), nil
	case config.SessionBackendPostgres:
		db, err := persistence.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db)

		kv := persistence.NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return persistence.NewMemoryKV(), nil
	}
}

func initCodec(cfg *config.Config) (session.Codec, error) {
	switch cfg.SessionCodec {
	case config.SessionCodecJWT:
		return session.NewJWTCodec(cfg.SessionSecret, cfg.SessionTTL), nil
	case config.SessionCodecJSON:
		return session.JSONCodec{}, nil
	default:
		return nil, config.ErrInvalidSessionCodec
	}
}
