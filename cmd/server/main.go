package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"credstate/internal/audit"
	"credstate/internal/challenge"
	challengestore "credstate/internal/challenge/store"
	"credstate/internal/directory"
	"credstate/internal/form"
	"credstate/internal/guid"
	"credstate/internal/jwtauth"
	"credstate/internal/otp"
	otpstore "credstate/internal/otp/store"
	"credstate/internal/passwordrules"
	"credstate/internal/platform/config"
	"credstate/internal/platform/httpserver"
	"credstate/internal/platform/logger"
	"credstate/internal/platform/metrics"
	platformredis "credstate/internal/platform/redis"
	"credstate/internal/policy"
	"credstate/internal/ratelimit"
	httptransport "credstate/internal/transport/http"
	"credstate/internal/userinfo"
	userinfometrics "credstate/internal/userinfo/metrics"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := policy.LoadDocument(cfg.PolicyPath)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}
	source := policy.NewStaticSource(doc)

	ports, limiter, cleanup, err := buildPorts(ctx, cfg, source, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var rateLimit *ratelimit.Middleware
	if limiter != nil {
		rateLimit = ratelimit.NewMiddleware(limiter, log)
	}

	tokens, err := jwtauth.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	var publisher *audit.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = audit.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return fmt.Errorf("audit publisher: %w", err)
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 3, 1); err != nil {
			return err
		}
	}

	handler := httptransport.New(
		ports,
		log,
		userinfometrics.New(),
		metrics.New(),
		jwtauth.NewMiddlewareAdapter(tokens),
		publisher,
		rateLimit,
	)
	router := chi.NewRouter()
	handler.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting credstate", "addr", cfg.Addr, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildPorts assembles the fact-resolution ports and the rate limiter for the
// configured backend. The limiter is nil when rate limiting is disabled.
func buildPorts(ctx context.Context, cfg config.Server, source *policy.StaticSource, log *slog.Logger) (userinfo.Ports, ratelimit.Limiter, func(), error) {
	var (
		p              userinfo.Ports
		challengeStore challenge.RecordStore
		otpStore       otp.RecordStore
		limiter        ratelimit.Limiter
		cleanup        = func() {}
	)
	if cfg.RateLimitPerMinute > 0 {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	switch cfg.Backend {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return p, nil, cleanup, fmt.Errorf("postgres backend requires CREDSTATE_POSTGRES_DSN")
		}
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return p, nil, cleanup, fmt.Errorf("postgres pool: %w", err)
		}
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			pool.Close()
			return p, nil, cleanup, fmt.Errorf("postgres open: %w", err)
		}
		cleanup = func() {
			pool.Close()
			_ = db.Close()
		}
		p.Directory = directory.NewPostgres(pool)
		challengeStore = challengestore.NewPostgres(db)
		otpStore = otpstore.NewPostgres(db)

	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return p, nil, cleanup, fmt.Errorf("redis client: %w", err)
		}
		if client == nil {
			return p, nil, cleanup, fmt.Errorf("redis backend requires CREDSTATE_REDIS_URL")
		}
		cleanup = func() { _ = client.Close() }
		// The directory of record is not cacheable in Redis; reads stay in
		// memory while response and OTP records live in Redis.
		p.Directory = directory.NewMemory()
		challengeStore = challengestore.NewRedis(client.Client)
		otpStore = otpstore.NewRedis(client.Client)
		if cfg.RateLimitPerMinute > 0 {
			// Shared limiter state so the limit holds across replicas.
			limiter = ratelimit.NewRedisLimiter(client.Client, cfg.RateLimitPerMinute, time.Minute)
		}

	case "memory":
		p.Directory = directory.NewMemory()
		challengeStore = challengestore.NewMemory()
		otpStore = otpstore.NewMemory()

	default:
		return p, nil, cleanup, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	checker, err := policy.NewDirectoryPermissionChecker(p.Directory)
	if err != nil {
		return p, nil, cleanup, err
	}
	matcher, err := policy.NewMatcher(source, checker)
	if err != nil {
		return p, nil, cleanup, err
	}
	challenges, err := challenge.New(source, matcher, challengeStore, challenge.WithLogger(log))
	if err != nil {
		return p, nil, cleanup, err
	}
	otpService, err := otp.New(otpStore, otp.WithLogger(log))
	if err != nil {
		return p, nil, cleanup, err
	}

	p.Policy = source
	p.Permissions = checker
	p.Profiles = matcher
	p.Challenges = challenges
	p.OTP = otpService
	p.Passwords = passwordrules.NewValidator()
	p.Forms = form.NewValidator()
	p.GUIDs = guid.NewGenerator()
	return p, limiter, cleanup, nil
}
