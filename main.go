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

	"github.com/desuite/desuite-web/backend/handlers"
	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/desuite/desuite-web/backend/internal/database"
	"github.com/desuite/desuite-web/backend/internal/demorequest/handler"
	"github.com/desuite/desuite-web/backend/internal/demorequest/repository"
	"github.com/desuite/desuite-web/backend/internal/demorequest/service"
	"github.com/desuite/desuite-web/backend/internal/notify"
	"github.com/desuite/desuite-web/backend/internal/oidc"
	"github.com/desuite/desuite-web/backend/internal/tokens"
	"github.com/desuite/desuite-web/backend/pkg/logger"
	"github.com/desuite/desuite-web/backend/pkg/metrics"
	"github.com/desuite/desuite-web/backend/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	initLogging(cfg.Log)
	logger.Infof("config loaded: storage=%s keycloak=%v redis=%v jwt_secret_set=%v notify=%v",
		cfg.Storage.Backend, cfg.Keycloak.URL != "", cfg.Redis.Host != "", cfg.JWT.Secret != "", cfg.Notify.ResendAPIKey != "")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open storage: %v", err)
	}
	defer closeRepo()

	// Redis for the shared rate limiter; optional
	var rdb *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
		rdb, err = database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, 3)
		if err != nil {
			logger.Warnf("redis rate limiter unavailable, using in-memory limiter: %v", err)
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	svc := service.New(repo, notify.New(cfg.Notify), service.WithNotifyTimeout(cfg.Notify.Timeout))

	r, err := handlers.NewEngine(cfg.Server.TrustedProxies)
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	opts := handler.Options{AllowAnonymousList: cfg.Auth.AllowAnonymousList}
	if cfg.RateLimit.Enabled {
		if rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			opts.SubmitLimiter = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			opts.SubmitLimiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}
	if ver := buildVerifier(ctx, cfg); ver != nil {
		opts.ListGuard = middleware.AuthMiddleware(ver)
	}
	handler.RegisterDemoRequestRoutes(r, svc, opts)

	checks := map[string]handlers.Check{}
	if p, ok := repo.(repository.Pinger); ok {
		checks["storage"] = p.Ping
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	handlers.RegisterHealth(r, checks)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Starting demo request service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// initLogging applies LOG_LEVEL and the optional rotating file sink.
func initLogging(lc config.LogConfig) {
	logger.Init(lc.Level)
	logger.InitFile(lc.File, lc.MaxSizeMB, lc.MaxBackups)
}

// buildVerifier returns the operator token verifiers that are configured, or nil when none is.
func buildVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	var chain middleware.VerifierChain
	if cfg.JWT.Secret != "" {
		chain = append(chain, tokens.NewHMACVerifier(cfg.JWT.Secret, cfg.JWT.Issuer))
	}
	if cfg.Keycloak.URL != "" && cfg.Keycloak.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.Keycloak.Issuer(), cfg.Keycloak.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			chain = append(chain, ver)
		}
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}
