package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docshare/docshare/backend/go-services/handlers"
	"github.com/docshare/docshare/backend/go-services/internal/config"
	"github.com/docshare/docshare/backend/go-services/internal/database"
	"github.com/docshare/docshare/backend/go-services/internal/document"
	"github.com/docshare/docshare/backend/go-services/internal/document/handler"
	"github.com/docshare/docshare/backend/go-services/internal/document/repository"
	"github.com/docshare/docshare/backend/go-services/internal/document/service"
	"github.com/docshare/docshare/backend/go-services/internal/oidc"
	"github.com/docshare/docshare/backend/go-services/internal/sessions"
	"github.com/docshare/docshare/backend/go-services/internal/storage"
	"github.com/docshare/docshare/backend/go-services/internal/subjects"
	"github.com/docshare/docshare/backend/go-services/internal/tokens"
	"github.com/docshare/docshare/backend/go-services/internal/users"
	"github.com/docshare/docshare/backend/go-services/pkg/logger"
	"github.com/docshare/docshare/backend/go-services/pkg/metrics"
	"github.com/docshare/docshare/backend/go-services/pkg/middleware"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal, LOG_FORMAT: console|json
	logger.Init(os.Getenv("LOG_LEVEL"))
	if f := os.Getenv("LOG_FORMAT"); f != "" {
		logger.SetEncoding(f)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: keycloak=%v mongo=%v redis=%v jwt_secret_set=%v",
		cfg.Keycloak.Issuer() != "", cfg.MongoDB.URI != "", cfg.Redis.Addr() != "", cfg.JWT.Secret != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	checks := map[string]handlers.Check{}

	// Redis backs the shared rate limiter and the token revocation list.
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	revocations := sessions.NewRevocationList(rdb)

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	docRepo, userRepo, subjectRepo := openRepositories(ctx, cfg, checks)

	opts := service.Options{
		Paging: document.Paging{
			DefaultPageSize: cfg.Documents.DefaultPageSize,
			DefaultPage:     cfg.Documents.DefaultPage,
			MaxPageSize:     cfg.Documents.MaxPageSize,
		},
		ReturnUpdated: cfg.Documents.ReturnUpdated,
	}
	if mc := storage.LoadMinIOConfig(); mc.Enabled() {
		store, err := storage.NewMinIOStorage(ctx, mc)
		if err != nil {
			logger.Warnf("document archive disabled: %v", err)
		} else {
			opts.Archiver = storage.NewDocumentArchive(store)
			checks["minio"] = store.Ping
			logger.Infof("archiving deleted documents to bucket %s", mc.Bucket)
		}
	}

	userSvc := users.NewService(userRepo)
	docSvc := service.New(docRepo, userSvc, subjectRepo, opts)

	var auth gin.HandlerFunc
	if ver := newVerifier(ctx, cfg); ver != nil {
		auth = middleware.AuthMiddleware(ver, revocations)
	} else {
		logger.Warnf("no token verifier configured; protected routes will answer 401")
	}

	api := r.Group("/api/v1")
	handler.RegisterDocumentRoutes(api, docSvc, userSvc, auth)
	if auth != nil {
		handlers.NewAuthHandler(userSvc, revocations).Register(api, auth)
	}

	handlers.RegisterHealth(r, checks)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("document service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// openRepositories connects to MongoDB when configured and falls back to
// in-memory repositories otherwise. The client stays open for the life of
// the process.
func openRepositories(ctx context.Context, cfg *config.Config, checks map[string]handlers.Check) (repository.Repository, users.UserRepository, subjects.Repository) {
	if cfg.MongoDB.URI == "" {
		return repository.NewMemoryRepo(), users.NewMemoryUserRepository(), subjects.NewMemoryRepository()
	}

	// tolerate startup races with the database container
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		logger.Warnf("could not connect to MongoDB after %d attempts, using in-memory repositories: %v", maxAttempts, err)
		checks["mongo"] = func(context.Context) error { return err }
		return repository.NewMemoryRepo(), users.NewMemoryUserRepository(), subjects.NewMemoryRepository()
	}

	db := client.Database(cfg.MongoDB.Database)
	docRepo := repository.NewMongoRepo(db.Collection("documents"))
	userRepo := users.NewMongoUserRepository(db.Collection("users"))
	if err := database.EnsureIndexes(ctx, cfg.MongoDB.Timeout, docRepo, userRepo); err != nil {
		logger.Warnf("%v", err)
	}
	checks["mongo"] = database.Pinger(client, cfg.MongoDB.Timeout)
	logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
	return docRepo, userRepo, subjects.NewMongoRepository(db.Collection("subjects"))
}

// newVerifier prefers the Keycloak realm, then the local HS256 secret, then
// the insecure verifier when explicitly allowed.
func newVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	if issuer := cfg.Keycloak.Issuer(); issuer != "" {
		ver, err := oidc.NewVerifier(ctx, issuer, cfg.Keycloak.ClientID)
		if err == nil {
			logger.Infof("verifying tokens against %s", issuer)
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}
	if cfg.JWT.Secret != "" {
		ver, err := tokens.NewVerifier(cfg)
		if err == nil {
			logger.Infof("verifying HS256 tokens signed with JWT_SECRET")
			return ver
		}
		logger.Warnf("failed to initialize JWT verifier: %v", err)
	}
	if cfg.Server.AllowInsecureToken {
		logger.Warn("enabling insecure token verifier (integration mode)")
		return oidc.NewInsecureVerifier()
	}
	return nil
}
