package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/inbound/http"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/blob/local"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/blob/s3"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/blob/segment"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/cache"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/journal"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/jwtauth"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/redisquota"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/adapter/outbound/sqlite"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/config"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/service"
	"github.com/anthanhphan/go-cloud-drive/pkg/idgen"
	"github.com/anthanhphan/go-cloud-drive/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const (
	shutdownTimeout     = 15 * time.Second
	defaultMaintenance  = time.Hour
	redisConnectTimeout = 3 * time.Second
)

type App struct {
	cfg         *config.Config
	server      *httpHandler.Server
	bus         *service.EventBus
	maintenance *service.Maintenance
	interval    time.Duration
	closers     []namedCloser

	backgroundStop context.CancelFunc
}

type namedCloser struct {
	name string
	c    io.Closer
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)
	if cfg.Auth.JWTSecret == config.DefaultConfig().Auth.JWTSecret {
		logger.Warnw("Using the default JWT secret, set DRIVE_JWT_SECRET outside local development")
	}

	a := &App{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			a.closeAll()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 3. Metadata database
	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	a.track("sqlite", db)

	// 4. Redis (optional) and Snowflake IDGen
	var redisClient *redis.Client
	var clock idgen.Clock = idgen.SystemClock{}
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.track("redis", redisClient)

		pingCtx, pingCancel := context.WithTimeout(ctx, redisConnectTimeout)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		clock = idgen.NewRedisClock(redisClient, 0)
	}

	idGen, err := idgen.New(cfg.App.NodeID, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	// 5. Blob storage
	blobs, compactor, err := a.openBlobStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	// 6. Quota event store
	retention := cfg.QuotaRetention()
	quotaEvents, pruner := newQuotaStore(cfg, db, redisClient)

	// 7. Observers and event bus
	usageJournal, err := journal.Open(cfg.Observers.UsageLogPath)
	if err != nil {
		return nil, err
	}
	a.track("usage journal", usageJournal)

	pool := resilience.NewWorkerPool(cfg.Events.Workers, cfg.Events.QueueSize,
		resilience.WithName("archive-events"),
		resilience.WithPanicHandler(func(recovered any) {
			logger.Errorw("Event worker panic", "panic", fmt.Sprint(recovered))
		}),
	)
	a.bus = service.NewEventBus(pool,
		service.NewAuditObserver(sqlite.NewAuditStore(db)),
		service.NewUsageLogObserver(usageJournal),
		service.MetricsObserver{},
	)

	// 8. Services
	folders := cache.NewFolderStore(
		sqlite.NewFolderStore(db),
		cfg.Cache.FolderSize,
		time.Duration(cfg.Cache.FolderTTLSeconds)*time.Second,
	)
	svc := service.NewDriveService(cfg, service.Dependencies{
		Folders:     folders,
		Files:       sqlite.NewFileStore(db),
		Blobs:       blobs,
		QuotaEvents: quotaEvents,
		Events:      a.bus,
		IDGen:       idGen,
	})

	a.maintenance = service.NewMaintenance(compactor, pruner, retention)
	a.interval = defaultMaintenance
	if secs := cfg.Storage.Segment.CompactionIntervalSeconds; secs > 0 {
		a.interval = time.Duration(secs) * time.Second
	}

	// 9. HTTP Server
	verifier := jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	a.server = httpHandler.NewServer(cfg, svc, verifier, db)

	ok = true
	return a, nil
}

// newQuotaStore picks the quota event backend. The pruner is nil unless events are
// kept in SQLite with a retention configured.
func newQuotaStore(cfg *config.Config, db *sqlite.DB, redisClient redis.UniversalClient) (port.QuotaEventStore, service.QuotaPruner) {
	if cfg.Quota.Backend == "redis" {
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-quota",
			FailureThreshold: 5,
			OpenTimeout:      10 * time.Second,
			OnStateChange: func(name string, from, to resilience.CircuitBreakerState) {
				logger.Warnw("Circuit breaker state changed", "breaker", name, "from", from, "to", to)
			},
		})
		return redisquota.NewStore(redisClient, breaker, cfg.QuotaRetention()), nil
	}

	store := sqlite.NewQuotaStore(db)
	if cfg.QuotaRetention() <= 0 {
		return store, nil
	}
	return store, store
}

// openBlobStorage returns the configured backend. The compactor is nil unless the
// backend keeps segment files.
func (a *App) openBlobStorage(ctx context.Context, cfg config.StorageConfig) (port.BlobStorage, service.Compactor, error) {
	switch cfg.Backend {
	case "segment":
		store, err := segment.Open(segment.Config{
			Dir:             cfg.Segment.Dir,
			MaxSegmentBytes: cfg.Segment.MaxSegmentBytes,
			FSync:           cfg.Segment.FSync,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open segment store: %w", err)
		}
		a.track("segment store", store)
		logger.Infow("Segment blob store opened", "dir", cfg.Segment.Dir, "live_blobs", store.Len())
		return store, store, nil
	case "s3":
		store, err := s3.New(ctx, s3.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		store, err := local.New(cfg.Local.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}

func (a *App) track(name string, c io.Closer) {
	a.closers = append(a.closers, namedCloser{name: name, c: c})
}

// closeAll closes resources in reverse order of creation.
func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].c.Close(); err != nil {
			logger.Warnw("Close failed", "resource", a.closers[i].name, "error", err.Error())
		}
	}
	a.closers = nil
}

func (a *App) Run() error {
	bgCtx, cancel := context.WithCancel(context.Background())
	a.backgroundStop = cancel
	go a.maintenance.Start(bgCtx, a.interval)

	logger.Infow("Drive service starting",
		"addr", a.cfg.Server.Addr,
		"storage_backend", a.cfg.Storage.Backend,
		"quota_backend", a.cfg.Quota.Backend,
		"quota_limit", a.cfg.Quota.Limit,
		"quota_window_seconds", a.cfg.Quota.WindowSeconds,
	)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Drive server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down drive services")
	a.backgroundStop()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		runErr = errors.Join(runErr, err)
	}
	if err := a.bus.Close(ctx); err != nil {
		logger.Warnw("Event bus did not drain in time", "error", err.Error())
	}
	a.closeAll()

	return runErr
}

// IssueToken signs a bearer token for userID with the configured secret.
func IssueToken(configPath, userID string) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	verifier := jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	return verifier.Issue(userID, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
}
