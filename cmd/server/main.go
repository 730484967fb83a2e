package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"crowdfund.backend/internal/config"
	"crowdfund.backend/internal/infrastructure/jobs"
	"crowdfund.backend/internal/infrastructure/models"
	"crowdfund.backend/internal/infrastructure/repositories"
	"crowdfund.backend/internal/infrastructure/vault"
	"crowdfund.backend/internal/interfaces/http/handlers"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/jwt"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/metrics"
	"crowdfund.backend/pkg/redis"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	connectRedis = redis.Connect
	openDB       = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(ctx context.Context, r *gin.Engine, port string) error {
		ln, err := net.Listen("tcp", ":"+port)
		if err != nil {
			return err
		}
		return serveUntilDone(ctx, &http.Server{Handler: r, ReadHeaderTimeout: readHeaderTimeout}, ln)
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	rdb, err := connectRedis(cfg.Redis.URL, cfg.Redis.Password)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func(c *goredis.Client) { _ = c.Close() }(rdb)
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Database ready")

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ledgerMetrics := metrics.NewLedger(registry)

	// Repositories
	campaignRepo := repositories.NewCampaignRepository(db)
	contributionRepo := repositories.NewContributionRepository(db)
	eventRepo := repositories.NewLedgerEventRepository(db)
	assetVault := vault.New(repositories.NewAssetRepository(db))
	sequencer := usecases.NewSequencer(repositories.NewUnitOfWork(db))

	params := usecases.LedgerParams{
		FeeBasisPoints: cfg.Ledger.FeeBasisPoints,
		FeeRecipient:   cfg.Ledger.FeeRecipientAddress(),
		Owner:          cfg.Ledger.OwnerAddress(),
		Address:        cfg.Ledger.LedgerAddress(),
	}

	// Usecases
	ledgerUsecase := usecases.NewLedgerUsecase(campaignRepo, contributionRepo, eventRepo, assetVault, sequencer, usecases.SystemClock{}, params, ledgerMetrics)
	assetUsecase := usecases.NewAssetUsecase(assetVault, sequencer, params)

	// Background jobs
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	closeJob := jobs.NewCampaignCloseJob(ledgerUsecase, cfg.Ledger.WatcherInterval)
	go closeJob.Start(jobCtx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r, registry)
	registerAPIV1Routes(r, routeDeps{
		campaignHandler:  handlers.NewCampaignHandler(ledgerUsecase),
		assetHandler:     handlers.NewAssetHandler(assetUsecase),
		adminHandler:     handlers.NewAdminHandler(assetUsecase, ledgerUsecase),
		authMiddleware:   middleware.AuthMiddleware(jwtService),
		ownerMiddleware:  middleware.RequireAccount(params.Owner),
		idempotencyStore: redis.NewStore(rdb, "crowdfund:"),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	serveCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger.Info(ctx, "Crowdfund ledger starting",
		zap.String("port", cfg.Server.Port),
		zap.String("ledger", params.Address.Hex()),
		zap.Uint32("fee_bps", params.FeeBasisPoints),
	)

	err = runServer(serveCtx, r, cfg.Server.Port)
	closeJob.Stop()
	cancel()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

// serveUntilDone serves on ln until ctx is cancelled, then drains in-flight requests
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
