package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/erp/ledger/docs"
	purchaseapp "github.com/erp/ledger/internal/application/purchase"
	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/cache"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/event"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/infrastructure/persistence"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/erp/ledger/internal/interfaces/http/handler"
	"github.com/erp/ledger/internal/interfaces/http/middleware"
	"github.com/erp/ledger/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// providers groups the OpenTelemetry pipelines so they can be flushed together.
type providers struct {
	tracer *telemetry.TracerProvider
	meter  *telemetry.MeterProvider
	logs   *telemetry.LoggerProvider
}

func (p *providers) shutdown(ctx context.Context, log *zap.Logger) {
	if err := p.tracer.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := p.meter.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := p.logs.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
}

//	@title			Purchase Ledger API
//	@version		1.0
//	@description	Purchase ledger transactions with matching, balance reconciliation and nominal posting.

//	@contact.name	Ledger maintainers

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	otel, err := setupTelemetry(ctx, cfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := telemetry.BridgeLogger(baseLog, otel.logs, cfg.Telemetry.ServiceName)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting purchase ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver == persistence.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver))

	accounts, err := postingAccounts(cfg.Posting)
	if err != nil {
		log.Fatal("Invalid posting configuration", zap.Error(err))
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	eventBus := event.NewInMemoryEventBus(log)
	audit := purchaseapp.NewAuditHandler(log)
	eventBus.Subscribe(audit, audit.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	service := purchaseapp.NewTransactionService(
		persistence.NewGormTransactionScope(db.DB),
		accounts,
		eventBus,
		log,
	)
	ledgerMetrics, err := telemetry.NewLedgerMetrics(otel.meter.Meter("purchase-ledger"), log)
	if err != nil {
		log.Fatal("Failed to initialize ledger metrics", zap.Error(err))
	}
	service.SetLedgerMetrics(ledgerMetrics)

	engine, limiter, err := newEngine(cfg, log, otel)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	defer limiter.Stop()

	idempotency := middleware.Idempotency(idempotencyStore, shared.IdempotencyConfig{
		Enabled: cfg.Idempotency.Enabled,
		TTL:     cfg.Idempotency.TTL,
	})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
	router.NewRouter(engine).
		Register(handler.PurchaseRoutes(handler.NewPurchaseHandler(service), idempotency)).
		Register(handler.SystemRoutes(handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion,
			map[string]handler.Pinger{"database": db}))).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	otel.shutdown(shutdownCtx, log)

	log.Info("Server exited gracefully")
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*providers, error) {
	t := cfg.Telemetry
	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}
	meter, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           t.MetricsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ExportInterval:    t.MetricsInterval,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}
	logs, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           t.LogsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}
	return &providers{tracer: tracer, meter: meter, logs: logs}, nil
}

func postingAccounts(cfg config.PostingConfig) (purchase.PostingAccounts, error) {
	control, err := cfg.PurchaseControlID()
	if err != nil {
		return purchase.PostingAccounts{}, errors.New("posting.purchase_control_nominal is not set; run `migrate seed` and copy the printed id")
	}
	vat, err := cfg.VatID()
	if err != nil {
		return purchase.PostingAccounts{}, errors.New("posting.vat_nominal is not set; run `migrate seed` and copy the printed id")
	}
	return purchase.PostingAccounts{PurchaseControl: control, Vat: vat}, nil
}

// newEngine builds the gin engine with the global middleware chain. The
// returned limiter must be stopped on shutdown.
func newEngine(cfg *config.Config, log *zap.Logger, otel *providers) (*gin.Engine, *middleware.RateLimiter, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, nil, err
	}

	httpMetrics, err := middleware.HTTPMetrics(otel.meter.Meter("purchase-ledger/http"))
	if err != nil {
		return nil, nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSOrigins
	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.HTTP.HSTSEnabled

	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimit.Requests, cfg.HTTP.RateLimit.Window)

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(security),
		middleware.CORSWithConfig(cors),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     otel.tracer.IsEnabled(),
		}),
		middleware.SpanErrorMarker(),
		httpMetrics,
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Timeout(cfg.HTTP.RequestTimeout),
	)
	if cfg.HTTP.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(limiter))
	}
	return engine, limiter, nil
}
