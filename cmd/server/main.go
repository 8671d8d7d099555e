package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traced-greeter/internal/config"
	"traced-greeter/internal/handler"
	"traced-greeter/internal/logging"
	"traced-greeter/internal/metrics"
	"traced-greeter/internal/service"
	"traced-greeter/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "traced-greeter/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	newLoggerFunc          = logging.New
	initTracerFunc         = tracing.InitTracer
	newMetricsFunc         = metrics.New
	newGreeterServiceFunc  = service.NewGreeterService
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.New
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Traced Greeter API
// @version         1.0
// @description     A greeting service instrumented with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLoggerFunc(logging.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newMetricsFunc()

	// Init tracing; an unusable exporter degrades to local-only spans
	tracingCfg := tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		Enabled:        cfg.TracingEnabled,
		Endpoint:       cfg.OTLPEndpoint,
		Protocol:       cfg.OTLPProtocol,
		Insecure:       cfg.OTLPInsecure,
		SampleRatio:    cfg.TraceSampleRatio,
	}
	tp, tracer, err := initTracerFunc(ctx, tracingCfg)
	if err != nil {
		m.RecordExporterFailure(cfg.OTLPProtocol)
		logger.Error("failed to initialize trace exporter, spans will not be exported", zap.Error(err))
		tracingCfg.Enabled = false
		if tp, tracer, err = initTracerFunc(ctx, tracingCfg); err != nil {
			logger.Fatal("failed to initialize tracer", zap.Error(err))
		}
	}
	shutdownTimeout := time.Duration(cfg.ShutdownTimeoutSecs) * time.Second
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer flushCancel()
		if err := tp.Shutdown(flushCtx); err != nil {
			logger.Error("error shutting down tracer provider", zap.Error(err))
		}
	}()

	greeter := newGreeterServiceFunc(tracer, logger)
	h := newHandlerFunc(greeter, m, logger)

	r := setupRouter(newRouterFunc(), cfg, h, m, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	logger.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func setupRouter(r *gin.Engine, cfg *config.Config, h *handler.Handler, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	// Recovery sits innermost so a recovered 500 is still seen by the
	// request span, the access log and the request counters.
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(handler.RequestID(), handler.AccessLog(logger), handler.Metrics(m))
	r.Use(gin.Recovery())

	h.RegisterRoutes(r)
	h.RegisterMetrics(r, cfg.MetricsAPIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
