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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/hotel-booking-assistant/cmd/mainconfig"
	"github.com/wolfman30/hotel-booking-assistant/internal/api/router"
	"github.com/wolfman30/hotel-booking-assistant/internal/app/bootstrap"
	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
	"github.com/wolfman30/hotel-booking-assistant/internal/conversation"
	"github.com/wolfman30/hotel-booking-assistant/internal/http/handlers"
	"github.com/wolfman30/hotel-booking-assistant/internal/notify"
	"github.com/wolfman30/hotel-booking-assistant/internal/observability/metrics"
	"github.com/wolfman30/hotel-booking-assistant/internal/webchat"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	cfg := appconfig.Load()

	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting hotel booking assistant",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server stopped")
}

// buildHandler wires every component from cfg. The cleanup func releases
// pools and clients and is safe to call once.
func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	metricsHandler, convMetrics := setupMetrics()
	loadAWS := bootstrap.AWSConfigLoader(mainconfig.Loader(cfg))

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		closers = append(closers, func() { _ = redisClient.Close() })
	}
	sessions := bootstrap.BuildSessionStore(redisClient, cfg, logger)

	bookingService, pool := bootstrap.BuildBookingService(ctx, cfg, logger)
	if pool != nil {
		closers = append(closers, pool.Close)
	}

	mailer := notify.NewConfirmationMailer(bootstrap.BuildEmailSender(ctx, cfg, loadAWS, logger), logger)

	knowledgeService, err := bootstrap.BuildKnowledgeService(ctx, cfg, redisClient, loadAWS, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	var (
		retriever        conversation.Retriever
		knowledgeHandler *handlers.KnowledgeHandler
	)
	if knowledgeService != nil {
		retriever = knowledgeService
		knowledgeHandler = handlers.NewKnowledgeHandler(knowledgeService, logger)
	}

	engine := conversation.NewEngine(bookingService, mailer,
		conversation.WithHistoryLimit(cfg.HistoryLimit),
		conversation.WithLogger(logger),
		conversation.WithMetrics(convMetrics),
	)
	chatService := conversation.NewChatService(engine, sessions, retriever, logger, convMetrics)

	r := router.New(&router.Config{
		Logger:              logger,
		ConversationHandler: conversation.NewHandler(chatService, logger),
		WebChatHandler:      webchat.NewHandler(chatService, logger),
		KnowledgeHandler:    knowledgeHandler,
		MetricsHandler:      metricsHandler,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		AdminAuthSecret:     cfg.AdminJWTSecret,
		RateLimitPerMinute:  cfg.RateLimitPerMinute,
		Bookings:            bookingService,
	})
	return r, cleanup, nil
}

func setupMetrics() (http.Handler, *metrics.ConversationMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewConversationMetrics(reg)
}
