package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/hieuhoang83/quanan-api/internal/cart"
	"github.com/hieuhoang83/quanan-api/internal/catalog"
	"github.com/hieuhoang83/quanan-api/internal/guests"
	"github.com/hieuhoang83/quanan-api/internal/messaging"
	"github.com/hieuhoang83/quanan-api/internal/notifications"
	"github.com/hieuhoang83/quanan-api/internal/orders"
	"github.com/hieuhoang83/quanan-api/internal/policy"
	"github.com/hieuhoang83/quanan-api/internal/telemetry"
	"github.com/hieuhoang83/quanan-api/internal/vouchers"
)

const serviceVersion = "0.1.0"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "quanan-api", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("quanan-api", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := otelruntime.Start(); err != nil {
		logger.Warn("failed to start runtime metrics", "error", err)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var producer *messaging.Producer
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		producer = messaging.NewProducer(strings.Split(kafkaBrokers, ","), messaging.TopicOrderEvents)
		defer func() { _ = producer.Close() }()
	}

	notifyRepo := notifications.NewRepository(db)

	deps := orders.Deps{
		Prices:   catalog.NewRepository(db),
		Vouchers: vouchers.NewRepository(db),
		Carts:    cart.NewRepository(db),
		Notifier: notifyRepo,
		Guests:   guests.NewRepository(db),
	}
	if producer != nil {
		deps.Events = producer
	}

	cfg := orders.Config{RequireVoucher: os.Getenv("VOUCHER_OPTIONAL") == ""}

	service := orders.NewService(orders.NewPostgresRepository(db), deps, cfg, logger)
	orderHandler := orders.NewHandler(service, logger)
	notifyHandler := notifications.NewHandler(notifyRepo, logger)

	adminOnly := []policy.Role{policy.RoleSuperAdmin, policy.RoleAssistantAdmin}
	capabilities := policy.Table{
		"GET /orders":               adminOnly,
		"PATCH /orders/{id}":        adminOnly,
		"PATCH /orders/{id}/status": adminOnly,
		"DELETE /orders/{id}":       adminOnly,
	}
	guard := policy.Guard(capabilities, logger)

	route := func(h http.HandlerFunc) http.HandlerFunc {
		return guard(telemetry.WithHTTPRoute(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", route(orderHandler.HandleCreate))
	mux.HandleFunc("POST /orders/price", route(orderHandler.HandlePriceQuote))
	mux.HandleFunc("GET /orders", route(orderHandler.HandleList))
	mux.HandleFunc("GET /orders/guest", route(orderHandler.HandleListByGuest))
	mux.HandleFunc("GET /orders/{id}", route(orderHandler.HandleGet))
	mux.HandleFunc("PATCH /orders/{id}", route(orderHandler.HandleUpdate))
	mux.HandleFunc("PATCH /orders/{id}/status", route(orderHandler.HandleUpdateStatus))
	mux.HandleFunc("PATCH /orders/{id}/cancel", route(orderHandler.HandleCancel))
	mux.HandleFunc("DELETE /orders/{id}", route(orderHandler.HandleDelete))
	mux.HandleFunc("GET /notifications", route(notifyHandler.HandleList))
	mux.HandleFunc("POST /notifications/read", route(notifyHandler.HandleMarkRead))
	mux.Handle("GET /metrics", metricsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "quanan-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting api", "port", port, "require_voucher", cfg.RequireVoucher)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
