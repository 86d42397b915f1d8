package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benclube/membership-service/cep"
	"github.com/benclube/membership-service/config"
	"github.com/benclube/membership-service/handlers"
	"github.com/benclube/membership-service/middleware"
	"github.com/benclube/membership-service/models"
	"github.com/benclube/membership-service/monitoring"
	"github.com/benclube/membership-service/services"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting membership service initialization")

	// Load enum configuration (member types, statuses, display labels)
	enums, err := config.LoadEnums(os.Getenv("ENUMS_CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load enum configuration", "error", err)
		os.Exit(1)
	}
	models.SetEnumConfig(enums)

	// Set up telemetry (prometheus exporter + runtime instrumentation)
	shutdownTelemetry, err := monitoring.Setup(context.Background(), monitoring.Config{
		ServiceName: "membership-service",
	})
	if err != nil {
		slog.Error("Failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	// Connect to the member record store
	dbConfig := NewDatabaseConfig()
	gormDB, err := ConnectGORM(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(&models.Member{}, &models.QRScan{}); err != nil {
		slog.Error("Failed to auto-migrate schema", "error", err)
		os.Exit(1)
	}

	// Initialize services
	memberService := services.NewMemberService(gormDB)
	validationService := services.NewValidationService(gormDB)
	cepClient := cep.NewClient(getEnvOrDefault("VIACEP_BASE_URL", "https://viacep.com.br"))

	// Initialize handlers
	memberHandler := handlers.NewMemberHandler(memberService)
	validationHandler := handlers.NewValidationHandler(validationService)
	qrHandler := handlers.NewQRHandler(memberService, os.Getenv("VALIDATION_BASE_URL"))
	cepHandler := handlers.NewCEPHandler(cepClient)

	// Admin API routes (registration, directory, updates, history, QR export)
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("POST /api/members", memberHandler.RegisterMember)
	adminMux.HandleFunc("GET /api/members", memberHandler.ListMembers)
	adminMux.HandleFunc("GET /api/members/{id}", memberHandler.GetMember)
	adminMux.HandleFunc("PUT /api/members/{id}", memberHandler.UpdateMember)
	adminMux.HandleFunc("PATCH /api/members/{id}/deactivate", memberHandler.DeactivateMember)
	adminMux.HandleFunc("GET /api/members/{id}/scans", validationHandler.ListScans)
	adminMux.HandleFunc("GET /api/members/{id}/qr", qrHandler.GetQRCode)
	adminMux.HandleFunc("GET /api/cep/{code}", cepHandler.Lookup)

	// JWT authentication for the admin surface
	jwtConfig := middleware.JWTAuthConfig{
		Secret: os.Getenv("JWT_SECRET"),
		Issuer: getEnvOrDefault("JWT_ISSUER", "membership-service"),
	}
	if err := jwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	jwtAuthMiddleware := middleware.NewJWTAuthMiddleware(jwtConfig)

	corsMiddleware := middleware.CORSMiddleware()

	// Top-level mux: public routes stay outside the auth chain. The
	// validation endpoint is public because scanners are anonymous.
	topLevelMux := http.NewServeMux()
	topLevelMux.HandleFunc("GET /api/validate", validationHandler.ValidateToken)
	topLevelMux.Handle("/api/", jwtAuthMiddleware.AuthenticateJWT(adminMux))
	topLevelMux.Handle("GET /metrics", monitoring.Handler())

	topLevelMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		code := http.StatusOK
		body := `{"status":"healthy"}`

		if sqlDB, err := gormDB.DB(); err != nil {
			code = http.StatusServiceUnavailable
			body = fmt.Sprintf(`{"status":"unhealthy","error":%q}`, err.Error())
		} else if err := sqlDB.PingContext(ctx); err != nil {
			code = http.StatusServiceUnavailable
			body = fmt.Sprintf(`{"status":"unhealthy","error":%q}`, err.Error())
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		fmt.Fprint(w, body)
	})

	handler := corsMiddleware(monitoring.HTTPMetricsMiddleware(topLevelMux))

	port := getEnvOrDefault("PORT", "3000")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Membership service starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	if err := shutdownTelemetry(ctx); err != nil {
		slog.Warn("Telemetry shutdown failed", "error", err)
	}
	slog.Info("Server shut down")
}
