package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"

	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/config"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/geo"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/handlers"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/middleware"
	"github.com/Deepak-Manian/PhonePe-Transaction-Insights/store"
)

type HealthResponse struct {
	Status    string `json:"status"`
	DBStatus  string `json:"db_status"`
	DBDetails struct {
		Host     string   `json:"host"`
		Port     string   `json:"port"`
		Database string   `json:"database"`
		Tables   []string `json:"tables,omitempty"`
	} `json:"db_details"`
	Boundaries int    `json:"boundaries"`
	Error      string `json:"error,omitempty"`
}

func healthCheck(db *sql.DB, regions *geo.RegionIndex) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:     "ok",
			Boundaries: regions.Size(),
		}

		if err := config.CheckPostgresHealth(db); err != nil {
			response.Status = "error"
			response.DBStatus = "connection_error"
			response.Error = err.Error()
		} else {
			response.DBStatus = "connected"
			response.DBDetails.Host = os.Getenv("DB_HOST")
			response.DBDetails.Port = os.Getenv("DB_PORT")
			response.DBDetails.Database = os.Getenv("DB_NAME")

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			response.DBDetails.Tables = config.ExistingTables(ctx, db, store.TableNames())
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("No PORT environment variable found, using default: %s", port)
	}

	log.Println("Initializing PostgreSQL database...")
	db, err := config.InitDBWithRetry(5)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	log.Println("PostgreSQL database initialized successfully")
	defer config.CloseDB(db)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	existing := config.ExistingTables(startupCtx, db, store.TableNames())
	cancelStartup()
	log.Printf("Found %d of %d pulse relations: %s", len(existing), len(store.TableNames()), strings.Join(existing, ", "))

	// The boundary file is the only load allowed to be fatal: with no
	// geometry there is nothing to join maps against.
	log.Println("Loading region boundaries...")
	regions, err := geo.LoadRegionIndex(config.BoundaryPath())
	if err != nil {
		log.Fatalf("Failed to load region boundaries: %v", err)
	}

	tables := store.NewStore(db, config.NewTableCache())
	dc := &handlers.DataContext{Tables: tables, Regions: regions}

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(config.GetEnvWithDefault(
			"ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:5173,http://localhost:8080"), ","),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Origin",
			"X-Requested-With",
		},
		MaxAge: 86400,
	})

	r.Use(middleware.CORSDebugMiddleware)
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(gorillahandlers.CompressHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api, dc)
	log.Println("Routes registered successfully")

	api.HandleFunc("/health/detailed", healthCheck(db, regions)).Methods("GET")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Server is running at http://localhost:%s", port)
	log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router, dc *handlers.DataContext) {
	// Home screen
	api.HandleFunc("/summary", handlers.Summary(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/periods", handlers.Periods(dc)).Methods("GET", "OPTIONS")

	// Transaction dynamics
	api.HandleFunc("/transactions/map", handlers.TransactionsMap(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/transactions/trend", handlers.TransactionsTrend(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/transactions/types", handlers.TransactionTypes(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/transactions/top-states", handlers.TopStates(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/transactions/growth", handlers.TransactionsGrowth(dc)).Methods("GET", "OPTIONS")

	// Device dominance and engagement
	api.HandleFunc("/users/brands", handlers.UserBrands(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/app-opens", handlers.AppOpensByDistrict(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/map", handlers.UsersMap(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/engagement", handlers.UserEngagement(dc)).Methods("GET", "OPTIONS")

	// Insurance penetration
	api.HandleFunc("/insurance/map", handlers.InsuranceMap(dc)).Methods("GET", "OPTIONS")
	api.HandleFunc("/insurance/trend", handlers.InsuranceTrend(dc)).Methods("GET", "OPTIONS")

	// Boundary collection the map payloads join against
	api.HandleFunc("/geo/boundaries", handlers.RegionBoundaries(dc)).Methods("GET", "OPTIONS")

	// Server-side rendering
	api.HandleFunc("/charts/trend.png", handlers.RenderTrendPNG(dc)).Methods("GET")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
}
