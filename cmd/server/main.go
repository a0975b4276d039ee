package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/fairjack/fairjack-be/internal/api"
	"github.com/fairjack/fairjack-be/internal/db"
	"github.com/fairjack/fairjack-be/internal/store"
)

func main() {
	var (
		port        = flag.String("port", "8080", "Server port")
		frontendURL = flag.String("frontend", "http://localhost:5173", "Frontend URL for CORS")
		envFile     = flag.String("env", ".env", "Path to env file (database config)")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fairjack",
	})

	// Missing env file is fine; the database is optional.
	if err := godotenv.Load(*envFile); err != nil {
		logger.Debug("no env file loaded", "path", *envFile)
	}

	// Open the round-history database when configured. The server runs
	// without it; rounds just aren't persisted.
	var database *db.Database
	dbCfg := db.ConfigFromEnv()
	if dbCfg.Driver != "" {
		d, err := db.New(dbCfg)
		if err != nil {
			logger.Warn("database unavailable, continuing without persistence", "driver", dbCfg.Driver, "err", err)
		} else {
			logger.Info("database initialized", "driver", dbCfg.Driver)
			database = d
			defer database.Close()
		}
	}

	var sessionStore store.Store
	if database != nil {
		sessionStore = store.NewDatabaseStore(database)
		logger.Info("database session store initialized")
	} else {
		sessionStore = store.NewMemoryStore()
		logger.Info("in-memory session store initialized")
	}

	hub := api.NewHub(logger)
	go hub.Run()

	handlers := api.NewHandlers(sessionStore, database, hub, logger)

	r := mux.NewRouter()
	handlers.RegisterRoutes(r)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "uri", r.RequestURI, "duration", time.Since(start))
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{*frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
