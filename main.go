package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"mergington-project/activities-service/handlers"
	"mergington-project/activities-service/logging"
	"mergington-project/activities-service/repositories"
	"mergington-project/activities-service/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Starting activities service...")

	if err := godotenv.Load(); err != nil {
		logging.Logger.Warn("No .env file found, relying on environment variables")
	}

	repo := repositories.NewActivityRepo("", logging.Logger)

	// The service stays up even without a store; reads degrade to empty
	// results and writes report failure until MongoDB comes back.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.Connect(ctx); err != nil {
		logging.Logger.Warnf("MongoDB connection failed, continuing disconnected: %v", err)
	}
	cancel()
	defer repo.Close(context.Background())

	activityService := services.NewActivityService(repo, logging.Logger)
	activityHandler := handlers.NewActivityHandler(activityService, logging.Logger)

	r := mux.NewRouter()
	activityHandler.RegisterRoutes(r)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Activities service is running"))
	}).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8000"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Server failed to start: %v", err)
	}
}
