package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"passdepot/backend/config"
	"passdepot/backend/handlers"
	"passdepot/backend/middleware"
	"passdepot/backend/services"
	"passdepot/backend/store"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	"google.golang.org/api/option"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsDevelopment() {
		log.Println("Running in development environment")
	}

	// Initialize Firebase Admin SDK for token verification
	log.Println("Initializing Firebase Admin SDK...")
	err = middleware.InitializeFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsJSON, cfg.FirebaseCredentialsBase64)
	if err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Initialize the document store
	docStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	defer docStore.Close()

	engine := services.NewEngine(docStore)

	// Create router
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r, engine)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, engine)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.ServerPort,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", cfg.ServerPort)
	log.Fatal(srv.ListenAndServe())
}

// newStore picks the document store backend. A configured Firestore
// project selects the real store; without one (local development, tests)
// the in-memory store serves the same contract.
func newStore(cfg config.Config) (store.Store, error) {
	if cfg.FirebaseProjectID == "" {
		log.Println("No Firestore project configured, using in-memory store")
		return store.NewMemory(), nil
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
	}
	client, err := firestore.NewClient(context.Background(), cfg.FirebaseProjectID, opts...)
	if err != nil {
		return nil, err
	}
	return store.NewFirestore(client), nil
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router, engine *services.Engine) {
	userHandler := handlers.NewUserHandler(engine)
	passHandler := handlers.NewPassHandler(engine)
	adminHandler := handlers.NewAdminHandler(engine)

	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Profile routes
	protectedRouter.HandleFunc("/users/sync", userHandler.SyncUser).Methods("POST")
	protectedRouter.HandleFunc("/users/profile", userHandler.GetProfile).Methods("GET")
	protectedRouter.HandleFunc("/users/profile", userHandler.UpdateProfile).Methods("PUT")
	protectedRouter.HandleFunc("/users/lookup", userHandler.LookupByPhone).Methods("GET")

	// Pass routes
	protectedRouter.HandleFunc("/passes/transfer", passHandler.Transfer).Methods("POST")
	protectedRouter.HandleFunc("/passes/list", passHandler.ListForMarket).Methods("POST")
	protectedRouter.HandleFunc("/passes/unlist", passHandler.Unlist).Methods("POST")
	protectedRouter.HandleFunc("/passes/sell", passHandler.SellMarket).Methods("POST")
	protectedRouter.HandleFunc("/passes/remove", passHandler.Remove).Methods("POST")
	protectedRouter.HandleFunc("/passes/mine", passHandler.MyPasses).Methods("GET")
	protectedRouter.HandleFunc("/passes/market", passHandler.Market).Methods("GET")
	protectedRouter.HandleFunc("/records", passHandler.MyRecords).Methods("GET")

	// Gym administration routes
	protectedRouter.HandleFunc("/admin/passes", adminHandler.AddPass).Methods("POST")
	protectedRouter.HandleFunc("/admin/passes", adminHandler.GymPasses).Methods("GET")
	protectedRouter.HandleFunc("/admin/passes/delete", adminHandler.DeletePass).Methods("POST")
	protectedRouter.HandleFunc("/admin/passes/sell", adminHandler.SellPass).Methods("POST")
	protectedRouter.HandleFunc("/admin/consume", adminHandler.ConsumePass).Methods("POST")
}
