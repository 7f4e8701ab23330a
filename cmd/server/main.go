package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/sat-prep/backend/internal/auth"
	"github.com/sat-prep/backend/internal/database"
	"github.com/sat-prep/backend/internal/explain"
	"github.com/sat-prep/backend/internal/middleware"
	"github.com/sat-prep/backend/internal/progress"
	"github.com/sat-prep/backend/internal/questions"
	"github.com/sat-prep/backend/internal/rewards"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	progressService := progress.NewService(progress.NewPostgresStore(db))
	explainService := explain.NewService()
	questionStore := questions.NewStore(db)
	questionService := questions.NewService(questionStore, progressService, explainService)
	rewardService := rewards.NewService(rewards.NewPostgresStore(db))

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	progressHandler := progress.NewHandler(progressService)
	questionHandler := questions.NewHandler(questionService, questionStore)
	rewardHandler := rewards.NewHandler(rewardService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Session routes work with or without a token; anonymous users get
	// uniform question sampling and no progress tracking.
	sessions := api.PathPrefix("").Subrouter()
	sessions.Use(middleware.OptionalAuthMiddleware)
	sessions.HandleFunc("/sessions", questionHandler.StartSession).Methods("POST")
	sessions.HandleFunc("/sessions/{id}/next", questionHandler.NextQuestion).Methods("GET")
	sessions.HandleFunc("/sessions/{id}/answers", questionHandler.SubmitAnswer).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/progress/scores", progressHandler.GetScores).Methods("GET")
	protected.HandleFunc("/progress/weak", progressHandler.GetWeakCategories).Methods("GET")
	protected.HandleFunc("/progress/review/{category}", progressHandler.GetReview).Methods("GET")
	protected.HandleFunc("/rewards", rewardHandler.GetInventory).Methods("GET")
	protected.HandleFunc("/rewards/roll", rewardHandler.Roll).Methods("POST")
	protected.HandleFunc("/rewards/equip", rewardHandler.Equip).Methods("POST")
	protected.HandleFunc("/rewards/unequip", rewardHandler.Unequip).Methods("POST")
	protected.HandleFunc("/questions", questionHandler.ListQuestions).Methods("GET")
	protected.HandleFunc("/questions", questionHandler.CreateQuestion).Methods("POST")
	protected.HandleFunc("/questions/{id}", questionHandler.DeleteQuestion).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
