package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/skillscan/backend/internal/assessment"
	"github.com/skillscan/backend/internal/auth"
	"github.com/skillscan/backend/internal/database"
	"github.com/skillscan/backend/internal/gamification"
	"github.com/skillscan/backend/internal/generator"
	"github.com/skillscan/backend/internal/middleware"
	"github.com/skillscan/backend/internal/questionbank"
	"github.com/skillscan/backend/internal/reasoning"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	bankStore := questionbank.NewStore(db)
	if err := questionbank.SeedIfEmpty(context.Background(), bankStore); err != nil {
		log.Fatalf("Failed to seed question bank: %v", err)
	}

	maxQuestions := 20
	if v := os.Getenv("MAX_QUESTIONS_PER_SESSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxQuestions = n
		}
	}

	manager := assessment.NewManager(reasoning.NewScorerFromEnv(), maxQuestions)
	assessmentStore := assessment.NewStore(db)
	xpService := gamification.NewService(gamification.NewStore(db))
	assessmentService := assessment.NewService(manager, assessmentStore, bankStore, xpService)

	gen := generator.NewGenerator()
	log.Printf("Question generator using model: %s", gen.ModelName())

	authHandler := auth.NewHandler(db)
	assessmentHandler := assessment.NewHandler(assessmentService)
	bankHandler := questionbank.NewHandler(bankStore, gen)
	progressHandler := gamification.NewHandler(xpService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/assessments", assessmentHandler.StartAssessment).Methods("POST")
	protected.HandleFunc("/assessments/{id}/next-question", assessmentHandler.NextQuestion).Methods("GET")
	protected.HandleFunc("/assessments/{id}/answers", assessmentHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/assessments/{id}/assistance", assessmentHandler.RecordAssistance).Methods("POST")
	protected.HandleFunc("/assessments/{id}/complete", assessmentHandler.CompleteAssessment).Methods("POST")
	protected.HandleFunc("/assessments/{id}/analytics", assessmentHandler.GetAnalytics).Methods("GET")
	protected.HandleFunc("/abilities", assessmentHandler.GetAbilities).Methods("GET")

	protected.HandleFunc("/questions", bankHandler.ListQuestions).Methods("GET")
	protected.HandleFunc("/questions/import", bankHandler.ImportQuestions).Methods("POST")
	protected.HandleFunc("/questions/generate", bankHandler.GenerateQuestions).Methods("POST")
	protected.HandleFunc("/questions/{id}", bankHandler.GetQuestion).Methods("GET")
	protected.HandleFunc("/subjects", bankHandler.ListSubjects).Methods("GET")

	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")

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
