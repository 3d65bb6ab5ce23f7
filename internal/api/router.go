package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/studyhall/studyhall-server/internal/api/recovery"
	"github.com/studyhall/studyhall-server/internal/api/requestid"
	"github.com/studyhall/studyhall-server/internal/services"
	"github.com/studyhall/studyhall-server/internal/store"
)

// Deps bundles everything the router needs.
type Deps struct {
	Store       store.Store
	Completions services.Completions
	UploadDir   string
	IsHealthy   func() bool
	Log         zerolog.Logger
}

// NewRouter wires every API route. Numeric id segments are constrained
// in the route pattern so malformed ids 404 before reaching a handler;
// this also disambiguates /materials/{userId} from /materials/detail/{id}.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()

	router.Use(requestid.Middleware)
	router.Use(recovery.Middleware)

	userSvc := services.NewUserService(d.Store)
	materialSvc := services.NewMaterialService(d.Store)
	sessionSvc := services.NewSessionService(d.Store)
	summarySvc := services.NewSummaryService(d.Store)
	flashcardSvc := services.NewFlashcardService(d.Store)
	conversationSvc := services.NewConversationService(d.Store)
	assistantSvc := services.NewAssistantService(d.Completions, d.Store, d.Log)

	authHandler := NewAuthHandler(userSvc)
	userHandler := NewUserHandler(userSvc)
	materialHandler := NewMaterialHandler(materialSvc, NewFileStore(d.UploadDir))
	sessionHandler := NewSessionHandler(sessionSvc)
	summaryHandler := NewSummaryHandler(summarySvc)
	flashcardHandler := NewFlashcardHandler(flashcardSvc)
	conversationHandler := NewConversationHandler(conversationSvc)
	assistantHandler := NewAssistantHandler(assistantSvc)
	healthHandler := NewHealthHandler(d.IsHealthy)

	// Health
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Auth
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Users
	router.HandleFunc("/api/user/{id:[0-9]+}", userHandler.GetUser).Methods("GET")

	// Study materials
	router.HandleFunc("/api/materials", materialHandler.CreateMaterial).Methods("POST")
	router.HandleFunc("/api/materials/detail/{id:[0-9]+}", materialHandler.GetMaterial).Methods("GET")
	router.HandleFunc("/api/materials/{userId:[0-9]+}", materialHandler.ListMaterials).Methods("GET")
	router.HandleFunc("/api/materials/{id:[0-9]+}", materialHandler.UpdateMaterial).Methods("PUT")
	router.HandleFunc("/api/materials/{id:[0-9]+}", materialHandler.DeleteMaterial).Methods("DELETE")

	// Summaries
	router.HandleFunc("/api/summaries", summaryHandler.CreateSummary).Methods("POST")
	router.HandleFunc("/api/summaries/material/{materialId:[0-9]+}", summaryHandler.ListSummariesByMaterial).Methods("GET")

	// Study sessions
	router.HandleFunc("/api/sessions", sessionHandler.CreateSession).Methods("POST")
	router.HandleFunc("/api/sessions/upcoming/{userId:[0-9]+}", sessionHandler.ListUpcomingSessions).Methods("GET")
	router.HandleFunc("/api/sessions/{userId:[0-9]+}", sessionHandler.ListSessions).Methods("GET")
	router.HandleFunc("/api/sessions/{id:[0-9]+}", sessionHandler.UpdateSession).Methods("PUT")
	router.HandleFunc("/api/sessions/{id:[0-9]+}", sessionHandler.DeleteSession).Methods("DELETE")

	// Flashcards
	router.HandleFunc("/api/flashcards", flashcardHandler.CreateFlashcard).Methods("POST")
	router.HandleFunc("/api/flashcards/material/{materialId:[0-9]+}", flashcardHandler.ListFlashcardsByMaterial).Methods("GET")
	router.HandleFunc("/api/flashcards/{userId:[0-9]+}", flashcardHandler.ListFlashcards).Methods("GET")
	router.HandleFunc("/api/flashcards/{id:[0-9]+}", flashcardHandler.DeleteFlashcard).Methods("DELETE")

	// Conversations
	router.HandleFunc("/api/conversations", conversationHandler.CreateConversation).Methods("POST")
	router.HandleFunc("/api/conversations/{userId:[0-9]+}", conversationHandler.ListConversations).Methods("GET")
	router.HandleFunc("/api/conversations/{id:[0-9]+}", conversationHandler.UpdateConversation).Methods("PUT")
	router.HandleFunc("/api/conversations/{id:[0-9]+}", conversationHandler.DeleteConversation).Methods("DELETE")

	// Assistant
	router.HandleFunc("/api/ai/status", assistantHandler.Status).Methods("GET")
	router.HandleFunc("/api/ai/chat", assistantHandler.Chat).Methods("POST")
	router.HandleFunc("/api/ai/summarize", assistantHandler.Summarize).Methods("POST")
	router.HandleFunc("/api/ai/flashcards", assistantHandler.GenerateFlashcards).Methods("POST")
	router.HandleFunc("/api/ai/study-plan", assistantHandler.GenerateStudyPlan).Methods("POST")

	return router
}
