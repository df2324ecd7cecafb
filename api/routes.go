package api

import (
	"github.com/cofoundry/server/internal/config"
	"github.com/cofoundry/server/internal/db"
	"github.com/cofoundry/server/internal/match"
	"github.com/cofoundry/server/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

// SetupRoutes wires repositories, the matching engine and all handlers onto
// the router. chat may be nil when no copilot backend is configured; the
// chat endpoint is simply not registered then.
func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB, chat ChatClient) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(d, nil)

	// Matching engine
	scorer := match.NewScorer(nil)
	ranker := match.NewRanker(repo, repo, scorer, cfg.Matching.CandidatePool, nil)
	ledger := match.NewLedger(repo, repo, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	profilesHandler, err := NewProfilesHandler(repo)
	if err != nil {
		return nil, err
	}
	matchesHandler := NewMatchesHandler(ranker, ledger, cfg.Matching)
	connectionsHandler := NewConnectionsHandler(ledger, repo, repo)
	resourcesHandler := NewResourcesHandler(repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Profile wizard
	apiV1.HandleFunc("/users/{id}/profile", profilesHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/users/{id}/profile", profilesHandler.UpdateProfile).Methods("PUT")

	// Matching & connection lifecycle
	apiV1.HandleFunc("/matches", matchesHandler.GetMatches).Methods("GET")
	apiV1.HandleFunc("/matches", matchesHandler.CreateRequest).Methods("POST")
	apiV1.HandleFunc("/matches/requests", matchesHandler.ListRequests).Methods("GET")
	apiV1.HandleFunc("/matches/{id}/respond", matchesHandler.Respond).Methods("POST")
	apiV1.HandleFunc("/connections", connectionsHandler.ListConnections).Methods("GET")

	// Messaging between accepted connections
	apiV1.HandleFunc("/messages", connectionsHandler.ListMessages).Methods("GET")
	apiV1.HandleFunc("/messages", connectionsHandler.SendMessage).Methods("POST")

	// Learning resources & points
	apiV1.HandleFunc("/resources", resourcesHandler.ListResources).Methods("GET")
	apiV1.HandleFunc("/resources/{id}/complete", resourcesHandler.CompleteResource).Methods("POST")

	// Founder copilot
	if chat != nil {
		aiHandler := NewAIHandler(chat, repo)
		apiV1.HandleFunc("/ai/chat", aiHandler.Chat).Methods("POST")
	}

	return r, nil
}
