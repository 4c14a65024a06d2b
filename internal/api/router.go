package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/teamsplit/internal/api/apierr"
	"github.com/mcoot/teamsplit/internal/api/handler"
	apimiddleware "github.com/mcoot/teamsplit/internal/api/middleware"
	"github.com/mcoot/teamsplit/internal/api/response"
	"github.com/mcoot/teamsplit/internal/middleware"
	"github.com/mcoot/teamsplit/internal/services/group"
	"github.com/mcoot/teamsplit/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	GroupService  *group.Service
	PlayerService *player.Service
	// StorageType is reported by the health endpoint
	StorageType string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	// Match on the escaped path so group and player names may contain "/"
	r := mux.NewRouter().UseEncodedPath()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	// Create handlers
	groupHandler := handler.NewGroupHandler(cfg.GroupService, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.GroupService, cfg.PlayerService, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID())
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Group routes
	api.HandleFunc("/groups", groupHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/groups", groupHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/groups/{group}", groupHandler.Remove).Methods(http.MethodDelete)

	// Player routes
	api.HandleFunc("/groups/{group}/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/groups/{group}/players", playerHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/groups/{group}/players/{player}", playerHandler.Remove).Methods(http.MethodDelete)

	// Maintenance
	api.HandleFunc("/sweep", groupHandler.Sweep).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.StorageType)).Methods(http.MethodGet)

	return r
}

func healthHandler(storageType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: storageType})
	}
}
