package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tlindqvist/wordparty/internal/api/handler"
	apimiddleware "github.com/tlindqvist/wordparty/internal/api/middleware"
	"github.com/tlindqvist/wordparty/internal/middleware"
	"github.com/tlindqvist/wordparty/internal/services/party"
	"github.com/tlindqvist/wordparty/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	PartyController *party.Controller
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	broadcaster := sse.NewBroadcaster(cfg.HubManager, cfg.Logger)
	partyHandler := handler.NewPartyHandler(cfg.PartyController, cfg.HubManager, broadcaster)
	eventsHandler := handler.NewEventsHandler(cfg.PartyController, cfg.HubManager, broadcaster, cfg.Logger)

	connectionMiddleware := apimiddleware.Connection()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Joining needs no connection ID; it mints one
	api.HandleFunc("/parties/{code}/join", partyHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/parties/{code}", partyHandler.Get).Methods(http.MethodGet)

	// Party routes identified by the connection ID issued at join
	parties := api.PathPrefix("/parties").Subrouter()
	parties.Use(connectionMiddleware)
	parties.HandleFunc("/{code}/start", partyHandler.Start).Methods(http.MethodPost)
	parties.HandleFunc("/{code}/restart", partyHandler.Restart).Methods(http.MethodPost)
	parties.HandleFunc("/{code}/guess", partyHandler.Guess).Methods(http.MethodPost)
	parties.HandleFunc("/{code}/finish", partyHandler.Finish).Methods(http.MethodPost)
	parties.HandleFunc("/{code}/leave", partyHandler.Leave).Methods(http.MethodPost)
	parties.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
