package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tlindqvist/wordparty/internal/api/middleware"
	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/services/party"
	"github.com/tlindqvist/wordparty/internal/sse"
)

// EventsHandler serves the per-party SSE stream
type EventsHandler struct {
	parties     *party.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(parties *party.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		parties:     parties,
		hubManager:  hubManager,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Stream handles GET /api/v1/parties/{code}/events.
// The stream closing is the disconnect signal: the player is removed
// from the party and the remaining members are notified.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])
	connID := middleware.GetConnectionID(r.Context())

	hub := h.hubManager.GetOrCreateHub(code)
	sse.ServeSSE(w, r, hub, connID)

	// The request context is already canceled once the stream ends
	ctx := context.WithoutCancel(r.Context())
	events, err := h.parties.Disconnect(ctx, code, connID)
	if err != nil {
		if !party.IsIgnorable(err) {
			h.logger.Error("disconnect failed",
				slog.String("party", string(code)),
				slog.String("connection", string(connID)),
				slog.Any("error", err))
		}
		return
	}
	h.broadcaster.Deliver(code, events)
}
