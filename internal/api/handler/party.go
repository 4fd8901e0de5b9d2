package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tlindqvist/wordparty/internal/api/apierr"
	"github.com/tlindqvist/wordparty/internal/api/middleware"
	"github.com/tlindqvist/wordparty/internal/api/request"
	"github.com/tlindqvist/wordparty/internal/api/response"
	"github.com/tlindqvist/wordparty/internal/model"
	"github.com/tlindqvist/wordparty/internal/services/party"
	"github.com/tlindqvist/wordparty/internal/sse"
)

// PartyHandler handles party-related endpoints
type PartyHandler struct {
	parties     *party.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(parties *party.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster) *PartyHandler {
	return &PartyHandler{
		parties:     parties,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Join handles POST /api/v1/parties/{code}/join
func (h *PartyHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	connID := model.ConnectionID(uuid.NewString())

	events, err := h.parties.Join(r.Context(), code, connID, req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	h.broadcaster.Deliver(code, events)

	p, err := h.parties.GetParty(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResponse{
		ConnectionID: string(connID),
		Party:        response.PartyFromModel(p),
	})
}

// Get handles GET /api/v1/parties/{code}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])

	p, err := h.parties.GetParty(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PartyFromModel(p))
}

// Start handles POST /api/v1/parties/{code}/start
func (h *PartyHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])
	connID := middleware.GetConnectionID(r.Context())

	events, err := h.parties.Start(r.Context(), code, connID)
	h.deliverOrDrop(w, code, events, err)
}

// Restart handles POST /api/v1/parties/{code}/restart
func (h *PartyHandler) Restart(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])
	connID := middleware.GetConnectionID(r.Context())

	events, err := h.parties.Restart(r.Context(), code, connID)
	h.deliverOrDrop(w, code, events, err)
}

// Guess handles POST /api/v1/parties/{code}/guess
func (h *PartyHandler) Guess(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])
	connID := middleware.GetConnectionID(r.Context())

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("guess is required"))
		return
	}

	events, err := h.parties.Guess(r.Context(), code, connID, model.Word(req.Guess))
	if err != nil {
		if party.IsIgnorable(err) {
			response.NoContent(w)
			return
		}
		apierr.WriteError(w, err)
		return
	}
	h.broadcaster.Deliver(code, events)

	// Echo the feedback to the guesser so plain HTTP clients see it too
	for _, event := range events {
		if event.Type == model.EventFeedback {
			response.JSON(w, http.StatusOK, event.Payload)
			return
		}
	}
	response.NoContent(w)
}

// Finish handles POST /api/v1/parties/{code}/finish
func (h *PartyHandler) Finish(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])
	connID := middleware.GetConnectionID(r.Context())

	var req request.FinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("tries and finish_time are required"))
		return
	}

	events, err := h.parties.Finish(r.Context(), code, connID, req.Tries, req.FinishTime, req.Lost)
	h.deliverOrDrop(w, code, events, err)
}

// Leave handles POST /api/v1/parties/{code}/leave
func (h *PartyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])
	connID := middleware.GetConnectionID(r.Context())

	events, err := h.parties.Disconnect(r.Context(), code, connID)
	h.deliverOrDrop(w, code, events, err)
}

// deliverOrDrop broadcasts the events of a successful transition, or
// applies the permissive drop policy: stray, late, or unauthorized
// messages get an empty response and no broadcast.
func (h *PartyHandler) deliverOrDrop(w http.ResponseWriter, code model.PartyCode, events []model.Event, err error) {
	if err != nil {
		if party.IsIgnorable(err) {
			response.NoContent(w)
			return
		}
		apierr.WriteError(w, err)
		return
	}
	h.broadcaster.Deliver(code, events)
	response.NoContent(w)
}
