package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/tlindqvist/wordparty/internal/model"
)

// Broadcaster delivers outbound party events to SSE clients. Events are
// JSON-encoded, named after their event type, and routed either to the
// whole party or to a single connection.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Deliver sends each event to its audience. Missing hubs mean nobody is
// listening on this party yet; those events are dropped.
func (b *Broadcaster) Deliver(partyCode model.PartyCode, events []model.Event) {
	if len(events) == 0 {
		return
	}

	hub := b.hubManager.GetHub(partyCode)
	if hub == nil {
		return
	}

	for _, event := range events {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			b.logger.Error("sse failed to encode event",
				slog.String("party", string(partyCode)),
				slog.String("event", string(event.Type)),
				slog.Any("error", err))
			continue
		}

		if event.To != "" {
			hub.SendEventTo(event.To, string(event.Type), string(data))
		} else {
			hub.BroadcastEvent(string(event.Type), string(data))
		}
	}
}
