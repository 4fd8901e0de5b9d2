package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamFor opens the party's SSE stream with a short-lived context and
// returns the recorder once the stream has closed
func (ts *testServer) streamFor(code, connID string, d time.Duration) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/parties/"+code+"/events?connection_id="+connID, nil)

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestEventStreamHeaders(t *testing.T) {
	ts := newTestServer(t)
	host := ts.join(t, "ROOM1", "alice")

	rr := ts.streamFor("ROOM1", host.ConnectionID, 100*time.Millisecond)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
}

func TestEventStreamSendsConnectedEvent(t *testing.T) {
	ts := newTestServer(t)
	host := ts.join(t, "ROOM1", "alice")

	rr := ts.streamFor("ROOM1", host.ConnectionID, 100*time.Millisecond)

	body := rr.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, `data: {"status":"connected"}`)
}

func TestEventStreamRequiresConnectionID(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "ROOM1", "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parties/ROOM1/events", nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStreamCloseDisconnectsPlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.join(t, "ROOM1", "alice")
	guest := ts.join(t, "ROOM1", "bob")

	ts.streamFor("ROOM1", guest.ConnectionID, 100*time.Millisecond)

	party := ts.getParty(t, "ROOM1")
	require.Len(t, party.Members, 1)
	assert.Equal(t, "alice", party.Members[0].Name)
}

func TestStreamCloseOfLastPlayerDeletesParty(t *testing.T) {
	ts := newTestServer(t)
	host := ts.join(t, "ROOM1", "alice")

	ts.streamFor("ROOM1", host.ConnectionID, 100*time.Millisecond)

	rr := ts.request(http.MethodGet, "/api/v1/parties/ROOM1", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
