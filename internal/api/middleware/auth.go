package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tlindqvist/wordparty/internal/api/apierr"
	"github.com/tlindqvist/wordparty/internal/model"
)

type contextKey string

const connectionContextKey contextKey = "connection"

// Connection creates middleware requiring a connection ID on the request.
// The ID is the opaque bearer token handed out at join; it identifies the
// caller's connection for every subsequent party operation.
func Connection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			connID := extractConnectionID(r)
			if connID == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), connectionContextKey, model.ConnectionID(connID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractConnectionID extracts the connection ID from the request
func extractConnectionID(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// SSE streams cannot set headers from EventSource; allow a query param
	return r.URL.Query().Get("connection_id")
}

// GetConnectionID returns the connection ID from the request context
func GetConnectionID(ctx context.Context) model.ConnectionID {
	connID, _ := ctx.Value(connectionContextKey).(model.ConnectionID)
	return connID
}
