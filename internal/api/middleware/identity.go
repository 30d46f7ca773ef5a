// Package middleware holds API-surface middleware: caller identity and
// panic recovery. There are no accounts; callers self-identify with an
// opaque player ID and host-only actions are checked against the
// room's recorded host.
package middleware

import (
	"context"
	"net/http"

	"github.com/quizparty/quizparty-go/internal/api/apierr"
	"github.com/quizparty/quizparty-go/internal/model"
)

type contextKey string

const playerIDContextKey contextKey = "player_id"

// PlayerIDHeader carries the caller's self-assigned identity
const PlayerIDHeader = "X-Player-ID"

// Identity requires the identity header and puts the player ID on the
// request context
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(PlayerIDHeader)
			if id == "" {
				apierr.WriteError(w, apierr.NewInvalidRequestError(PlayerIDHeader+" header is required"))
				return
			}

			ctx := context.WithValue(r.Context(), playerIDContextKey, model.PlayerID(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalIdentity puts the player ID on the context when the header
// is present, without requiring it
func OptionalIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get(PlayerIDHeader); id != "" {
				ctx := context.WithValue(r.Context(), playerIDContextKey, model.PlayerID(id))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPlayerID returns the caller's player ID from the context, if set
func GetPlayerID(ctx context.Context) (model.PlayerID, bool) {
	id, ok := ctx.Value(playerIDContextKey).(model.PlayerID)
	return id, ok
}

// MustGetPlayerID returns the caller's player ID; panics if the
// Identity middleware did not run
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	id, ok := GetPlayerID(ctx)
	if !ok {
		panic("player ID missing from context")
	}
	return id
}
