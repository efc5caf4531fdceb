package middleware

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cargo-platform-go/internal/logx"
)

// ActorHeader carries the authenticated user id set by the upstream gateway.
const ActorHeader = "X-User-ID"

type actorKey struct{}

// WithActor returns ctx carrying the actor id.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the actor id stored by Actor.
func ActorFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok && id > 0
}

// ParseActor reads a positive user id from the actor header.
func ParseActor(r *http.Request) (int64, bool) {
	v := strings.TrimSpace(r.Header.Get(ActorHeader))
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Actor rejects requests without a valid actor header with 401.
func Actor(logger logx.Logger) func(http.Handler) http.Handler {
	logger = logx.OrNop(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := ParseActor(r)
			if !ok {
				logger.Warn("missing actor",
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"error":"missing or invalid `+ActorHeader+` header","code":"unauthorized"}`)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), id)))
		})
	}
}
