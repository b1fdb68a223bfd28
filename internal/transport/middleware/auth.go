package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/tezaurs-gateway/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token. The token's
// client name is stored in the request context.
func RequireAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}
			client, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid bearer token")
				return
			}
			if rec, ok := w.(clientRecorder); ok {
				rec.recordClient(client)
			}
			ctx := ctxutil.WithClient(r.Context(), client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="tezaurs-gateway"`)
	http.Error(w, msg, http.StatusUnauthorized)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
