package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/tezaurs-gateway/internal/config"
	"github.com/heartmarshall/tezaurs-gateway/internal/transport/middleware"
	"github.com/heartmarshall/tezaurs-gateway/internal/transport/rest"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// routerDeps collects what the HTTP router serves. Auth and Limiter are
// optional; nil disables the corresponding middleware.
type routerDeps struct {
	Logger     *slog.Logger
	Morphology *rest.MorphologyHandler
	Health     *rest.HealthHandler
	Auth       tokenValidator
	Limiter    *middleware.RateLimiter
	RateLimit  int
	CORS       config.CORSConfig
}

// newRouter builds the gateway's handler tree:
//
//	recovery > request id > cors > access log > mux
//	                                            ├── /live /ready /health
//	                                            └── /api/v1/... > auth > rate limit
func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	var requireAuth, rateLimit middleware.Middleware
	if d.Auth != nil {
		requireAuth = middleware.RequireAuth(d.Auth)
	}
	if d.Limiter != nil && d.RateLimit > 0 {
		rateLimit = d.Limiter.Limit(d.RateLimit)
	}
	d.Morphology.Register(mux, middleware.Chain(requireAuth, rateLimit))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.CORS(d.CORS),
		middleware.Logger(d.Logger),
	)(mux)
}
