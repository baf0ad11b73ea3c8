// Package kernel assembles the automart HTTP handler: global middleware,
// the API routes and the infrastructure endpoints.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/automart/app/graphql"
	"github.com/shashiranjanraj/automart/app/routes"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/config"
	gql "github.com/shashiranjanraj/automart/pkg/graphql"
	"github.com/shashiranjanraj/automart/pkg/logger"
	"github.com/shashiranjanraj/automart/pkg/metrics"
	"github.com/shashiranjanraj/automart/pkg/middleware"
	"github.com/shashiranjanraj/automart/pkg/reqid"
	"github.com/shashiranjanraj/automart/pkg/response"
	"github.com/shashiranjanraj/automart/pkg/router"
	"github.com/shashiranjanraj/automart/pkg/storage"
)

type HTTPKernel struct {
	router  *router.Router
	limiter *middleware.Limiter
}

// NewHTTPKernel builds the router. A zero RateLimitPerMinute disables the
// limiter.
func NewHTTPKernel() *HTTPKernel {
	k := &HTTPKernel{router: router.New()}
	r := k.router

	// Global middleware, outermost first. Metrics wraps everything so its
	// latency is the full request; the request id must exist before the
	// logger runs; recovery sits inside the logger so a panic is still logged.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if n := config.RateLimitPerMinute(); n > 0 {
		k.limiter = middleware.NewLimiter(n, time.Minute)
		r.Use(k.limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())

	if d, err := storage.Use("local"); err == nil {
		if local, ok := d.(*storage.LocalDisk); ok {
			r.Mount("/storage", "storage", http.StripPrefix("/storage", local.FileServer()))
		}
	}

	if schema, err := graphql.NewSchema(services.NewCatalogService()); err != nil {
		logger.Error("graphql: schema disabled", "error", err)
	} else {
		r.Post("/graphql", "graphql", gql.Handler(schema))
	}

	routes.RegisterAPI(r)
	return k
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists every registered endpoint, for route:list.
func (k *HTTPKernel) Routes() []router.Route { return k.router.Routes() }

// Limiter returns the rate limiter, or nil when it is disabled.
func (k *HTTPKernel) Limiter() *middleware.Limiter { return k.limiter }
