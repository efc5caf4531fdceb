package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cargo-platform-go/internal/http/handlers"
	mw "cargo-platform-go/internal/http/middleware"
	"cargo-platform-go/internal/logx"
)

// Deps groups everything the router mounts.
type Deps struct {
	Logger       logx.Logger
	Base         *handlers.Handlers
	Cargo        *handlers.CargoHandler
	Bid          *handlers.BidHandler
	Dispatch     *handlers.DispatchHandler
	Tracking     *handlers.TrackingHandler
	Confirmation *handlers.ConfirmationHandler

	// RateLimit is applied to the API group when set.
	RateLimit func(http.Handler) http.Handler
	Metrics   *mw.HTTPMetrics
	// Gatherer backs GET /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	logger := d.Logger
	logger = logx.OrNop(logger)
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(logger, d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(api chi.Router) {
		if d.RateLimit != nil {
			api.Use(d.RateLimit)
		}
		api.Use(mw.Actor(logger))

		api.Route("/cargos", func(cr chi.Router) {
			cr.Post("/", d.Cargo.Create)
			cr.Get("/", d.Cargo.List)

			cr.Route("/{id}", func(one chi.Router) {
				one.Get("/", d.Cargo.Get)
				one.Patch("/", d.Cargo.Update)
				one.Delete("/", d.Cargo.Delete)
				one.Post("/cancel", d.Cargo.Cancel)

				one.Post("/bids", d.Bid.Submit)
				one.Get("/bids", d.Bid.ListForCargo)

				one.Put("/tracking", d.Tracking.Record)
				one.Get("/tracking", d.Tracking.Get)

				one.Get("/confirmation", d.Confirmation.Get)
				one.Post("/confirmation/driver", d.Confirmation.ConfirmDriver)
				one.Post("/confirmation/receiver", d.Confirmation.ConfirmReceiver)
			})
		})

		api.Route("/bids/{id}", func(br chi.Router) {
			br.Get("/", d.Bid.Get)
			br.Patch("/status", d.Bid.SetStatus)
		})

		api.Route("/dispatch-orders", func(dr chi.Router) {
			dr.Post("/", d.Dispatch.Create)
			dr.Get("/{id}", d.Dispatch.Get)
			dr.Post("/{id}/assign", d.Dispatch.Assign)
			dr.Post("/{id}/complete", d.Dispatch.Complete)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))
	r.MethodNotAllowed(http.HandlerFunc(d.Base.MethodNotAllowed))

	return r
}
