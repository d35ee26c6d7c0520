package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/haqueashraful/bistro-server/internal/auth"
	"github.com/haqueashraful/bistro-server/internal/bookings"
	"github.com/haqueashraful/bistro-server/internal/carts"
	"github.com/haqueashraful/bistro-server/internal/menu"
	"github.com/haqueashraful/bistro-server/internal/observability"
	"github.com/haqueashraful/bistro-server/internal/payments"
	"github.com/haqueashraful/bistro-server/internal/reviews"
	"github.com/haqueashraful/bistro-server/internal/stats"
	"github.com/haqueashraful/bistro-server/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	MenuHandler     *menu.Handler
	ReviewsHandler  *reviews.Handler
	CartsHandler    *carts.Handler
	BookingsHandler *bookings.Handler
	PaymentsHandler *payments.Handler
	StatsHandler    *stats.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Bistro defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("bistro boss is running"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)
	r.Route("/users", params.UsersHandler.MountRoutes)
	r.Route("/menu", params.MenuHandler.MountRoutes)
	r.Route("/reviews", params.ReviewsHandler.MountRoutes)
	r.Route("/carts", params.CartsHandler.MountRoutes)
	r.Route("/bookings", params.BookingsHandler.MountRoutes)
	r.Route("/payments", params.PaymentsHandler.MountRoutes)
	params.PaymentsHandler.MountIntentRoute(r)
	params.StatsHandler.MountRoutes(r)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
