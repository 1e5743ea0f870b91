package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/senurad/procuretrack-backend/api/controllers"
	"github.com/senurad/procuretrack-backend/api/middleware"
	"github.com/senurad/procuretrack-backend/internal/draft"
	"github.com/senurad/procuretrack-backend/pkg/config"
	"github.com/senurad/procuretrack-backend/pkg/logger"
	"github.com/senurad/procuretrack-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisP redis.Pinger,
	draftService draft.Service,
	poGateway controllers.POGateway,
	printer controllers.POPrinter,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", controllers.DraftOpen(draftService, logg))
			r.Get("/current", controllers.DraftCurrent(draftService, logg))
			r.Delete("/current", controllers.DraftDiscard(draftService, logg))
			r.Patch("/current", controllers.DraftSetHeader(draftService, logg))
			r.Post("/current/items", controllers.DraftAddItem(draftService, logg))
			r.Patch("/current/items/{itemID}", controllers.DraftUpdateItem(draftService, logg))
			r.Delete("/current/items/{itemID}", controllers.DraftRemoveItem(draftService, logg))
			r.Put("/current/adjustments/{kind}", controllers.DraftSetAdjustment(draftService, logg))
			r.Post("/current/submit", controllers.DraftSubmit(draftService, logg))
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", controllers.POList(poGateway, logg))
			r.Get("/{poID}/lines", controllers.POLines(poGateway, logg))
			r.Post("/{poID}/status", controllers.POUpdateStatus(poGateway, logg))
			r.Get("/{poID}/print", controllers.POPrint(printer, logg))
		})
	})

	return r
}
