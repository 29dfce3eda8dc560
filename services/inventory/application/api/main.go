package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/vetclinic/pkg/app"
	"github.com/ghuser/vetclinic/pkg/auth"
	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

// RouteOptions configures how inventory routes are mounted.
type RouteOptions struct {
	Production          bool
	AuthRequired        bool
	ExpiringDefaultDays int
	SessionStore        sessions.Store // nil skips operator resolution from sessions
	Logger              logger.Logger
}

// InventoryRoutes registers inventory endpoints on the provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) {
	opts := RouteOptions{
		ExpiringDefaultDays: appsvcs.DefaultExpiringDays,
		SessionStore:        a.SessionStore,
		Logger:              a.Logger,
	}
	if cfg := a.Config; cfg != nil {
		opts.Production = cfg.Environment == config.EnvProduction
		opts.AuthRequired = cfg.AuthRequired
		opts.ExpiringDefaultDays = cfg.ExpiringDefaultDays
	}
	Mount(r, appsvcs.New(a), opts)
}

// Mount registers the /items routes backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services, opts RouteOptions) {
	errs := errhttp.NewResponder(opts.Production, opts.Logger)

	r.Group(func(r chi.Router) {
		if mw := operatorMiddleware(opts); mw != nil {
			r.Use(mw)
		}
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs, errs).Execute)
			r.Get("/", handlers.NewListItemsHandler(svcs, errs).Execute)
			r.Get("/low-stock", handlers.NewLowStockHandler(svcs, errs).Execute)
			r.Get("/expiring", handlers.NewExpiringHandler(svcs, errs, opts.ExpiringDefaultDays).Execute)
			r.Get("/export", handlers.NewExportItemsHandler(svcs, errs).Execute)
			r.Get("/reconciliation", handlers.NewReconciliationHandler(svcs, errs).Execute)
			r.Post("/transactions", handlers.NewPostTransactionHandler(svcs, errs).Execute)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetItemHandler(svcs, errs).Execute)
				r.Patch("/", handlers.NewPatchItemHandler(svcs, errs).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs, errs).Execute)
				r.Get("/transactions", handlers.NewListTransactionsHandler(svcs, errs).Execute)
				r.Post("/dispense", handlers.NewPostDispenseHandler(svcs, errs).Execute)
				r.Post("/restock", handlers.NewPostRestockHandler(svcs, errs).Execute)
			})
		})
	})
}

func operatorMiddleware(opts RouteOptions) func(http.Handler) http.Handler {
	if opts.SessionStore == nil {
		return nil
	}
	if opts.AuthRequired {
		return auth.RequireOperator(opts.SessionStore, opts.Logger)
	}
	return auth.LoadOperator(opts.SessionStore, opts.Logger)
}
