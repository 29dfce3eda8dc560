package services

import (
	"go.opentelemetry.io/otel"

	"github.com/ghuser/vetclinic/pkg/app"
	"github.com/ghuser/vetclinic/pkg/cache"
	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
	"github.com/ghuser/vetclinic/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog        *CatalogService
	Ledger         *LedgerService
	Alerts         *AlertService
	Query          *QueryService
	Reconciliation *ReconciliationService
}

// New wires all inventory application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	items := postgres.NewItemRepository(a.Db, a.EventBus)

	var txOpts database.TxOptions
	if a.Config != nil {
		txOpts.LockTimeout = a.Config.LedgerLockTimeout
		txOpts.StatementTimeout = a.Config.LedgerStatementTimeout
	}
	ledger := postgres.NewLedgerRepository(a.Db, a.EventBus, txOpts)

	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = NewRedisItemCache(cache.NewItemCache(a.Redis))
	}

	metrics, err := NewLedgerMetrics(otel.Meter("vetclinic/inventory"))
	if err != nil {
		a.Logger.Warn("ledger metrics disabled", "error", err)
		metrics = nil
	}

	return NewServices(items, ledger, itemCache, metrics, a.Logger)
}

// NewServices wires the services over the given repositories. itemCache and
// metrics may be nil.
func NewServices(items repositories.ItemRepository, ledger repositories.LedgerRepository, itemCache ItemCache, metrics *LedgerMetrics, log logger.Logger) *Services {
	return &Services{
		Catalog:        NewCatalogService(items, itemCache, log),
		Ledger:         NewLedgerService(ledger, itemCache, metrics, log),
		Alerts:         NewAlertService(items),
		Query:          NewQueryService(items),
		Reconciliation: NewReconciliationService(items, ledger, metrics, log),
	}
}
