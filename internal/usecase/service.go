package usecase

import (
	"context"
	"time"

	"billiard-club/internal/data/repository"
	"billiard-club/internal/events"
	"billiard-club/internal/redisx"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Order     OrderService
	Inventory InventoryService
	Discount  DiscountService
	Table     TableService
	Catalog   CatalogService
}

func NewService(repo *repository.Repository, publisher events.Publisher, cache *redisx.Cache, config *utils.Config, log *zap.Logger) *Service {
	inventory := NewInventoryService(repo, publisher, cache, config, log)

	return &Service{
		Order:     NewOrderService(repo, inventory, publisher, cache, config, log),
		Inventory: inventory,
		Discount:  NewDiscountService(repo, log),
		Table:     NewTableService(repo, cache, config, log),
		Catalog:   NewCatalogService(repo, log),
	}
}

// tenantFrom reads the request's tenant scope. Operations refuse to run
// without one; there is no ambient default tenant.
func tenantFrom(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := utils.GetTenantIDFromContext(ctx)
	if !ok {
		return uuid.Nil, apperr.New(apperr.KindTenantMismatch, "no tenant in request context")
	}
	return tenantID, nil
}

// actorFrom reads the staff identity for audit rows, defaulting to
// "system" when the request carried none.
func actorFrom(ctx context.Context) string {
	actor, ok := utils.GetActorFromContext(ctx)
	if !ok || actor == "" {
		return "system"
	}
	return actor
}

// parseTimeFilter turns an optional RFC3339 query value into a filter
// bound.
func parseTimeFilter(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperr.Newf(apperr.KindInvalidInterval, "invalid time filter %q, want RFC3339", value)
	}

	return &t, nil
}
