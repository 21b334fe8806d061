package repository

import (
	"context"

	"billiard-club/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Tenant    TenantRepository
	Table     TableRepository
	PriceRate PriceRateRepository
	Service   ServiceRepository
	Order     OrderRepository
	OrderItem OrderItemRepository
	Discount  DiscountRepository
	Inventory InventoryRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tenant:    NewTenantRepository(db, log),
		Table:     NewTableRepository(db, log),
		PriceRate: NewPriceRateRepository(db, log),
		Service:   NewServiceRepository(db, log),
		Order:     NewOrderRepository(db, log),
		OrderItem: NewOrderItemRepository(db, log),
		Discount:  NewDiscountRepository(db, log),
		Inventory: NewInventoryRepository(db, log),
		db:        db,
	}
}

// BeginWithLockTimeout opens the bounded-lock-wait transaction used for
// all order and inventory mutations.
func (r *Repository) BeginWithLockTimeout(ctx context.Context, timeoutMS int) (pgx.Tx, error) {
	return database.BeginWithLockTimeout(ctx, r.db, timeoutMS)
}
