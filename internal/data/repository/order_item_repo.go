package repository

import (
	"context"
	"fmt"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderItemRepository interface {
	Create(ctx context.Context, tx pgx.Tx, item *entity.OrderItem) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.OrderItem, error)
	FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) ([]*entity.OrderItem, error)

	// FindByOrderIDTx reads the lines inside the settlement transaction
	// so totals are computed from the same snapshot that gets frozen.
	FindByOrderIDTx(ctx context.Context, tx pgx.Tx, tenantID, orderID uuid.UUID) ([]*entity.OrderItem, error)

	UpdateQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int, total int64) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type orderItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderItemRepository(db database.PgxIface, log *zap.Logger) OrderItemRepository {
	return &orderItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "order_item")),
	}
}

const orderItemColumns = `id, tenant_id, order_id, service_id, quantity, unit_price, total, created_at`

func scanOrderItem(row pgx.Row) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := row.Scan(
		&item.ID,
		&item.TenantID,
		&item.OrderID,
		&item.ServiceID,
		&item.Quantity,
		&item.UnitPrice,
		&item.Total,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) Create(ctx context.Context, tx pgx.Tx, item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, tenant_id, order_id, service_id, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		item.ID,
		item.TenantID,
		item.OrderID,
		item.ServiceID,
		item.Quantity,
		item.UnitPrice,
		item.Total,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order item",
			zap.Error(err),
			zap.String("order_id", item.OrderID.String()),
			zap.String("service_id", item.ServiceID.String()),
		)
		return fmt.Errorf("create order item: %w", err)
	}

	return nil
}

func (r *orderItemRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.OrderItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE tenant_id = $1 AND id = $2
	`

	item, err := scanOrderItem(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order item by ID",
			zap.Error(err),
			zap.String("order_item_id", id.String()),
		)
		return nil, fmt.Errorf("find order item by ID %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *orderItemRepository) FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	return r.findByOrderID(ctx, r.db, tenantID, orderID)
}

func (r *orderItemRepository) FindByOrderIDTx(ctx context.Context, tx pgx.Tx, tenantID, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	return r.findByOrderID(ctx, tx, tenantID, orderID)
}

func (r *orderItemRepository) findByOrderID(ctx context.Context, q database.Querier, tenantID, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items
		WHERE tenant_id = $1 AND order_id = $2
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, tenantID, orderID)
	if err != nil {
		r.log.Error("Failed to find order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find items for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			r.log.Error("Failed to scan order item row", zap.Error(err))
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *orderItemRepository) UpdateQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int, total int64) error {
	query := `UPDATE order_items SET quantity = $2, total = $3 WHERE id = $1`

	result, err := tx.Exec(ctx, query, id, quantity, total)
	if err != nil {
		r.log.Error("Failed to update order item",
			zap.Error(err),
			zap.String("order_item_id", id.String()),
		)
		return fmt.Errorf("update order item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "order item %s not found", id.String())
	}

	return nil
}

func (r *orderItemRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `DELETE FROM order_items WHERE id = $1`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete order item",
			zap.Error(err),
			zap.String("order_item_id", id.String()),
		)
		return fmt.Errorf("delete order item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "order item %s not found", id.String())
	}

	return nil
}
