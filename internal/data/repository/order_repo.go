package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"billiard-club/internal/billing"
	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OrderFilter narrows List/Count. Zero values mean "no filter".
type OrderFilter struct {
	Status entity.OrderStatus
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, order *entity.Order) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUpdate serializes state transitions on one order. Two
	// concurrent closers both lock here; the loser re-reads a completed
	// status and fails the transition guard.
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, id uuid.UUID) (*entity.Order, error)

	// HasOpenOrderForTable must run under the table row lock so the
	// availability check and the insert are one atomic check-and-set.
	HasOpenOrderForTable(ctx context.Context, tx pgx.Tx, tenantID, tableID uuid.UUID) (bool, error)

	SetApproved(ctx context.Context, tx pgx.Tx, id uuid.UUID, startedAt time.Time) error
	SetPendingEnd(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	SetCancelled(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// Settle writes the final totals, end timestamp and completed
	// status in one statement guarded on the closable states; zero rows
	// affected means another closer won.
	Settle(ctx context.Context, tx pgx.Tx, id uuid.UUID, endedAt time.Time, totals *billing.Totals, discountCodeID *uuid.UUID) error

	List(ctx context.Context, tenantID uuid.UUID, filter OrderFilter, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) (int64, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, tenant_id, code, table_id, price_rate_id, hourly_rate, status, started_at, ended_at,
		discount_code_id, play_minutes, subtotal, discount_amount, amount_paid, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.TenantID,
		&order.Code,
		&order.TableID,
		&order.PriceRateID,
		&order.HourlyRate,
		&order.Status,
		&order.StartedAt,
		&order.EndedAt,
		&order.DiscountCodeID,
		&order.PlayMinutes,
		&order.Subtotal,
		&order.DiscountAmount,
		&order.AmountPaid,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, tenant_id, code, table_id, price_rate_id, hourly_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.TenantID,
		order.Code,
		order.TableID,
		order.PriceRateID,
		order.HourlyRate,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Newf(apperr.KindUnavailable, "order code %s already exists", order.Code)
		}
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("code", order.Code),
			zap.String("table_id", order.TableID.String()),
		)
		return fmt.Errorf("create order %s: %w", order.Code, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE tenant_id = $1 AND id = $2
	`

	order, err := scanOrder(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`

	order, err := scanOrder(tx.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if database.IsLockTimeout(err) {
		return nil, apperr.Newf(apperr.KindBusy, "order %s is locked by another operation", id.String())
	}
	if err != nil {
		r.log.Error("Failed to lock order row",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("lock order %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *orderRepository) HasOpenOrderForTable(ctx context.Context, tx pgx.Tx, tenantID, tableID uuid.UUID) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE tenant_id = $1 AND table_id = $2 AND status IN ('pending', 'active', 'pending_end')
	`

	var count int
	if err := tx.QueryRow(ctx, query, tenantID, tableID).Scan(&count); err != nil {
		r.log.Error("Failed to check open orders for table",
			zap.Error(err),
			zap.String("table_id", tableID.String()),
		)
		return false, fmt.Errorf("check open orders for table %s: %w", tableID.String(), err)
	}

	return count > 0, nil
}

func (r *orderRepository) SetApproved(ctx context.Context, tx pgx.Tx, id uuid.UUID, startedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = 'active', started_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := tx.Exec(ctx, query, id, startedAt)
	if err != nil {
		r.log.Error("Failed to approve order", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("approve order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindInvalidTransition, "order %s is not pending", id.String())
	}

	return nil
}

func (r *orderRepository) SetPendingEnd(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE orders
		SET status = 'pending_end', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to request order end", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("request end for order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindInvalidTransition, "order %s is not active", id.String())
	}

	return nil
}

func (r *orderRepository) SetCancelled(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'active')
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to cancel order", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("cancel order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindInvalidTransition, "order %s is not pending or active", id.String())
	}

	return nil
}

func (r *orderRepository) Settle(ctx context.Context, tx pgx.Tx, id uuid.UUID, endedAt time.Time, totals *billing.Totals, discountCodeID *uuid.UUID) error {
	query := `
		UPDATE orders
		SET status = 'completed', ended_at = $2, discount_code_id = $3, play_minutes = $4,
		    subtotal = $5, discount_amount = $6, amount_paid = $7, updated_at = NOW()
		WHERE id = $1 AND status IN ('active', 'pending_end')
	`

	result, err := tx.Exec(ctx, query,
		id,
		endedAt,
		discountCodeID,
		totals.PlayMinutes,
		totals.Subtotal,
		totals.DiscountAmount,
		totals.AmountPaid,
	)
	if err != nil {
		r.log.Error("Failed to settle order", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("settle order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindInvalidTransition, "order %s is not in a closable state", id.String())
	}

	return nil
}

func (r *orderRepository) List(ctx context.Context, tenantID uuid.UUID, filter OrderFilter, limit, offset int) ([]*entity.Order, error) {
	where, args := buildOrderFilter(tenantID, filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list orders",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) (int64, error) {
	where, args := buildOrderFilter(tenantID, filter)

	var count int64
	err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s`, where), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return 0, fmt.Errorf("count orders: %w", err)
	}

	return count, nil
}

func buildOrderFilter(tenantID uuid.UUID, filter OrderFilter) (string, []any) {
	conds := []string{"tenant_id = $1"}
	args := []any{tenantID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}
