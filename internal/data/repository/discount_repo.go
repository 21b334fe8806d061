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

type DiscountRepository interface {
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*entity.DiscountCode, error)

	// FindByCodeForUpdate locks the code row inside the settlement
	// transaction so usage accounting cannot race a concurrent close.
	FindByCodeForUpdate(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, code string) (*entity.DiscountCode, error)

	// IncrementUsage bumps used_count, re-checking the limit in SQL;
	// zero rows affected means the code was exhausted underneath us.
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type discountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDiscountRepository(db database.PgxIface, log *zap.Logger) DiscountRepository {
	return &discountRepository{
		db:  db,
		log: log.With(zap.String("repository", "discount")),
	}
}

const discountColumns = `id, tenant_id, code, type, value, min_spend, starts_at, ends_at,
		usage_limit, used_count, is_active, is_public, created_at, updated_at`

func scanDiscount(row pgx.Row) (*entity.DiscountCode, error) {
	var discount entity.DiscountCode
	err := row.Scan(
		&discount.ID,
		&discount.TenantID,
		&discount.Code,
		&discount.Type,
		&discount.Value,
		&discount.MinSpend,
		&discount.StartsAt,
		&discount.EndsAt,
		&discount.UsageLimit,
		&discount.UsedCount,
		&discount.IsActive,
		&discount.IsPublic,
		&discount.CreatedAt,
		&discount.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*entity.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE tenant_id = $1 AND code = $2
	`

	discount, err := scanDiscount(r.db.QueryRow(ctx, query, tenantID, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find discount by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find discount by code %s: %w", code, err)
	}

	return discount, nil
}

func (r *discountRepository) FindByCodeForUpdate(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, code string) (*entity.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE tenant_id = $1 AND code = $2
		FOR UPDATE
	`

	discount, err := scanDiscount(tx.QueryRow(ctx, query, tenantID, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if database.IsLockTimeout(err) {
		return nil, apperr.Newf(apperr.KindBusy, "discount code %s is locked by another operation", code)
	}
	if err != nil {
		r.log.Error("Failed to lock discount row",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("lock discount %s: %w", code, err)
	}

	return discount, nil
}

func (r *discountRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE discount_codes
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment discount usage",
			zap.Error(err),
			zap.String("discount_id", id.String()),
		)
		return fmt.Errorf("increment usage for discount %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NewReason(apperr.KindDiscountNotEligible, apperr.ReasonExhausted,
			fmt.Sprintf("discount %s usage limit reached", id.String()))
	}

	return nil
}
