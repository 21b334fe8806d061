package repository

import (
	"context"
	"fmt"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PriceRateRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.PriceRate, error)

	// FindActiveByTableType returns the active candidate set handed to
	// the pricing resolver.
	FindActiveByTableType(ctx context.Context, tenantID, tableTypeID uuid.UUID) ([]*entity.PriceRate, error)
}

type priceRateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceRateRepository(db database.PgxIface, log *zap.Logger) PriceRateRepository {
	return &priceRateRepository{
		db:  db,
		log: log.With(zap.String("repository", "price_rate")),
	}
}

const priceRateColumns = `id, tenant_id, table_type_id, name, hourly_rate, weekdays, start_minute, end_minute, priority, is_active, created_at, updated_at`

func scanPriceRate(row pgx.Row) (*entity.PriceRate, error) {
	var rate entity.PriceRate
	err := row.Scan(
		&rate.ID,
		&rate.TenantID,
		&rate.TableTypeID,
		&rate.Name,
		&rate.HourlyRate,
		&rate.Weekdays,
		&rate.StartMinute,
		&rate.EndMinute,
		&rate.Priority,
		&rate.IsActive,
		&rate.CreatedAt,
		&rate.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *priceRateRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.PriceRate, error) {
	query := `
		SELECT ` + priceRateColumns + `
		FROM price_rates
		WHERE tenant_id = $1 AND id = $2
	`

	rate, err := scanPriceRate(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find price rate by ID",
			zap.Error(err),
			zap.String("price_rate_id", id.String()),
		)
		return nil, fmt.Errorf("find price rate by ID %s: %w", id.String(), err)
	}

	return rate, nil
}

func (r *priceRateRepository) FindActiveByTableType(ctx context.Context, tenantID, tableTypeID uuid.UUID) ([]*entity.PriceRate, error) {
	query := `
		SELECT ` + priceRateColumns + `
		FROM price_rates
		WHERE tenant_id = $1 AND table_type_id = $2 AND is_active = TRUE
		ORDER BY priority DESC, id
	`

	rows, err := r.db.Query(ctx, query, tenantID, tableTypeID)
	if err != nil {
		r.log.Error("Failed to find price rates by table type",
			zap.Error(err),
			zap.String("table_type_id", tableTypeID.String()),
		)
		return nil, fmt.Errorf("find price rates by table type %s: %w", tableTypeID.String(), err)
	}
	defer rows.Close()

	var rates []*entity.PriceRate
	for rows.Next() {
		rate, err := scanPriceRate(rows)
		if err != nil {
			r.log.Error("Failed to scan price rate row", zap.Error(err))
			return nil, fmt.Errorf("scan price rate row: %w", err)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}
