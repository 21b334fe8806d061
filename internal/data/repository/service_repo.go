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

type ServiceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.ServiceItem, error)
	FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.ServiceItem, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, tenant_id, name, price, track_stock, low_stock_threshold, is_active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.ServiceItem, error) {
	var svc entity.ServiceItem
	err := row.Scan(
		&svc.ID,
		&svc.TenantID,
		&svc.Name,
		&svc.Price,
		&svc.TrackStock,
		&svc.LowStockThreshold,
		&svc.IsActive,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.ServiceItem, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE tenant_id = $1 AND id = $2
	`

	svc, err := scanService(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return svc, nil
}

func (r *serviceRepository) FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.ServiceItem, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to list services",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.ServiceItem
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, svc)
	}

	return services, nil
}
