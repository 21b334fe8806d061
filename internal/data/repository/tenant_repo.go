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

type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error)
}

type tenantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTenantRepository(db database.PgxIface, log *zap.Logger) TenantRepository {
	return &tenantRepository{
		db:  db,
		log: log.With(zap.String("repository", "tenant")),
	}
}

func (r *tenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	query := `
		SELECT id, name, api_key, is_active, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var tenant entity.Tenant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.APIKey,
		&tenant.IsActive,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tenant by ID",
			zap.Error(err),
			zap.String("tenant_id", id.String()),
		)
		return nil, fmt.Errorf("find tenant by ID %s: %w", id.String(), err)
	}

	return &tenant, nil
}

func (r *tenantRepository) FindByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, api_key, is_active, created_at, updated_at
		FROM tenants
		WHERE api_key = $1
	`

	var tenant entity.Tenant
	err := r.db.QueryRow(ctx, query, apiKey).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.APIKey,
		&tenant.IsActive,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tenant by API key", zap.Error(err))
		return nil, fmt.Errorf("find tenant by API key: %w", err)
	}

	return &tenant, nil
}
