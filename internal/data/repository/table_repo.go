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

type TableRepository interface {
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.Table, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Table, error)

	// FindByIDForUpdate locks the table row for the duration of the
	// surrounding transaction; the availability check and the status
	// flip must happen under the same lock.
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, id uuid.UUID) (*entity.Table, error)

	// UpdateStatusTx flips the status inside the caller's transaction;
	// every status change rides the same commit as the order transition
	// that caused it.
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.TableStatus) error
}

type tableRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTableRepository(db database.PgxIface, log *zap.Logger) TableRepository {
	return &tableRepository{
		db:  db,
		log: log.With(zap.String("repository", "table")),
	}
}

const tableColumns = `id, tenant_id, table_type_id, number, status, created_at, updated_at`

func scanTable(row pgx.Row) (*entity.Table, error) {
	var table entity.Table
	err := row.Scan(
		&table.ID,
		&table.TenantID,
		&table.TableTypeID,
		&table.Number,
		&table.Status,
		&table.CreatedAt,
		&table.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.Table, error) {
	query := `
		SELECT ` + tableColumns + `
		FROM club_tables
		WHERE tenant_id = $1
		ORDER BY number
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to list tables",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []*entity.Table
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			r.log.Error("Failed to scan table row", zap.Error(err))
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, table)
	}

	return tables, nil
}

func (r *tableRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Table, error) {
	query := `
		SELECT ` + tableColumns + `
		FROM club_tables
		WHERE tenant_id = $1 AND id = $2
	`

	table, err := scanTable(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find table by ID",
			zap.Error(err),
			zap.String("table_id", id.String()),
		)
		return nil, fmt.Errorf("find table by ID %s: %w", id.String(), err)
	}

	return table, nil
}

func (r *tableRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, id uuid.UUID) (*entity.Table, error) {
	query := `
		SELECT ` + tableColumns + `
		FROM club_tables
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`

	table, err := scanTable(tx.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if database.IsLockTimeout(err) {
		return nil, apperr.Newf(apperr.KindBusy, "table %s is locked by another operation", id.String())
	}
	if err != nil {
		r.log.Error("Failed to lock table row",
			zap.Error(err),
			zap.String("table_id", id.String()),
		)
		return nil, fmt.Errorf("lock table %s: %w", id.String(), err)
	}

	return table, nil
}

func (r *tableRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entity.TableStatus) error {
	query := `UPDATE club_tables SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := tx.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update table status",
			zap.Error(err),
			zap.String("table_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update table %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "table %s not found", id.String())
	}

	return nil
}
