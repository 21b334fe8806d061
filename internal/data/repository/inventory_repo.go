package repository

import (
	"context"
	"fmt"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InventoryRepository interface {
	FindByServiceID(ctx context.Context, tenantID, serviceID uuid.UUID) (*entity.InventoryRecord, error)

	// FindByServiceIDForUpdate locks the record row; quantity and the
	// paired transaction row always change under this lock.
	FindByServiceIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, serviceID uuid.UUID) (*entity.InventoryRecord, error)

	CreateRecord(ctx context.Context, tx pgx.Tx, record *entity.InventoryRecord) error
	UpdateRecord(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int64, avgUnitCost decimal.Decimal) error
	CreateTransaction(ctx context.Context, tx pgx.Tx, txn *entity.InventoryTransaction) error

	ListTransactions(ctx context.Context, tenantID, recordID uuid.UUID, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error)
}

type inventoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInventoryRepository(db database.PgxIface, log *zap.Logger) InventoryRepository {
	return &inventoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "inventory")),
	}
}

const inventoryRecordColumns = `id, tenant_id, service_id, quantity, avg_unit_cost, created_at, updated_at`

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var record entity.InventoryRecord
	err := row.Scan(
		&record.ID,
		&record.TenantID,
		&record.ServiceID,
		&record.Quantity,
		&record.AvgUnitCost,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *inventoryRepository) FindByServiceID(ctx context.Context, tenantID, serviceID uuid.UUID) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryRecordColumns + `
		FROM inventory_records
		WHERE tenant_id = $1 AND service_id = $2
	`

	record, err := scanInventoryRecord(r.db.QueryRow(ctx, query, tenantID, serviceID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find inventory record",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("find inventory record for service %s: %w", serviceID.String(), err)
	}

	return record, nil
}

func (r *inventoryRepository) FindByServiceIDForUpdate(ctx context.Context, tx pgx.Tx, tenantID, serviceID uuid.UUID) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryRecordColumns + `
		FROM inventory_records
		WHERE tenant_id = $1 AND service_id = $2
		FOR UPDATE
	`

	record, err := scanInventoryRecord(tx.QueryRow(ctx, query, tenantID, serviceID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if database.IsLockTimeout(err) {
		return nil, apperr.Newf(apperr.KindBusy, "inventory record for service %s is locked", serviceID.String())
	}
	if err != nil {
		r.log.Error("Failed to lock inventory record",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("lock inventory record for service %s: %w", serviceID.String(), err)
	}

	return record, nil
}

func (r *inventoryRepository) CreateRecord(ctx context.Context, tx pgx.Tx, record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, tenant_id, service_id, quantity, avg_unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		record.ID,
		record.TenantID,
		record.ServiceID,
		record.Quantity,
		record.AvgUnitCost,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Newf(apperr.KindUnavailable,
				"inventory record for service %s already exists", record.ServiceID.String())
		}
		r.log.Error("Failed to create inventory record",
			zap.Error(err),
			zap.String("service_id", record.ServiceID.String()),
		)
		return fmt.Errorf("create inventory record: %w", err)
	}

	return nil
}

func (r *inventoryRepository) UpdateRecord(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int64, avgUnitCost decimal.Decimal) error {
	query := `
		UPDATE inventory_records
		SET quantity = $2, avg_unit_cost = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, id, quantity, avgUnitCost)
	if err != nil {
		r.log.Error("Failed to update inventory record",
			zap.Error(err),
			zap.String("record_id", id.String()),
		)
		return fmt.Errorf("update inventory record %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "inventory record %s not found", id.String())
	}

	return nil
}

func (r *inventoryRepository) CreateTransaction(ctx context.Context, tx pgx.Tx, txn *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, tenant_id, record_id, type, quantity_delta, resulting_qty, unit_cost, reason, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		txn.ID,
		txn.TenantID,
		txn.RecordID,
		txn.Type,
		txn.QuantityDelta,
		txn.ResultingQty,
		txn.UnitCost,
		txn.Reason,
		txn.Actor,
		txn.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create inventory transaction",
			zap.Error(err),
			zap.String("record_id", txn.RecordID.String()),
			zap.String("type", string(txn.Type)),
		)
		return fmt.Errorf("create inventory transaction: %w", err)
	}

	return nil
}

func (r *inventoryRepository) ListTransactions(ctx context.Context, tenantID, recordID uuid.UUID, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, tenant_id, record_id, type, quantity_delta, resulting_qty, unit_cost, reason, actor, created_at
		FROM inventory_transactions
		WHERE tenant_id = $1 AND record_id = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at < $4)
		ORDER BY created_at
		LIMIT $5 OFFSET $6
	`

	rows, err := r.db.Query(ctx, query, tenantID, recordID, from, to, limit, offset)
	if err != nil {
		r.log.Error("Failed to list inventory transactions",
			zap.Error(err),
			zap.String("record_id", recordID.String()),
		)
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	var txns []*entity.InventoryTransaction
	for rows.Next() {
		var txn entity.InventoryTransaction
		err := rows.Scan(
			&txn.ID,
			&txn.TenantID,
			&txn.RecordID,
			&txn.Type,
			&txn.QuantityDelta,
			&txn.ResultingQty,
			&txn.UnitCost,
			&txn.Reason,
			&txn.Actor,
			&txn.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan inventory transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan inventory transaction row: %w", err)
		}
		txns = append(txns, &txn)
	}

	return txns, nil
}
