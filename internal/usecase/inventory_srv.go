package usecase

import (
	"context"
	"fmt"
	"time"

	"billiard-club/internal/data/entity"
	"billiard-club/internal/data/repository"
	"billiard-club/internal/dto/request"
	"billiard-club/internal/dto/response"
	"billiard-club/internal/events"
	"billiard-club/internal/redisx"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InventoryService interface {
	Import(ctx context.Context, req *request.ImportStockRequest) (*response.InventoryRecordResponse, error)
	Adjust(ctx context.Context, req *request.AdjustStockRequest) (*response.InventoryRecordResponse, error)
	GetByService(ctx context.Context, serviceID uuid.UUID) (*response.InventoryRecordResponse, error)
	ListTransactions(ctx context.Context, serviceID uuid.UUID, req *request.ListInventoryTransactionsRequest) ([]response.InventoryTransactionResponse, error)

	// DecreaseTx consumes stock inside a caller-owned transaction (a
	// sale on an order). Returns the resulting quantity, or -1 for an
	// untracked service. Fails InsufficientStock instead of going
	// negative.
	DecreaseTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, svc *entity.ServiceItem, qty int64, reason, actor string) (int64, error)

	// IncreaseTx returns stock inside a caller-owned transaction (a
	// removed line or a cancelled order). Average cost is unchanged.
	IncreaseTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, svc *entity.ServiceItem, qty int64, reason, actor string) error

	// AlertIfLow runs after the caller's transaction committed: fires a
	// deduped stock.low event when quantity sits at or below the
	// service's threshold, clears the dedup key once it recovers.
	AlertIfLow(ctx context.Context, tenantID uuid.UUID, svc *entity.ServiceItem, qty int64)
}

type inventoryService struct {
	repo      *repository.Repository
	publisher events.Publisher
	cache     *redisx.Cache
	config    *utils.Config
	log       *zap.Logger
}

func NewInventoryService(repo *repository.Repository, publisher events.Publisher, cache *redisx.Cache, config *utils.Config, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		config:    config,
		log:       log.With(zap.String("service", "inventory")),
	}
}

// weightedAverage recomputes the moving-average unit cost after an
// acquisition. A non-positive existing quantity resets the average to
// the incoming cost.
func weightedAverage(oldQty int64, oldAvg decimal.Decimal, addQty int64, unitCost decimal.Decimal) decimal.Decimal {
	if oldQty <= 0 {
		return unitCost
	}

	oldTotal := oldAvg.Mul(decimal.NewFromInt(oldQty))
	addTotal := unitCost.Mul(decimal.NewFromInt(addQty))

	return oldTotal.Add(addTotal).DivRound(decimal.NewFromInt(oldQty+addQty), 4)
}

func (s *inventoryService) Import(ctx context.Context, req *request.ImportStockRequest) (*response.InventoryRecordResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	actor := actorFrom(ctx)

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindNotFound, "invalid service id %s", req.ServiceID)
	}

	unitCost, err := decimal.NewFromString(req.UnitCost)
	if err != nil || unitCost.IsNegative() {
		return nil, apperr.Newf(apperr.KindUnavailable, "invalid unit cost %q", req.UnitCost)
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "service %s not found", serviceID.String())
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	record, err := s.repo.Inventory.FindByServiceIDForUpdate(ctx, tx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if record == nil {
		record = &entity.InventoryRecord{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			TenantID:    tenantID,
			ServiceID:   serviceID,
			Quantity:    req.Quantity,
			AvgUnitCost: unitCost,
		}
		if err := s.repo.Inventory.CreateRecord(ctx, tx, record); err != nil {
			return nil, err
		}
	} else {
		record.AvgUnitCost = weightedAverage(record.Quantity, record.AvgUnitCost, req.Quantity, unitCost)
		record.Quantity += req.Quantity
		if err := s.repo.Inventory.UpdateRecord(ctx, tx, record.ID, record.Quantity, record.AvgUnitCost); err != nil {
			return nil, err
		}
	}

	txn := &entity.InventoryTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		TenantID:      tenantID,
		RecordID:      record.ID,
		Type:          entity.InventoryTxImport,
		QuantityDelta: req.Quantity,
		ResultingQty:  record.Quantity,
		UnitCost:      unitCost,
		Reason:        req.Reason,
		Actor:         actor,
	}
	if err := s.repo.Inventory.CreateTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import transaction: %w", err)
	}

	s.log.Info("Stock imported",
		zap.String("service_id", serviceID.String()),
		zap.Int64("quantity", req.Quantity),
		zap.Int64("resulting_qty", record.Quantity),
	)

	s.AlertIfLow(ctx, tenantID, svc, record.Quantity)

	record.UpdatedAt = now
	resp := response.InventoryRecordToResponse(record)
	return &resp, nil
}

func (s *inventoryService) Adjust(ctx context.Context, req *request.AdjustStockRequest) (*response.InventoryRecordResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	actor := actorFrom(ctx)

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindNotFound, "invalid service id %s", req.ServiceID)
	}

	var unitCost *decimal.Decimal
	if req.UnitCost != "" {
		parsed, err := decimal.NewFromString(req.UnitCost)
		if err != nil || parsed.IsNegative() {
			return nil, apperr.Newf(apperr.KindUnavailable, "invalid unit cost %q", req.UnitCost)
		}
		unitCost = &parsed
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "service %s not found", serviceID.String())
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin adjust transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	record, err := s.repo.Inventory.FindByServiceIDForUpdate(ctx, tx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "no inventory record for service %s", serviceID.String())
	}

	resulting := record.Quantity + req.Delta
	if resulting < 0 {
		return nil, apperr.Newf(apperr.KindInsufficientStock,
			"adjustment of %d would take service %s below zero (have %d)", req.Delta, svc.Name, record.Quantity)
	}

	txnCost := record.AvgUnitCost
	if req.Delta > 0 && unitCost != nil {
		record.AvgUnitCost = weightedAverage(record.Quantity, record.AvgUnitCost, req.Delta, *unitCost)
		txnCost = *unitCost
	}
	record.Quantity = resulting

	if err := s.repo.Inventory.UpdateRecord(ctx, tx, record.ID, record.Quantity, record.AvgUnitCost); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := &entity.InventoryTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		TenantID:      tenantID,
		RecordID:      record.ID,
		Type:          entity.InventoryTxAdjustment,
		QuantityDelta: req.Delta,
		ResultingQty:  record.Quantity,
		UnitCost:      txnCost,
		Reason:        req.Reason,
		Actor:         actor,
	}
	if err := s.repo.Inventory.CreateTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit adjust transaction: %w", err)
	}

	s.log.Info("Stock adjusted",
		zap.String("service_id", serviceID.String()),
		zap.Int64("delta", req.Delta),
		zap.Int64("resulting_qty", record.Quantity),
	)

	s.AlertIfLow(ctx, tenantID, svc, record.Quantity)

	record.UpdatedAt = now
	resp := response.InventoryRecordToResponse(record)
	return &resp, nil
}

func (s *inventoryService) GetByService(ctx context.Context, serviceID uuid.UUID) (*response.InventoryRecordResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Inventory.FindByServiceID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "no inventory record for service %s", serviceID.String())
	}

	resp := response.InventoryRecordToResponse(record)
	return &resp, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, serviceID uuid.UUID, req *request.ListInventoryTransactionsRequest) ([]response.InventoryTransactionResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Inventory.FindByServiceID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "no inventory record for service %s", serviceID.String())
	}

	from, err := parseTimeFilter(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTimeFilter(req.To)
	if err != nil {
		return nil, err
	}

	txns, err := s.repo.Inventory.ListTransactions(ctx, tenantID, record.ID, from, to, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	resp := make([]response.InventoryTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		resp = append(resp, response.InventoryTransactionToResponse(txn))
	}

	return resp, nil
}

func (s *inventoryService) DecreaseTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, svc *entity.ServiceItem, qty int64, reason, actor string) (int64, error) {
	if !svc.TrackStock {
		return -1, nil
	}

	record, err := s.repo.Inventory.FindByServiceIDForUpdate(ctx, tx, tenantID, svc.ID)
	if err != nil {
		return 0, err
	}
	if record == nil || record.Quantity < qty {
		have := int64(0)
		if record != nil {
			have = record.Quantity
		}
		return 0, apperr.Newf(apperr.KindInsufficientStock,
			"service %s has %d in stock, need %d", svc.Name, have, qty)
	}

	record.Quantity -= qty
	if err := s.repo.Inventory.UpdateRecord(ctx, tx, record.ID, record.Quantity, record.AvgUnitCost); err != nil {
		return 0, err
	}

	txn := &entity.InventoryTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TenantID:      tenantID,
		RecordID:      record.ID,
		Type:          entity.InventoryTxSale,
		QuantityDelta: -qty,
		ResultingQty:  record.Quantity,
		UnitCost:      record.AvgUnitCost,
		Reason:        reason,
		Actor:         actor,
	}
	if err := s.repo.Inventory.CreateTransaction(ctx, tx, txn); err != nil {
		return 0, err
	}

	return record.Quantity, nil
}

func (s *inventoryService) IncreaseTx(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, svc *entity.ServiceItem, qty int64, reason, actor string) error {
	if !svc.TrackStock {
		return nil
	}

	record, err := s.repo.Inventory.FindByServiceIDForUpdate(ctx, tx, tenantID, svc.ID)
	if err != nil {
		return err
	}

	now := time.Now()

	if record == nil {
		record = &entity.InventoryRecord{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			TenantID:    tenantID,
			ServiceID:   svc.ID,
			Quantity:    qty,
			AvgUnitCost: decimal.Zero,
		}
		if err := s.repo.Inventory.CreateRecord(ctx, tx, record); err != nil {
			return err
		}
	} else {
		record.Quantity += qty
		if err := s.repo.Inventory.UpdateRecord(ctx, tx, record.ID, record.Quantity, record.AvgUnitCost); err != nil {
			return err
		}
	}

	txn := &entity.InventoryTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		TenantID:      tenantID,
		RecordID:      record.ID,
		Type:          entity.InventoryTxReturn,
		QuantityDelta: qty,
		ResultingQty:  record.Quantity,
		UnitCost:      record.AvgUnitCost,
		Reason:        reason,
		Actor:         actor,
	}

	return s.repo.Inventory.CreateTransaction(ctx, tx, txn)
}

func (s *inventoryService) AlertIfLow(ctx context.Context, tenantID uuid.UUID, svc *entity.ServiceItem, qty int64) {
	if !svc.TrackStock || svc.LowStockThreshold <= 0 {
		return
	}

	if qty > svc.LowStockThreshold {
		s.cache.ClearStockLow(ctx, tenantID, svc.ID)
		return
	}

	if !s.cache.MarkStockLow(ctx, tenantID, svc.ID) {
		return
	}

	s.log.Warn("Stock low",
		zap.String("service_id", svc.ID.String()),
		zap.String("service_name", svc.Name),
		zap.Int64("quantity", qty),
		zap.Int64("threshold", svc.LowStockThreshold),
	)

	s.publisher.Publish(events.EventStockLow, tenantID, svc.ID.String(), events.StockLowPayload{
		ServiceID:   svc.ID.String(),
		ServiceName: svc.Name,
		Quantity:    qty,
		Threshold:   svc.LowStockThreshold,
		Message:     fmt.Sprintf("%s is low on stock: %d left (threshold %d)", svc.Name, qty, svc.LowStockThreshold),
	})
}
