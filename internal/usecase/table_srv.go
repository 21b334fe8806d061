package usecase

import (
	"context"
	"fmt"

	"billiard-club/internal/data/entity"
	"billiard-club/internal/data/repository"
	"billiard-club/internal/dto/request"
	"billiard-club/internal/dto/response"
	"billiard-club/internal/redisx"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TableService interface {
	List(ctx context.Context) ([]response.TableResponse, error)
	SetMaintenance(ctx context.Context, tableID uuid.UUID, req *request.SetTableMaintenanceRequest) (*response.TableResponse, error)
}

type tableService struct {
	repo   *repository.Repository
	cache  *redisx.Cache
	config *utils.Config
	log    *zap.Logger
}

func NewTableService(repo *repository.Repository, cache *redisx.Cache, config *utils.Config, log *zap.Logger) TableService {
	return &tableService{
		repo:   repo,
		cache:  cache,
		config: config,
		log:    log.With(zap.String("service", "table")),
	}
}

func (s *tableService) List(ctx context.Context) ([]response.TableResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	tables, err := s.repo.Table.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := make([]response.TableResponse, 0, len(tables))
	for _, table := range tables {
		resp = append(resp, response.TableToResponse(table))
	}

	return resp, nil
}

func (s *tableService) SetMaintenance(ctx context.Context, tableID uuid.UUID, req *request.SetTableMaintenanceRequest) (*response.TableResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin maintenance transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	table, err := s.repo.Table.FindByIDForUpdate(ctx, tx, tenantID, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "table %s not found", tableID.String())
	}

	// An occupied table belongs to its running order; neither direction
	// of the maintenance flag may steal it.
	if table.Status == entity.TableStatusOccupied {
		return nil, apperr.Newf(apperr.KindTableUnavailable,
			"table %d is occupied by a running order", table.Number)
	}

	status := entity.TableStatusFree
	if *req.Enabled {
		status = entity.TableStatusMaintenance
	}

	if err := s.repo.Table.UpdateStatusTx(ctx, tx, table.ID, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit maintenance transaction: %w", err)
	}

	table.Status = status

	s.log.Info("Table maintenance flag changed",
		zap.String("table_id", table.ID.String()),
		zap.String("status", string(status)),
	)

	s.cache.SetTableStatus(ctx, tenantID, table.ID, string(status))

	resp := response.TableToResponse(table)
	return &resp, nil
}
