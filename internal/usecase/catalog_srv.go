package usecase

import (
	"context"

	"billiard-club/internal/data/repository"
	"billiard-club/internal/dto/response"

	"go.uber.org/zap"
)

// CatalogService exposes the sellable services; add-item snapshots its
// prices from here.
type CatalogService interface {
	ListServices(ctx context.Context) ([]response.ServiceItemResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListServices(ctx context.Context) ([]response.ServiceItemResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	services, err := s.repo.Service.FindAllActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := make([]response.ServiceItemResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, response.ServiceItemToResponse(svc))
	}

	return resp, nil
}
