package adaptor

import (
	"net/http"

	"billiard-club/internal/usecase"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListServices(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", response)
}
