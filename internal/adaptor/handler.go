package adaptor

import (
	"net/http"

	"billiard-club/internal/usecase"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Order     *OrderHandler
	Inventory *InventoryHandler
	Discount  *DiscountHandler
	Table     *TableHandler
	Catalog   *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Order:     NewOrderHandler(service.Order, log),
		Inventory: NewInventoryHandler(service.Inventory, log),
		Discount:  NewDiscountHandler(service.Discount, log),
		Table:     NewTableHandler(service.Table, log),
		Catalog:   NewCatalogHandler(service.Catalog, log),
	}
}

// respondError maps a domain failure kind to an HTTP status. Busy gets
// 503 so clients know the same request may be retried verbatim; the
// 409/422 split follows "state conflict" vs "request not satisfiable".
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := apperr.KindOf(err)

	switch kind {
	case apperr.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.KindInvalidTransition, apperr.KindTableUnavailable:
		log.Warn(operation+" failed - state conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case apperr.KindNoApplicableRate, apperr.KindInvalidInterval,
		apperr.KindDiscountNotEligible, apperr.KindInsufficientStock:
		log.Warn(operation+" failed - not satisfiable", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case apperr.KindTenantMismatch:
		log.Warn(operation+" failed - tenant mismatch", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case apperr.KindBusy:
		log.Warn(operation+" failed - busy", zap.Error(err))
		utils.ResponseServiceUnavailable(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Something went wrong")
	}
}

// parseUUIDParam reads a chi URL parameter as a UUID.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
