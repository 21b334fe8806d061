package adaptor

import (
	"encoding/json"
	"net/http"

	"billiard-club/internal/dto/request"
	"billiard-club/internal/usecase"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

type InventoryHandler struct {
	service usecase.InventoryService
	log     *zap.Logger
}

func NewInventoryHandler(service usecase.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "inventory")),
	}
}

// Import handles POST /api/inventory/import
func (h *InventoryHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req request.ImportStockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Import(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "import stock")
		return
	}

	utils.ResponseSuccess(w, "Stock imported", response)
}

// Adjust handles POST /api/inventory/adjust
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req request.AdjustStockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Adjust(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "adjust stock")
		return
	}

	utils.ResponseSuccess(w, "Stock adjusted", response)
}

// GetByService handles GET /api/inventory/{serviceID}
func (h *InventoryHandler) GetByService(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := parseUUIDParam(r, "serviceID")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	response, err := h.service.GetByService(r.Context(), serviceID)
	if err != nil {
		respondError(w, h.log, err, "get inventory record")
		return
	}

	utils.ResponseSuccess(w, "Inventory record retrieved", response)
}

// ListTransactions handles GET /api/inventory/{serviceID}/transactions?from=&to=&page=&per_page=
func (h *InventoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := parseUUIDParam(r, "serviceID")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid service ID", nil)
		return
	}

	req := request.ListInventoryTransactionsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
			PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 50),
		},
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.ListTransactions(r.Context(), serviceID, &req)
	if err != nil {
		respondError(w, h.log, err, "list inventory transactions")
		return
	}

	utils.ResponseSuccess(w, "Inventory transactions retrieved", response)
}
