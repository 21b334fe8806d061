package adaptor

import (
	"encoding/json"
	"net/http"

	"billiard-club/internal/dto/request"
	"billiard-club/internal/usecase"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

type TableHandler struct {
	service usecase.TableService
	log     *zap.Logger
}

func NewTableHandler(service usecase.TableService, log *zap.Logger) *TableHandler {
	return &TableHandler{
		service: service,
		log:     log.With(zap.String("handler", "table")),
	}
}

// List handles GET /api/tables
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list tables")
		return
	}

	utils.ResponseSuccess(w, "Tables retrieved", response)
}

// SetMaintenance handles PUT /api/tables/{id}/maintenance
func (h *TableHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid table ID", nil)
		return
	}

	var req request.SetTableMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.SetMaintenance(r.Context(), tableID, &req)
	if err != nil {
		respondError(w, h.log, err, "set table maintenance")
		return
	}

	utils.ResponseSuccess(w, "Table updated", response)
}
