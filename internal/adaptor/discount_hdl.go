package adaptor

import (
	"encoding/json"
	"net/http"

	"billiard-club/internal/dto/request"
	"billiard-club/internal/usecase"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

type DiscountHandler struct {
	service usecase.DiscountService
	log     *zap.Logger
}

func NewDiscountHandler(service usecase.DiscountService, log *zap.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		log:     log.With(zap.String("handler", "discount")),
	}
}

// Preview handles POST /api/discounts/preview
func (h *DiscountHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req request.PreviewDiscountRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Preview(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "preview discount")
		return
	}

	utils.ResponseSuccess(w, "Discount previewed", response)
}
