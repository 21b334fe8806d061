package adaptor

import (
	"encoding/json"
	"net/http"

	"billiard-club/internal/dto/request"
	"billiard-club/internal/usecase"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Open handles POST /api/orders
func (h *OrderHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req request.OpenOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Open(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "open order")
		return
	}

	utils.ResponseCreated(w, "Order opened", response)
}

// Approve handles POST /api/orders/{id}/approve
func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	response, err := h.service.Approve(r.Context(), orderID)
	if err != nil {
		respondError(w, h.log, err, "approve order")
		return
	}

	utils.ResponseSuccess(w, "Order approved", response)
}

// Cancel handles POST /api/orders/{id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	response, err := h.service.Cancel(r.Context(), orderID)
	if err != nil {
		respondError(w, h.log, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "Order cancelled", response)
}

// RequestEnd handles POST /api/orders/{id}/request-end
func (h *OrderHandler) RequestEnd(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	response, err := h.service.RequestEnd(r.Context(), orderID)
	if err != nil {
		respondError(w, h.log, err, "request order end")
		return
	}

	utils.ResponseSuccess(w, "Order end requested", response)
}

// ApproveEnd handles POST /api/orders/{id}/approve-end
func (h *OrderHandler) ApproveEnd(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	req, ok := decodeCloseRequest(w, r)
	if !ok {
		return
	}

	response, err := h.service.ApproveEnd(r.Context(), orderID, req)
	if err != nil {
		respondError(w, h.log, err, "approve order end")
		return
	}

	utils.ResponseSuccess(w, "Order settled", response)
}

// Complete handles POST /api/orders/{id}/complete
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	req, ok := decodeCloseRequest(w, r)
	if !ok {
		return
	}

	response, err := h.service.Complete(r.Context(), orderID, req)
	if err != nil {
		respondError(w, h.log, err, "complete order")
		return
	}

	utils.ResponseSuccess(w, "Order settled", response)
}

// AddItem handles POST /api/orders/{id}/items
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	var req request.AddOrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.AddItem(r.Context(), orderID, &req)
	if err != nil {
		respondError(w, h.log, err, "add order item")
		return
	}

	utils.ResponseCreated(w, "Item added", response)
}

// UpdateItem handles PUT /api/orders/{id}/items/{itemID}
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}
	itemID, ok := parseUUIDParam(r, "itemID")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid item ID", nil)
		return
	}

	var req request.UpdateOrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.UpdateItem(r.Context(), orderID, itemID, &req)
	if err != nil {
		respondError(w, h.log, err, "update order item")
		return
	}

	utils.ResponseSuccess(w, "Item updated", response)
}

// RemoveItem handles DELETE /api/orders/{id}/items/{itemID}
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}
	itemID, ok := parseUUIDParam(r, "itemID")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid item ID", nil)
		return
	}

	response, err := h.service.RemoveItem(r.Context(), orderID, itemID)
	if err != nil {
		respondError(w, h.log, err, "remove order item")
		return
	}

	utils.ResponseSuccess(w, "Item removed", response)
}

// GetByID handles GET /api/orders/{id}
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	response, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		respondError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved", response)
}

// List handles GET /api/orders?status=&from=&to=&page=&per_page=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	req := request.ListOrdersRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
			PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
		},
		Status: r.URL.Query().Get("status"),
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.List(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", response)
}

// decodeCloseRequest tolerates an empty body: closing without a
// discount code needs no payload.
func decodeCloseRequest(w http.ResponseWriter, r *http.Request) (*request.CloseOrderRequest, bool) {
	var req request.CloseOrderRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return nil, false
		}
	}

	return &req, true
}
