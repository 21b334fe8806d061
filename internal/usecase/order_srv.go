package usecase

import (
	"context"
	"fmt"
	"time"

	"billiard-club/internal/billing"
	"billiard-club/internal/data/entity"
	"billiard-club/internal/data/repository"
	"billiard-club/internal/dto/request"
	"billiard-club/internal/dto/response"
	"billiard-club/internal/events"
	"billiard-club/internal/pricing"
	"billiard-club/internal/redisx"
	"billiard-club/pkg/apperr"
	"billiard-club/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderService interface {
	Open(ctx context.Context, req *request.OpenOrderRequest) (*response.OrderResponse, error)
	Approve(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error)
	RequestEnd(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error)

	// ApproveEnd and Complete both settle; they differ only in the path
	// that led here (two-step close vs single action).
	ApproveEnd(ctx context.Context, orderID uuid.UUID, req *request.CloseOrderRequest) (*response.OrderResponse, error)
	Complete(ctx context.Context, orderID uuid.UUID, req *request.CloseOrderRequest) (*response.OrderResponse, error)

	AddItem(ctx context.Context, orderID uuid.UUID, req *request.AddOrderItemRequest) (*response.OrderResponse, error)
	UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req *request.UpdateOrderItemRequest) (*response.OrderResponse, error)
	RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*response.OrderResponse, error)

	GetByID(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error)
	List(ctx context.Context, req *request.ListOrdersRequest) (*response.PaginatedResponse[response.OrderResponse], error)
}

// CanTransition is the single source of truth for the order state
// machine. Every edge not listed is invalid.
func CanTransition(from, to entity.OrderStatus) bool {
	switch from {
	case entity.OrderStatusPending:
		return to == entity.OrderStatusActive || to == entity.OrderStatusCancelled
	case entity.OrderStatusActive:
		return to == entity.OrderStatusPendingEnd || to == entity.OrderStatusCompleted || to == entity.OrderStatusCancelled
	case entity.OrderStatusPendingEnd:
		return to == entity.OrderStatusCompleted
	}
	return false
}

type orderService struct {
	repo      *repository.Repository
	inventory InventoryService
	publisher events.Publisher
	cache     *redisx.Cache
	config    *utils.Config
	log       *zap.Logger
}

func NewOrderService(repo *repository.Repository, inventory InventoryService, publisher events.Publisher, cache *redisx.Cache, config *utils.Config, log *zap.Logger) OrderService {
	return &orderService{
		repo:      repo,
		inventory: inventory,
		publisher: publisher,
		cache:     cache,
		config:    config,
		log:       log.With(zap.String("service", "order")),
	}
}

func (s *orderService) Open(ctx context.Context, req *request.OpenOrderRequest) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindNotFound, "invalid table id %s", req.TableID)
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin open transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The table lock makes the availability check and the insert one
	// atomic check-and-set.
	table, err := s.repo.Table.FindByIDForUpdate(ctx, tx, tenantID, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "table %s not found", tableID.String())
	}
	if table.Status != entity.TableStatusFree {
		return nil, apperr.Newf(apperr.KindTableUnavailable, "table %d is %s", table.Number, table.Status)
	}

	open, err := s.repo.Order.HasOpenOrderForTable(ctx, tx, tenantID, tableID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, apperr.Newf(apperr.KindTableUnavailable, "table %d already has an open order", table.Number)
	}

	rates, err := s.repo.PriceRate.FindActiveByTableType(ctx, tenantID, table.TableTypeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	rate, err := pricing.Resolve(rates, now)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:    tenantID,
		Code:        utils.GenerateOrderCode(),
		TableID:     tableID,
		PriceRateID: rate.ID,
		HourlyRate:  rate.HourlyRate,
		Status:      entity.OrderStatusPending,
	}

	if err := s.repo.Order.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit open transaction: %w", err)
	}

	s.log.Info("Order opened",
		zap.String("order_id", order.ID.String()),
		zap.String("code", order.Code),
		zap.String("table_id", tableID.String()),
		zap.Int64("hourly_rate", rate.HourlyRate),
	)

	s.publishOrderEvent(events.EventOrderRequested, order,
		fmt.Sprintf("Order %s requested for table %d", order.Code, table.Number), nil)

	resp := response.OrderToResponse(order, nil)
	return &resp, nil
}

func (s *orderService) Approve(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin approve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, entity.OrderStatusActive) {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"order %s cannot be approved from %s", order.Code, order.Status)
	}

	table, err := s.repo.Table.FindByIDForUpdate(ctx, tx, tenantID, order.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "table %s not found", order.TableID.String())
	}
	if table.Status == entity.TableStatusMaintenance {
		return nil, apperr.Newf(apperr.KindTableUnavailable, "table %d is under maintenance", table.Number)
	}

	now := time.Now()

	if err := s.repo.Order.SetApproved(ctx, tx, order.ID, now); err != nil {
		return nil, err
	}
	if err := s.repo.Table.UpdateStatusTx(ctx, tx, order.TableID, entity.TableStatusOccupied); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit approve transaction: %w", err)
	}

	order.Status = entity.OrderStatusActive
	order.StartedAt = &now

	s.log.Info("Order approved",
		zap.String("order_id", order.ID.String()),
		zap.String("code", order.Code),
	)

	s.cache.SetTableStatus(ctx, tenantID, order.TableID, string(entity.TableStatusOccupied))
	s.publishOrderEvent(events.EventOrderApproved, order,
		fmt.Sprintf("Order %s approved, session started", order.Code), nil)

	resp := response.OrderToResponse(order, nil)
	return &resp, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	actor := actorFrom(ctx)

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, entity.OrderStatusCancelled) {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"order %s cannot be cancelled from %s", order.Code, order.Status)
	}

	wasActive := order.Status == entity.OrderStatusActive

	if err := s.repo.Order.SetCancelled(ctx, tx, order.ID); err != nil {
		return nil, err
	}

	// Consumed stock goes back to the shelf.
	items, err := s.repo.OrderItem.FindByOrderIDTx(ctx, tx, tenantID, order.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		svc, err := s.repo.Service.FindByID(ctx, tenantID, item.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			continue
		}
		reason := fmt.Sprintf("order %s cancelled", order.Code)
		if err := s.inventory.IncreaseTx(ctx, tx, tenantID, svc, int64(item.Quantity), reason, actor); err != nil {
			return nil, err
		}
	}

	if wasActive {
		if err := s.repo.Table.UpdateStatusTx(ctx, tx, order.TableID, entity.TableStatusFree); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel transaction: %w", err)
	}

	order.Status = entity.OrderStatusCancelled

	s.log.Info("Order cancelled",
		zap.String("order_id", order.ID.String()),
		zap.String("code", order.Code),
	)

	if wasActive {
		s.cache.SetTableStatus(ctx, tenantID, order.TableID, string(entity.TableStatusFree))
	}
	s.publishOrderEvent(events.EventOrderCancelled, order,
		fmt.Sprintf("Order %s cancelled", order.Code), nil)

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) RequestEnd(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin request-end transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, entity.OrderStatusPendingEnd) {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"order %s cannot request end from %s", order.Code, order.Status)
	}

	if err := s.repo.Order.SetPendingEnd(ctx, tx, order.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit request-end transaction: %w", err)
	}

	order.Status = entity.OrderStatusPendingEnd

	s.log.Info("Order end requested",
		zap.String("order_id", order.ID.String()),
		zap.String("code", order.Code),
	)

	s.publishOrderEvent(events.EventOrderEndRequested, order,
		fmt.Sprintf("Order %s requested to end", order.Code), nil)

	resp := response.OrderToResponse(order, nil)
	return &resp, nil
}

func (s *orderService) ApproveEnd(ctx context.Context, orderID uuid.UUID, req *request.CloseOrderRequest) (*response.OrderResponse, error) {
	return s.settle(ctx, orderID, req.DiscountCode)
}

func (s *orderService) Complete(ctx context.Context, orderID uuid.UUID, req *request.CloseOrderRequest) (*response.OrderResponse, error) {
	return s.settle(ctx, orderID, req.DiscountCode)
}

// settle is the single closing routine: compute totals from the stored
// rate snapshot and item lines, consume the optional discount, freeze
// the totals block and free the table, all in one transaction. Any
// failure rolls back whole: the order stays open and the table stays
// occupied. Under a concurrent double close exactly one caller commits;
// the loser fails the transition guard.
func (s *orderService) settle(ctx context.Context, orderID uuid.UUID, discountCode string) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin settle transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, entity.OrderStatusCompleted) {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"order %s is not in a closable state (%s)", order.Code, order.Status)
	}
	if order.StartedAt == nil {
		return nil, apperr.Newf(apperr.KindInvalidTransition,
			"order %s has no session start", order.Code)
	}

	now := time.Now()

	items, err := s.repo.OrderItem.FindByOrderIDTx(ctx, tx, tenantID, order.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, billing.LineItem{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}

	totals, err := billing.Calculate(*order.StartedAt, now, order.HourlyRate, lines, nil)
	if err != nil {
		return nil, err
	}

	var discountCodeID *uuid.UUID
	if discountCode != "" {
		discount, err := s.repo.Discount.FindByCodeForUpdate(ctx, tx, tenantID, discountCode)
		if err != nil {
			return nil, err
		}
		if discount == nil {
			return nil, apperr.Newf(apperr.KindNotFound, "discount code %s not found", discountCode)
		}
		if err := CheckEligibility(discount, totals.Subtotal, now); err != nil {
			return nil, err
		}

		totals, err = billing.Calculate(*order.StartedAt, now, order.HourlyRate, lines, &billing.Discount{
			Type:  discount.Type,
			Value: discount.Value,
		})
		if err != nil {
			return nil, err
		}

		if err := s.repo.Discount.IncrementUsage(ctx, tx, discount.ID); err != nil {
			return nil, err
		}
		discountCodeID = &discount.ID
	}

	if err := s.repo.Order.Settle(ctx, tx, order.ID, now, totals, discountCodeID); err != nil {
		return nil, err
	}
	if err := s.repo.Table.UpdateStatusTx(ctx, tx, order.TableID, entity.TableStatusFree); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settle transaction: %w", err)
	}

	order.Status = entity.OrderStatusCompleted
	order.EndedAt = &now
	order.DiscountCodeID = discountCodeID
	order.PlayMinutes = &totals.PlayMinutes
	order.Subtotal = &totals.Subtotal
	order.DiscountAmount = &totals.DiscountAmount
	order.AmountPaid = &totals.AmountPaid

	s.log.Info("Order settled",
		zap.String("order_id", order.ID.String()),
		zap.String("code", order.Code),
		zap.Int("play_minutes", totals.PlayMinutes),
		zap.Int64("subtotal", totals.Subtotal),
		zap.Int64("amount_paid", totals.AmountPaid),
	)

	s.cache.SetTableStatus(ctx, tenantID, order.TableID, string(entity.TableStatusFree))
	s.publishOrderEvent(events.EventOrderSettled, order,
		fmt.Sprintf("Order %s settled, total %d", order.Code, totals.AmountPaid), &totals.AmountPaid)

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) AddItem(ctx context.Context, orderID uuid.UUID, req *request.AddOrderItemRequest) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	actor := actorFrom(ctx)

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.Newf(apperr.KindNotFound, "invalid service id %s", req.ServiceID)
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.IsActive {
		return nil, apperr.Newf(apperr.KindNotFound, "service %s not found", serviceID.String())
	}

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin add-item transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := itemsMutable(order); err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("sale on order %s", order.Code)
	resulting, err := s.inventory.DecreaseTx(ctx, tx, tenantID, svc, int64(req.Quantity), reason, actor)
	if err != nil {
		return nil, err
	}

	item := &entity.OrderItem{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TenantID:  tenantID,
		OrderID:   order.ID,
		ServiceID: svc.ID,
		Quantity:  req.Quantity,
		UnitPrice: svc.Price,
		Total:     svc.Price * int64(req.Quantity),
	}
	if err := s.repo.OrderItem.Create(ctx, tx, item); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit add-item transaction: %w", err)
	}

	s.log.Info("Order item added",
		zap.String("order_id", order.ID.String()),
		zap.String("service_id", svc.ID.String()),
		zap.Int("quantity", req.Quantity),
	)

	if resulting >= 0 {
		s.inventory.AlertIfLow(ctx, tenantID, svc, resulting)
	}

	return s.GetByID(ctx, orderID)
}

func (s *orderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req *request.UpdateOrderItemRequest) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	actor := actorFrom(ctx)

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin update-item transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := itemsMutable(order); err != nil {
		return nil, err
	}

	item, err := s.repo.OrderItem.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrderID != order.ID {
		return nil, apperr.Newf(apperr.KindNotFound, "order item %s not found", itemID.String())
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, item.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "service %s not found", item.ServiceID.String())
	}

	var resulting int64 = -1
	delta := req.Quantity - item.Quantity
	if delta > 0 {
		reason := fmt.Sprintf("sale on order %s", order.Code)
		resulting, err = s.inventory.DecreaseTx(ctx, tx, tenantID, svc, int64(delta), reason, actor)
		if err != nil {
			return nil, err
		}
	} else if delta < 0 {
		reason := fmt.Sprintf("quantity reduced on order %s", order.Code)
		if err := s.inventory.IncreaseTx(ctx, tx, tenantID, svc, int64(-delta), reason, actor); err != nil {
			return nil, err
		}
	}

	if err := s.repo.OrderItem.UpdateQuantity(ctx, tx, item.ID, req.Quantity, item.UnitPrice*int64(req.Quantity)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update-item transaction: %w", err)
	}

	s.log.Info("Order item updated",
		zap.String("order_id", order.ID.String()),
		zap.String("item_id", item.ID.String()),
		zap.Int("quantity", req.Quantity),
	)

	if resulting >= 0 {
		s.inventory.AlertIfLow(ctx, tenantID, svc, resulting)
	}

	return s.GetByID(ctx, orderID)
}

func (s *orderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}
	actor := actorFrom(ctx)

	tx, err := s.repo.BeginWithLockTimeout(ctx, s.config.Billing.LockTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("begin remove-item transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockOrder(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := itemsMutable(order); err != nil {
		return nil, err
	}

	item, err := s.repo.OrderItem.FindByID(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrderID != order.ID {
		return nil, apperr.Newf(apperr.KindNotFound, "order item %s not found", itemID.String())
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, item.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc != nil {
		reason := fmt.Sprintf("line removed from order %s", order.Code)
		if err := s.inventory.IncreaseTx(ctx, tx, tenantID, svc, int64(item.Quantity), reason, actor); err != nil {
			return nil, err
		}
	}

	if err := s.repo.OrderItem.Delete(ctx, tx, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit remove-item transaction: %w", err)
	}

	s.log.Info("Order item removed",
		zap.String("order_id", order.ID.String()),
		zap.String("item_id", item.ID.String()),
	)

	return s.GetByID(ctx, orderID)
}

func (s *orderService) GetByID(ctx context.Context, orderID uuid.UUID) (*response.OrderResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Order.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "order %s not found", orderID.String())
	}

	items, err := s.repo.OrderItem.FindByOrderID(ctx, tenantID, order.ID)
	if err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order, items)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, req *request.ListOrdersRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	from, err := parseTimeFilter(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTimeFilter(req.To)
	if err != nil {
		return nil, err
	}

	filter := repository.OrderFilter{
		Status: entity.OrderStatus(req.Status),
		From:   from,
		To:     to,
	}

	orders, err := s.repo.Order.List(ctx, tenantID, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Order.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	data := make([]response.OrderResponse, 0, len(orders))
	for _, order := range orders {
		data = append(data, response.OrderToResponse(order, nil))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// lockOrder locks the order row for the rest of the transaction. All
// state transitions on one order serialize here.
func (s *orderService) lockOrder(ctx context.Context, tx pgx.Tx, tenantID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.Order.FindByIDForUpdate(ctx, tx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "order %s not found", orderID.String())
	}
	return order, nil
}

// itemsMutable guards the line-editing window: once an order heads into
// settlement its lines are frozen.
func itemsMutable(order *entity.Order) error {
	if order.Status == entity.OrderStatusPending || order.Status == entity.OrderStatusActive {
		return nil
	}
	return apperr.Newf(apperr.KindInvalidTransition,
		"order %s items cannot change in status %s", order.Code, order.Status)
}

func (s *orderService) publishOrderEvent(eventType string, order *entity.Order, message string, amountPaid *int64) {
	s.publisher.Publish(eventType, order.TenantID, order.ID.String(), events.OrderEventPayload{
		OrderID:    order.ID.String(),
		OrderCode:  order.Code,
		TableID:    order.TableID.String(),
		Message:    message,
		AmountPaid: amountPaid,
	})
}
