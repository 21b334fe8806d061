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
	"billiard-club/pkg/apperr"

	"go.uber.org/zap"
)

type DiscountService interface {
	// Preview checks a code against an amount without consuming it.
	Preview(ctx context.Context, req *request.PreviewDiscountRequest) (*response.DiscountPreviewResponse, error)
}

type discountService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDiscountService(repo *repository.Repository, log *zap.Logger) DiscountService {
	return &discountService{
		repo: repo,
		log:  log.With(zap.String("service", "discount")),
	}
}

// CheckEligibility applies every discount rule against a subtotal at an
// instant. The returned error carries the first failed rule as a
// sub-reason. Pure: the same inputs always give the same verdict.
func CheckEligibility(discount *entity.DiscountCode, subtotal int64, now time.Time) error {
	if !discount.IsActive {
		return apperr.NewReason(apperr.KindDiscountNotEligible, apperr.ReasonInactive,
			fmt.Sprintf("discount %s is inactive", discount.Code))
	}
	if discount.StartsAt != nil && now.Before(*discount.StartsAt) {
		return apperr.NewReason(apperr.KindDiscountNotEligible, apperr.ReasonNotStarted,
			fmt.Sprintf("discount %s starts at %s", discount.Code, discount.StartsAt.Format(time.RFC3339)))
	}
	if discount.EndsAt != nil && now.After(*discount.EndsAt) {
		return apperr.NewReason(apperr.KindDiscountNotEligible, apperr.ReasonExpired,
			fmt.Sprintf("discount %s ended at %s", discount.Code, discount.EndsAt.Format(time.RFC3339)))
	}
	if discount.UsageLimit != nil && discount.UsedCount >= *discount.UsageLimit {
		return apperr.NewReason(apperr.KindDiscountNotEligible, apperr.ReasonExhausted,
			fmt.Sprintf("discount %s usage limit reached", discount.Code))
	}
	if subtotal < discount.MinSpend {
		return apperr.NewReason(apperr.KindDiscountNotEligible, apperr.ReasonBelowMinimum,
			fmt.Sprintf("discount %s requires a minimum spend of %d", discount.Code, discount.MinSpend))
	}

	return nil
}

func (s *discountService) Preview(ctx context.Context, req *request.PreviewDiscountRequest) (*response.DiscountPreviewResponse, error) {
	tenantID, err := tenantFrom(ctx)
	if err != nil {
		return nil, err
	}

	discount, err := s.repo.Discount.FindByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "discount code %s not found", req.Code)
	}

	resp := &response.DiscountPreviewResponse{
		Code:          discount.Code,
		AmountPayable: req.Amount,
	}

	if err := CheckEligibility(discount, req.Amount, time.Now()); err != nil {
		resp.Reason = apperr.ReasonOf(err)
		return resp, nil
	}

	amount := billing.DiscountAmount(req.Amount, &billing.Discount{
		Type:  discount.Type,
		Value: discount.Value,
	})

	resp.Eligible = true
	resp.DiscountAmount = amount
	resp.AmountPayable = req.Amount - amount

	return resp, nil
}
