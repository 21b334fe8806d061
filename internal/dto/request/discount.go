package request

// PreviewDiscountRequest checks a code against an order amount without
// consuming it.
type PreviewDiscountRequest struct {
	Code   string `json:"code" validate:"required"`
	Amount int64  `json:"amount" validate:"min=0"`
}
