package response

// DiscountPreviewResponse reports eligibility of a code for an amount.
// Reason carries the specific failed rule when not eligible.
type DiscountPreviewResponse struct {
	Code           string `json:"code"`
	Eligible       bool   `json:"eligible"`
	Reason         string `json:"reason,omitempty"`
	DiscountAmount int64  `json:"discount_amount"`
	AmountPayable  int64  `json:"amount_payable"`
}
