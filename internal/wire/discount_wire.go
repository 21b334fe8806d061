package wire

import (
	"billiard-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDiscount(r chi.Router, discountHandler *adaptor.DiscountHandler) {
	r.Post("/discounts/preview", discountHandler.Preview)
}
