package wire

import (
	"billiard-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireInventory(r chi.Router, inventoryHandler *adaptor.InventoryHandler) {
	r.Route("/inventory", func(r chi.Router) {
		r.Post("/import", inventoryHandler.Import)
		r.Post("/adjust", inventoryHandler.Adjust)
		r.Get("/{serviceID}", inventoryHandler.GetByService)
		r.Get("/{serviceID}/transactions", inventoryHandler.ListTransactions)
	})
}
