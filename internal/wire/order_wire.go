package wire

import (
	"billiard-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.Open)
		r.Get("/", orderHandler.List)
		r.Get("/{id}", orderHandler.GetByID)

		// Lifecycle transitions
		r.Post("/{id}/approve", orderHandler.Approve)
		r.Post("/{id}/cancel", orderHandler.Cancel)
		r.Post("/{id}/request-end", orderHandler.RequestEnd)
		r.Post("/{id}/approve-end", orderHandler.ApproveEnd)
		r.Post("/{id}/complete", orderHandler.Complete)

		// Service lines
		r.Post("/{id}/items", orderHandler.AddItem)
		r.Put("/{id}/items/{itemID}", orderHandler.UpdateItem)
		r.Delete("/{id}/items/{itemID}", orderHandler.RemoveItem)
	})
}
