package wire

import (
	"billiard-club/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTable(r chi.Router, tableHandler *adaptor.TableHandler, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/tables", tableHandler.List)
	r.Put("/tables/{id}/maintenance", tableHandler.SetMaintenance)

	r.Get("/services", catalogHandler.ListServices)
}
