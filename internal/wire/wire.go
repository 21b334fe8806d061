package wire

import (
	"net/http"

	"billiard-club/internal/adaptor"
	"billiard-club/internal/data/repository"
	"billiard-club/internal/events"
	"billiard-club/internal/redisx"
	"billiard-club/internal/usecase"
	"billiard-club/pkg/middleware"
	"billiard-club/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, publisher events.Publisher, cache *redisx.Cache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, publisher, cache, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// All business routes run tenant-scoped.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.TenantAuth(repo.Tenant, logger))

		wireOrder(r, handler.Order)
		wireInventory(r, handler.Inventory)
		wireDiscount(r, handler.Discount)
		wireTable(r, handler.Table, handler.Catalog)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
