package middleware

import (
	"net/http"

	"billiard-club/internal/data/repository"
	"billiard-club/pkg/utils"

	"go.uber.org/zap"
)

// TenantAuth resolves the active store from the X-API-Key header and
// scopes the request context to it. Every core call downstream requires
// this scope; "no tenant" requests never reach tenant-owned data.
func TenantAuth(tenantRepo repository.TenantRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				utils.ResponseUnauthorized(w, "Missing X-API-Key header")
				return
			}

			tenant, err := tenantRepo.FindByAPIKey(r.Context(), apiKey)
			if err != nil {
				logger.Error("Failed to resolve tenant", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if tenant == nil || !tenant.IsActive {
				logger.Warn("Unknown or inactive tenant key", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid API key")
				return
			}

			ctx := utils.SetTenantContext(r.Context(), tenant.ID)
			if actor := r.Header.Get("X-Actor"); actor != "" {
				ctx = utils.SetActorContext(ctx, actor)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
