package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	TenantIDKey contextKey = "tenant_id"
	ActorKey    contextKey = "actor"
)

// GetTenantIDFromContext returns the tenant scope for the current request.
// Core operations must refuse to run without one; there is no ambient
// default tenant.
func GetTenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantVal := ctx.Value(TenantIDKey)
	if tenantVal == nil {
		return uuid.Nil, false
	}

	tenantStr, ok := tenantVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	tenantID, err := uuid.Parse(tenantStr)
	if err != nil {
		return uuid.Nil, false
	}

	return tenantID, true
}

func SetTenantContext(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID.String())
}

// GetActorFromContext returns the staff identity attached to the request,
// used for inventory transaction audit rows.
func GetActorFromContext(ctx context.Context) (string, bool) {
	actorVal := ctx.Value(ActorKey)
	if actorVal == nil {
		return "", false
	}

	actor, ok := actorVal.(string)
	return actor, ok
}

func SetActorContext(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
