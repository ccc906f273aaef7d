package auth

import (
	"context"

	"github.com/patasfelizes/clinic-api/internal/model"
)

type contextKey struct{}

var claimsKey contextKey

// ContextWithClaims attaches validated token claims to the context so
// services can attribute mutations to the acting user.
func ContextWithClaims(ctx context.Context, claims *model.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*model.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*model.TokenClaims)
	return claims, ok
}
