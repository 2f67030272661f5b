package middleware

import (
	"context"

	"github.com/mkovaleva/classtrack/internal/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

func NewContextWithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the resolved caller, nil for anonymous calls
func PrincipalFromContext(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}
