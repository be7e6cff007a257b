package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pokaque/proyecto-final-backend/models"
	"github.com/pokaque/proyecto-final-backend/services"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims adds verified session claims to the context
func ctxWithClaims(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves the session claims from the context
func ctxGetClaims(ctx context.Context) (*services.Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*services.Claims)
	if !ok || claims == nil {
		return nil, errors.New("no session claims in context")
	}
	return claims, nil
}

// ctxGetActor rebuilds the acting user from the session claims. Policy
// decisions use the role the token was issued with.
func ctxGetActor(ctx context.Context) (*models.User, error) {
	claims, err := ctxGetClaims(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("malformed subject in session claims")
	}
	return &models.User{
		ID:    id,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}
