package main

import (
	"context"
	"net/http"

	"github.com/moonhalo/blogapi/internal/userservice"
)

type contextKey string

const claimsContextKey = contextKey("claims")

func (app *application) createClaimsContext(r *http.Request, claims *userservice.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsContextKey, claims)
	return r.WithContext(ctx)
}

func (app *application) getClaimsContext(r *http.Request) *userservice.Claims {
	claims, ok := r.Context().Value(claimsContextKey).(*userservice.Claims)
	if !ok {
		return nil
	}
	return claims
}
