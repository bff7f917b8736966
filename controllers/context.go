package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

type ContextKey string

const PrincipalKey = ContextKey("principal")

// PrincipalFrom returns the authenticated caller, or nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(PrincipalKey).(*models.Principal)
	return p
}

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// customerID is zero unless the caller is a logged-in customer.
func customerID(r *http.Request) uint {
	p := PrincipalFrom(r.Context())
	if p == nil || p.Role != models.RoleCustomer {
		return 0
	}
	return p.ID
}

// decodeAndValidate writes a 400 and returns false when the body is malformed
// or fails validation. Bodies implementing models.Normalizer are trimmed first
// so stored names match the uniqueness checks.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		log.Printf("Invalid request body: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if n, ok := dst.(models.Normalizer); ok {
		n.Normalize()
	}
	if err := utils.ValidateStruct(dst); err != nil {
		log.Printf("Validation failed: %v", err)
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// respondRepoError maps repository sentinels to HTTP statuses.
func respondRepoError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, fmt.Sprintf("%s not found", entity))
	case errors.Is(err, repository.ErrDuplicate):
		utils.RespondError(w, http.StatusConflict, fmt.Sprintf("%s already exists", entity))
	case errors.Is(err, repository.ErrInvalidReference):
		utils.RespondError(w, http.StatusBadRequest, "Referenced record does not exist")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// invalidatePropertyCache runs after the mutation has committed. List
// responses built from older rows are rejected by the cache generation.
func invalidatePropertyCache(c cache.PropertyCache) {
	go c.Invalidate(context.Background())
}
