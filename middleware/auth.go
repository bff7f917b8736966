package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dcode-github/real_estate_portal/controllers"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/gorilla/mux"
)

var errMissingHeader = errors.New("missing Authorization header")

func principalFromHeader(jwt *utils.JWTManager, r *http.Request) (*models.Principal, error) {
	tokenHeader := r.Header.Get("Authorization")
	if tokenHeader == "" {
		return nil, errMissingHeader
	}

	tokenParts := strings.Split(tokenHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errors.New("invalid Authorization header format")
	}

	claims, err := jwt.ValidateJWT(tokenParts[1])
	if err != nil {
		return nil, err
	}
	return &models.Principal{ID: claims.UserID, Role: claims.Role}, nil
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(jwt *utils.JWTManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := principalFromHeader(jwt, r)
			if err != nil {
				log.Printf("Unauthorized request %s %s: %v", r.Method, r.URL.Path, err)
				if errors.Is(err, errMissingHeader) {
					utils.RespondError(w, http.StatusUnauthorized, "Missing Authorization header")
				} else {
					utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(controllers.WithPrincipal(r.Context(), p)))
		})
	}
}

// OptionalAuth attaches the principal when a valid token is sent and lets
// anonymous requests through.
func OptionalAuth(jwt *utils.JWTManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := principalFromHeader(jwt, r)
			if err != nil {
				if !errors.Is(err, errMissingHeader) {
					log.Printf("Ignoring bad token on %s %s: %v", r.Method, r.URL.Path, err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(controllers.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := controllers.PrincipalFrom(r.Context())
			if p == nil {
				utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if p.Role != role {
				log.Printf("Forbidden: %s %d requested %s %s", p.Role, p.ID, r.Method, r.URL.Path)
				utils.RespondError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
