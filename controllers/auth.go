package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

type TokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Role      string      `json:"role"`
	User      interface{} `json:"user,omitempty"`
}

func issueToken(w http.ResponseWriter, jwt *utils.JWTManager, status int, message string, id uint, role string, user interface{}) {
	token, expiresAt, err := jwt.GenerateJWT(id, role)
	if err != nil {
		log.Printf("Error generating JWT token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondJSON(w, status, message, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      role,
		User:      user,
	})
}

func AdminLogin(admins *repository.AdminRepository, jwt *utils.JWTManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.AdminLoginInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		admin, err := admins.GetByUsername(r.Context(), in.Username)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				log.Printf("Error loading admin %s: %v", in.Username, err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			log.Printf("Admin not found: %s", in.Username)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !utils.CheckPasswordHash(in.Password, admin.PasswordHash) {
			log.Printf("Invalid credentials for admin: %s", in.Username)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		issueToken(w, jwt, http.StatusOK, "Login successful", admin.ID, models.RoleAdmin, admin)
	}
}

func RegisterCustomer(customers *repository.CustomerRepository, jwt *utils.JWTManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.RegisterInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		hashedPwd, err := utils.HashPassword(in.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		customer := &models.Customer{
			Name:         in.Name,
			Email:        in.Email,
			Phone:        in.Phone,
			PasswordHash: hashedPwd,
		}
		if err := customers.Create(r.Context(), customer); err != nil {
			log.Printf("Error registering customer %s: %v", in.Email, err)
			if errors.Is(err, repository.ErrDuplicate) {
				utils.RespondError(w, http.StatusConflict, "Email already exists")
				return
			}
			respondRepoError(w, err, "Customer")
			return
		}

		issueToken(w, jwt, http.StatusCreated, "Customer registered successfully", customer.ID, models.RoleCustomer, customer)
	}
}

func LoginCustomer(customers *repository.CustomerRepository, jwt *utils.JWTManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.LoginInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		customer, err := customers.GetByEmail(r.Context(), in.Email)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				log.Printf("Error loading customer %s: %v", in.Email, err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			log.Printf("Customer not found: %s", in.Email)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !utils.CheckPasswordHash(in.Password, customer.PasswordHash) {
			log.Printf("Invalid credentials for customer: %s", in.Email)
			utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		issueToken(w, jwt, http.StatusOK, "Login successful", customer.ID, models.RoleCustomer, customer)
	}
}

// Me returns the account behind the bearer token.
func Me(admins *repository.AdminRepository, customers *repository.CustomerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if p == nil {
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var (
			account interface{}
			err     error
		)
		if p.IsAdmin() {
			account, err = admins.GetByID(r.Context(), p.ID)
		} else {
			account, err = customers.GetByID(r.Context(), p.ID)
		}
		if err != nil {
			log.Printf("Error loading account %d (%s): %v", p.ID, p.Role, err)
			respondRepoError(w, err, "Account")
			return
		}

		utils.RespondJSON(w, http.StatusOK, "Fetched current user", map[string]interface{}{
			"principal": p,
			"account":   account,
		})
	}
}
