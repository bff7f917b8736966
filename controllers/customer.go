package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

func GetCustomers(customers *repository.CustomerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := utils.Pagination(r)
		list, total, err := customers.List(r.Context(), page, limit)
		if err != nil {
			log.Printf("Error listing customers: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch customers")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched customers", models.NewPaginatedResponse(list, page, limit, total))
	}
}

func DeleteCustomer(customers *repository.CustomerRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid customer ID")
			return
		}
		if err := customers.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting customer %d: %v", id, err)
			respondRepoError(w, err, "Customer")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Customer deleted", nil)
	}
}
