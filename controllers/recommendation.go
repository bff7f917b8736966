package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

const (
	defaultSimilarLimit = 4
	maxSimilarLimit     = 20
)

// GetSimilarProperties ranks other listings against the property in the path.
func GetSimilarProperties(props *repository.PropertyRepository, similar *repository.SimilarRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		ref, err := props.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching reference property %d: %v", id, err)
			respondRepoError(w, err, "Property")
			return
		}

		limit := utils.IntParam(r, "limit", defaultSimilarLimit, maxSimilarLimit)
		list, err := similar.Similar(r.Context(), ref, limit)
		if err != nil {
			log.Printf("Error fetching properties similar to %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch similar properties")
			return
		}

		utils.RespondJSON(w, http.StatusOK, "Fetched similar properties", list)
	}
}
