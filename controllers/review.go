package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

func GetPropertyReviews(props *repository.PropertyRepository, reviews *repository.ReviewRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}
		found, err := props.Exists(r.Context(), id)
		if err != nil {
			log.Printf("Error checking property %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !found {
			utils.RespondError(w, http.StatusNotFound, "Property not found")
			return
		}

		list, err := reviews.ListByProperty(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching reviews of property %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched reviews", list)
	}
}

// CreateReview accepts reviews from anyone; a logged-in customer is recorded
// as the author.
func CreateReview(reviews *repository.ReviewRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		var in models.ReviewInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		rev := &models.Review{
			PropertyID: id,
			Name:       in.Name,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		if cid := customerID(r); cid != 0 {
			rev.CustomerID = &cid
		}
		if err := reviews.Create(r.Context(), rev); err != nil {
			log.Printf("Error creating review for property %d: %v", id, err)
			respondRepoError(w, err, "Property")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusCreated, "Review added", rev)
	}
}

func DeleteReview(reviews *repository.ReviewRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		if err := reviews.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting review %d: %v", id, err)
			respondRepoError(w, err, "Review")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Review deleted", nil)
	}
}
