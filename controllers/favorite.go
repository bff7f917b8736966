package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

func AddFavorite(favs *repository.FavoriteRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cid := customerID(r)
		if cid == 0 {
			log.Println("Customer missing in context")
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var in models.FavoriteInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		fav := &models.Favorite{CustomerID: cid, PropertyID: in.PropertyID}
		if err := favs.Add(r.Context(), fav); err != nil {
			log.Printf("Failed to add property %d to favorites: %v", in.PropertyID, err)
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				utils.RespondError(w, http.StatusConflict, "Property is already in favorites")
			case errors.Is(err, repository.ErrInvalidReference):
				utils.RespondError(w, http.StatusNotFound, "Property not found")
			default:
				respondRepoError(w, err, "Favorite")
			}
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusCreated, "Property added to favorites", fav)
	}
}

func GetFavorites(favs *repository.FavoriteRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cid := customerID(r)
		if cid == 0 {
			log.Println("Customer missing in context")
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		list, err := favs.List(r.Context(), cid)
		if err != nil {
			log.Printf("Failed to fetch favorite properties: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch favorite properties")
			return
		}

		utils.RespondJSON(w, http.StatusOK, "Fetched favorite properties", list)
	}
}

func DeleteFavorite(favs *repository.FavoriteRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cid := customerID(r)
		if cid == 0 {
			log.Println("Customer missing in context")
			utils.RespondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		propertyID, ok := utils.PathID(r, "propertyID")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID format")
			return
		}

		if err := favs.Remove(r.Context(), cid, propertyID); err != nil {
			log.Printf("Failed to remove property %d from favorites: %v", propertyID, err)
			respondRepoError(w, err, "Favorite")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Property removed from favorites", nil)
	}
}
