package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/utils"
)

func GetCategories(categories *repository.CategoryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := categories.List(r.Context())
		if err != nil {
			log.Printf("Error listing categories: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched categories", list)
	}
}

func GetCategory(categories *repository.CategoryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category ID")
			return
		}
		cat, err := categories.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching category %d: %v", id, err)
			respondRepoError(w, err, "Category")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched category", cat)
	}
}

func CreateCategory(categories *repository.CategoryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.CategoryInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		cat := models.Category{
			Name:        in.Name,
			Slug:        utils.Slugify(in.Name),
			Description: in.Description,
		}
		if err := categories.Create(r.Context(), &cat); err != nil {
			log.Printf("Error creating category %q: %v", in.Name, err)
			respondRepoError(w, err, "Category")
			return
		}
		utils.RespondJSON(w, http.StatusCreated, "Category created", cat)
	}
}

func UpdateCategory(categories *repository.CategoryRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category ID")
			return
		}
		cat, err := categories.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching category %d for update: %v", id, err)
			respondRepoError(w, err, "Category")
			return
		}

		var in models.CategoryInput
		if !decodeAndValidate(w, r, &in) {
			return
		}
		cat.Name = in.Name
		cat.Slug = utils.Slugify(in.Name)
		cat.Description = in.Description
		if err := categories.Update(r.Context(), cat); err != nil {
			log.Printf("Error updating category %d: %v", id, err)
			respondRepoError(w, err, "Category")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Category updated", cat)
	}
}

func DeleteCategory(categories *repository.CategoryRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid category ID")
			return
		}
		if err := categories.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting category %d: %v", id, err)
			respondRepoError(w, err, "Category")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Category deleted", nil)
	}
}
