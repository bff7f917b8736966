package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/dcode-github/real_estate_portal/repository"
	"github.com/dcode-github/real_estate_portal/storage"
	"github.com/dcode-github/real_estate_portal/utils"
)

const (
	defaultShowcaseLimit = 6
	maxShowcaseLimit     = 50
)

func parsePropertyFilter(r *http.Request) models.PropertyFilter {
	q := r.URL.Query()
	f := models.PropertyFilter{
		Query:        strings.TrimSpace(q.Get("q")),
		Location:     strings.TrimSpace(q.Get("location")),
		City:         strings.TrimSpace(q.Get("city")),
		PropertyType: q.Get("property_type"),
		ListingType:  q.Get("listing_type"),
		Status:       q.Get("status"),
		Sort:         q.Get("sort"),
	}
	f.Page, f.Limit = utils.Pagination(r)

	if v, err := strconv.ParseUint(q.Get("category_id"), 10, 64); err == nil {
		f.CategoryID = uint(v)
	}
	if v, err := strconv.ParseUint(q.Get("agent_id"), 10, 64); err == nil {
		f.AgentID = uint(v)
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		f.MaxPrice = v
	}
	if v, err := strconv.Atoi(q.Get("bedrooms")); err == nil {
		f.MinBedrooms = v
	}
	if v, err := strconv.Atoi(q.Get("bathrooms")); err == nil {
		f.MinBathrooms = v
	}
	if v, err := strconv.ParseBool(q.Get("featured")); err == nil {
		f.Featured = &v
	}
	if v, err := strconv.ParseBool(q.Get("hotspot")); err == nil {
		f.Hotspot = &v
	}
	return f
}

func markFavorites(ctx context.Context, favs *repository.FavoriteRepository, customerID uint, list []models.Property) {
	if customerID == 0 || len(list) == 0 {
		return
	}
	ids := make([]uint, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	marked, err := favs.PropertyIDs(ctx, customerID, ids)
	if err != nil {
		log.Printf("Error loading favorites for customer %d: %v", customerID, err)
		return
	}
	for i := range list {
		list[i].IsFavorite = marked[list[i].ID]
	}
}

// GetAllProperties serves the searchable listing. Responses are cached per
// caller scope and query string.
func GetAllProperties(props *repository.PropertyRepository, favs *repository.FavoriteRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cid := customerID(r)
		scope := "public"
		if cid != 0 {
			scope = fmt.Sprintf("customer:%d", cid)
		}
		cacheKey := cache.Key(scope, r.URL.Query())

		cached, gen, ok := c.Get(r.Context(), cacheKey)
		if ok {
			w.Header().Set("X-Cache", "HIT")
			utils.WriteJSONBytes(w, http.StatusOK, cached)
			return
		}

		f := parsePropertyFilter(r)
		list, total, err := props.List(r.Context(), f)
		if err != nil {
			log.Printf("Error listing properties: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch properties")
			return
		}
		markFavorites(r.Context(), favs, cid, list)

		body, err := json.Marshal(models.APIResponse{
			Success: true,
			Message: "Fetched properties",
			Data:    models.NewPaginatedResponse(list, f.Page, f.Limit, total),
		})
		if err != nil {
			log.Printf("Error encoding property list: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to encode properties")
			return
		}
		c.Set(r.Context(), cacheKey, gen, body)

		w.Header().Set("X-Cache", "MISS")
		utils.WriteJSONBytes(w, http.StatusOK, body)
	}
}

func GetProperty(props *repository.PropertyRepository, favs *repository.FavoriteRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		p, err := props.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching property %d: %v", id, err)
			respondRepoError(w, err, "Property")
			return
		}
		list := []models.Property{*p}
		markFavorites(r.Context(), favs, customerID(r), list)

		utils.RespondJSON(w, http.StatusOK, "Fetched property", list[0])
	}
}

func GetHotspots(props *repository.PropertyRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := utils.IntParam(r, "limit", defaultShowcaseLimit, maxShowcaseLimit)
		list, err := props.Hotspots(r.Context(), r.URL.Query().Get("location"), limit)
		if err != nil {
			log.Printf("Error fetching hotspots: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch hotspots")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched hotspot properties", list)
	}
}

func GetFeatured(props *repository.PropertyRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := utils.IntParam(r, "limit", defaultShowcaseLimit, maxShowcaseLimit)
		list, err := props.Featured(r.Context(), limit)
		if err != nil {
			log.Printf("Error fetching featured properties: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch featured properties")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched featured properties", list)
	}
}

// CompareProperties returns two or three properties side by side.
func CompareProperties(props *repository.PropertyRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, ok := utils.ParseIDList(r.URL.Query().Get("ids"))
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "ids must be a comma separated list of property IDs")
			return
		}
		if len(ids) < 2 || len(ids) > 3 {
			utils.RespondError(w, http.StatusBadRequest, "Compare needs between 2 and 3 properties")
			return
		}
		seen := make(map[uint]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				utils.RespondError(w, http.StatusBadRequest, "Duplicate property ID in comparison")
				return
			}
			seen[id] = true
		}

		list, err := props.GetByIDs(r.Context(), ids)
		if err != nil {
			log.Printf("Error loading properties for comparison: %v", err)
			respondRepoError(w, err, "Property")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Compared properties", compareProperties(list))
	}
}

func compareProperties(list []models.Property) models.Comparison {
	out := models.Comparison{
		Properties: list,
		Summary:    models.ComparisonSummary{PricePerSqFt: map[uint]float64{}},
	}
	var largest int
	var bestRating float64
	for i, p := range list {
		s := &out.Summary
		if i == 0 || p.Price < s.MinPrice {
			s.MinPrice = p.Price
			s.CheapestID = p.ID
		}
		if i == 0 || p.Price > s.MaxPrice {
			s.MaxPrice = p.Price
		}
		if i == 0 || p.AreaSqFt > largest {
			largest = p.AreaSqFt
			s.LargestID = p.ID
		}
		if i == 0 || p.AverageRating > bestRating {
			bestRating = p.AverageRating
			s.BestRatedID = p.ID
		}
		if p.Bedrooms > s.MaxBedrooms {
			s.MaxBedrooms = p.Bedrooms
		}
		if p.Bathrooms > s.MaxBathrooms {
			s.MaxBathrooms = p.Bathrooms
		}
		if p.AreaSqFt > 0 {
			s.PricePerSqFt[p.ID] = utils.Round2(p.Price / float64(p.AreaSqFt))
		}
	}
	return out
}

func GetLocations(stats *repository.StatsRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := stats.Locations(r.Context())
		if err != nil {
			log.Printf("Error fetching locations: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch locations")
			return
		}
		utils.RespondJSON(w, http.StatusOK, "Fetched locations", list)
	}
}

func CreateProperty(props *repository.PropertyRepository, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.PropertyInput
		if !decodeAndValidate(w, r, &in) {
			return
		}

		var p models.Property
		in.Apply(&p)
		if err := props.Create(r.Context(), &p); err != nil {
			log.Printf("Insert failed: %v", err)
			respondRepoError(w, err, "Property")
			return
		}
		invalidatePropertyCache(c)

		respondWithProperty(w, r, props, p.ID, http.StatusCreated, "Property created")
	}
}

// UpdateProperty handles PUT (full replace) and, when partial is set, PATCH
// where omitted fields keep their stored values.
func UpdateProperty(props *repository.PropertyRepository, c cache.PropertyCache, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		existing, err := props.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching property %d for update: %v", id, err)
			respondRepoError(w, err, "Property")
			return
		}

		var in models.PropertyUpdate
		if partial {
			in.PropertyInput = models.InputFromProperty(existing)
		}
		if !decodeAndValidate(w, r, &in) {
			return
		}

		in.Apply(existing)
		if err := props.Update(r.Context(), existing); err != nil {
			log.Printf("Update failed for property %d: %v", id, err)
			respondRepoError(w, err, "Property")
			return
		}
		invalidatePropertyCache(c)

		respondWithProperty(w, r, props, id, http.StatusOK, "Property updated")
	}
}

func respondWithProperty(w http.ResponseWriter, r *http.Request, props *repository.PropertyRepository, id uint, status int, message string) {
	p, err := props.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("Error reloading property %d: %v", id, err)
		respondRepoError(w, err, "Property")
		return
	}
	utils.RespondJSON(w, status, message, p)
}

// DeleteProperty removes the row and its photo blobs.
func DeleteProperty(props *repository.PropertyRepository, store storage.PhotoStore, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		fileIDs, err := props.Delete(r.Context(), id)
		if err != nil {
			log.Printf("Delete failed for property %d: %v", id, err)
			respondRepoError(w, err, "Property")
			return
		}
		for _, fileID := range fileIDs {
			if err := store.Delete(r.Context(), fileID); err != nil {
				log.Printf("Error deleting photo blob %s of property %d: %v", fileID, id, err)
			}
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Property deleted", nil)
	}
}

func UploadPropertyPhoto(props *repository.PropertyRepository, store storage.PhotoStore, c cache.PropertyCache, maxBytes int64) http.HandlerFunc {
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

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			log.Printf("Error parsing upload for property %d: %v", id, err)
			utils.RespondError(w, http.StatusBadRequest, "Invalid or oversized upload")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		head := make([]byte, 512)
		n, err := io.ReadFull(file, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			log.Printf("Error reading upload for property %d: %v", id, err)
			utils.RespondError(w, http.StatusBadRequest, "Cannot read file")
			return
		}
		contentType := http.DetectContentType(head[:n])
		if !strings.HasPrefix(contentType, "image/") {
			utils.RespondError(w, http.StatusUnsupportedMediaType, "Only image uploads are allowed")
			return
		}

		fileID, err := store.Upload(r.Context(), header.Filename, contentType, io.MultiReader(bytes.NewReader(head[:n]), file))
		if err != nil {
			log.Printf("Upload failed for property %d: %v", id, err)
			respondStorageError(w, err)
			return
		}

		photo := &models.PropertyPhoto{
			PropertyID:  id,
			FileID:      fileID,
			FileName:    header.Filename,
			ContentType: contentType,
			Size:        header.Size,
		}
		if err := props.AddPhoto(r.Context(), photo); err != nil {
			log.Printf("Error saving photo record for property %d: %v", id, err)
			if delErr := store.Delete(r.Context(), fileID); delErr != nil {
				log.Printf("Error removing orphaned photo blob %s: %v", fileID, delErr)
			}
			respondRepoError(w, err, "Photo")
			return
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusCreated, "Photo uploaded", photo)
	}
}

func GetPropertyPhoto(props *repository.PropertyRepository, store storage.PhotoStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		photoID, ok2 := utils.PathID(r, "photoID")
		if !ok || !ok2 {
			utils.RespondError(w, http.StatusBadRequest, "Invalid photo ID")
			return
		}

		photo, err := props.GetPhoto(r.Context(), id, photoID)
		if err != nil {
			log.Printf("Error fetching photo %d of property %d: %v", photoID, id, err)
			respondRepoError(w, err, "Photo")
			return
		}

		stream, size, err := store.Open(r.Context(), photo.FileID)
		if err != nil {
			log.Printf("Download failed for photo %s: %v", photo.FileID, err)
			respondStorageError(w, err)
			return
		}
		defer stream.Close()

		w.Header().Set("Content-Type", photo.ContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", photo.FileName))
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, stream); err != nil {
			log.Printf("Error streaming photo %s: %v", photo.FileID, err)
		}
	}
}

func DeletePropertyPhoto(props *repository.PropertyRepository, store storage.PhotoStore, c cache.PropertyCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.PathID(r, "id")
		photoID, ok2 := utils.PathID(r, "photoID")
		if !ok || !ok2 {
			utils.RespondError(w, http.StatusBadRequest, "Invalid photo ID")
			return
		}

		photo, err := props.DeletePhoto(r.Context(), id, photoID)
		if err != nil {
			log.Printf("Error deleting photo %d of property %d: %v", photoID, id, err)
			respondRepoError(w, err, "Photo")
			return
		}
		if err := store.Delete(r.Context(), photo.FileID); err != nil {
			log.Printf("Error deleting photo blob %s: %v", photo.FileID, err)
		}
		invalidatePropertyCache(c)

		utils.RespondJSON(w, http.StatusOK, "Photo deleted", nil)
	}
}

func respondStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrDisabled):
		utils.RespondError(w, http.StatusServiceUnavailable, "Photo storage is not available")
	case errors.Is(err, storage.ErrPhotoNotFound):
		utils.RespondError(w, http.StatusNotFound, "Photo not found")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "Photo storage error")
	}
}
