package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PropertyRepository struct {
	DB *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

func applyPropertyFilter(q *gorm.DB, f models.PropertyFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ? OR LOWER(city) LIKE ?)",
			like, like, like, like)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) = LOWER(?)", f.Location)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.AgentID != 0 {
		q = q.Where("agent_id = ?", f.AgentID)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.ListingType != "" {
		q = q.Where("listing_type = ?", f.ListingType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.MinBedrooms)
	}
	if f.MinBathrooms > 0 {
		q = q.Where("bathrooms >= ?", f.MinBathrooms)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.Hotspot != nil {
		q = q.Where("is_hotspot = ?", *f.Hotspot)
	}
	return q
}

func propertyOrder(sort string) string {
	switch sort {
	case "price_asc":
		return "price ASC, id ASC"
	case "price_desc":
		return "price DESC, id DESC"
	case "rating":
		return "average_rating DESC, review_count DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// List returns one page of properties matching f and the total match count.
func (r *PropertyRepository) List(ctx context.Context, f models.PropertyFilter) ([]models.Property, int64, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := applyPropertyFilter(db.Model(&models.Property{}), f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("PropertyRepository.List count: %w", err)
	}

	list := []models.Property{}
	err := applyPropertyFilter(db.Model(&models.Property{}), f).
		Preload("Category").Preload("Agent").Preload("Photos").
		Order(propertyOrder(f.Sort)).
		Limit(f.Limit).Offset(offset(f.Page, f.Limit)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("PropertyRepository.List: %w", err)
	}
	return list, total, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Agent").Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.GetByID: %w", translate(err))
	}
	return &p, nil
}

// GetByIDs returns the properties in the order of ids; any missing id is ErrNotFound.
func (r *PropertyRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Property, error) {
	var found []models.Property
	err := r.DB.WithContext(ctx).Preload("Category").Preload("Agent").Preload("Photos").
		Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.GetByIDs: %w", err)
	}
	byID := make(map[uint]models.Property, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("PropertyRepository.GetByIDs: property %d: %w", id, ErrNotFound)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ok, err := exists(r.DB.WithContext(ctx), &models.Property{}, id)
	if err != nil {
		return false, fmt.Errorf("PropertyRepository.Exists: %w", err)
	}
	return ok, nil
}

func (r *PropertyRepository) checkReferences(db *gorm.DB, p *models.Property) error {
	if p.CategoryID != nil {
		ok, err := exists(db, &models.Category{}, *p.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("category %d: %w", *p.CategoryID, ErrInvalidReference)
		}
	}
	if p.AgentID != nil {
		ok, err := exists(db, &models.Agent{}, *p.AgentID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("agent %d: %w", *p.AgentID, ErrInvalidReference)
		}
	}
	return nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	db := r.DB.WithContext(ctx)
	p.Name = strings.TrimSpace(p.Name)
	taken, err := nameTaken(db, &models.Property{}, "name", p.Name, 0)
	if err != nil {
		return fmt.Errorf("PropertyRepository.Create: %w", err)
	}
	if taken {
		return fmt.Errorf("PropertyRepository.Create: property %q: %w", p.Name, ErrDuplicate)
	}
	if err := r.checkReferences(db, p); err != nil {
		return fmt.Errorf("PropertyRepository.Create: %w", err)
	}
	if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("PropertyRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *models.Property) error {
	db := r.DB.WithContext(ctx)
	p.Name = strings.TrimSpace(p.Name)
	taken, err := nameTaken(db, &models.Property{}, "name", p.Name, p.ID)
	if err != nil {
		return fmt.Errorf("PropertyRepository.Update: %w", err)
	}
	if taken {
		return fmt.Errorf("PropertyRepository.Update: property %q: %w", p.Name, ErrDuplicate)
	}
	if err := r.checkReferences(db, p); err != nil {
		return fmt.Errorf("PropertyRepository.Update: %w", err)
	}
	p.Category, p.Agent, p.Photos = nil, nil, nil
	if err := db.Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("PropertyRepository.Update: %w", translate(err))
	}
	return nil
}

// Delete removes the property with its photos, reviews and favorites and
// returns the photo file ids so the blobs can be removed too.
func (r *PropertyRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var fileIDs []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyPhoto{}).Where("property_id = ?", id).
			Pluck("file_id", &fileIDs).Error; err != nil {
			return err
		}
		for _, m := range []interface{}{&models.PropertyPhoto{}, &models.Review{}, &models.Favorite{}} {
			if err := tx.Where("property_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Sale{}).Where("property_id = ?", id).
			UpdateColumn("property_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Property{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.Delete: %w", translate(err))
	}
	return fileIDs, nil
}

// Hotspots returns flagged properties, optionally near one location.
func (r *PropertyRepository) Hotspots(ctx context.Context, location string, limit int) ([]models.Property, error) {
	list := []models.Property{}
	q := r.DB.WithContext(ctx).Preload("Photos").Where("is_hotspot = ?", true)
	if location = strings.TrimSpace(location); location != "" {
		q = q.Where("LOWER(location) = LOWER(?)", location)
	}
	if err := q.Order("is_featured DESC, created_at DESC, id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("PropertyRepository.Hotspots: %w", err)
	}
	return list, nil
}

func (r *PropertyRepository) Featured(ctx context.Context, limit int) ([]models.Property, error) {
	list := []models.Property{}
	err := r.DB.WithContext(ctx).Preload("Photos").Where("is_featured = ?", true).
		Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.Featured: %w", err)
	}
	return list, nil
}

func (r *PropertyRepository) AddPhoto(ctx context.Context, photo *models.PropertyPhoto) error {
	if err := r.DB.WithContext(ctx).Create(photo).Error; err != nil {
		return fmt.Errorf("PropertyRepository.AddPhoto: %w", translate(err))
	}
	return nil
}

func (r *PropertyRepository) GetPhoto(ctx context.Context, propertyID, photoID uint) (*models.PropertyPhoto, error) {
	var photo models.PropertyPhoto
	err := r.DB.WithContext(ctx).Where("id = ? AND property_id = ?", photoID, propertyID).First(&photo).Error
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.GetPhoto: %w", translate(err))
	}
	return &photo, nil
}

func (r *PropertyRepository) DeletePhoto(ctx context.Context, propertyID, photoID uint) (*models.PropertyPhoto, error) {
	photo, err := r.GetPhoto(ctx, propertyID, photoID)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(photo).Error; err != nil {
		return nil, fmt.Errorf("PropertyRepository.DeletePhoto: %w", err)
	}
	return photo, nil
}
