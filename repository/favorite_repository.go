package repository

import (
	"context"
	"fmt"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// List returns the customer's favorite properties, most recently added first.
func (r *FavoriteRepository) List(ctx context.Context, customerID uint) ([]models.Property, error) {
	list := []models.Property{}
	err := r.DB.WithContext(ctx).
		Joins("JOIN favorites ON favorites.property_id = properties.id").
		Where("favorites.customer_id = ?", customerID).
		Preload("Photos").
		Order("favorites.created_at DESC, favorites.id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("FavoriteRepository.List: %w", err)
	}
	for i := range list {
		list[i].IsFavorite = true
	}
	return list, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, fav *models.Favorite) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Property{}, fav.PropertyID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidReference
		}
		var count int64
		if err := tx.Model(&models.Favorite{}).
			Where("customer_id = ? AND property_id = ?", fav.CustomerID, fav.PropertyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Omit("Property", "Customer").Create(fav).Error
	})
	if err != nil {
		return fmt.Errorf("FavoriteRepository.Add: %w", translate(err))
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, customerID, propertyID uint) error {
	res := r.DB.WithContext(ctx).
		Where("customer_id = ? AND property_id = ?", customerID, propertyID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("FavoriteRepository.Remove: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("FavoriteRepository.Remove: %w", ErrNotFound)
	}
	return nil
}

// PropertyIDs returns which of ids the customer has favorited.
func (r *FavoriteRepository) PropertyIDs(ctx context.Context, customerID uint, ids []uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	if len(ids) == 0 {
		return out, nil
	}
	var favIDs []uint
	err := r.DB.WithContext(ctx).Model(&models.Favorite{}).
		Where("customer_id = ? AND property_id IN ?", customerID, ids).
		Pluck("property_id", &favIDs).Error
	if err != nil {
		return nil, fmt.Errorf("FavoriteRepository.PropertyIDs: %w", err)
	}
	for _, id := range favIDs {
		out[id] = true
	}
	return out, nil
}
