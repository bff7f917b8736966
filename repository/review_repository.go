package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// ListByProperty returns the reviews of a property, newest first.
func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID uint) ([]models.Review, error) {
	list := []models.Review{}
	err := r.DB.WithContext(ctx).Where("property_id = ?", propertyID).
		Order("created_at DESC, id DESC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("ReviewRepository.ListByProperty: %w", err)
	}
	return list, nil
}

// Create inserts the review and refreshes the property's rating in one transaction.
func (r *ReviewRepository) Create(ctx context.Context, rev *models.Review) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Property{}, rev.PropertyID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if err := tx.Omit("Property").Create(rev).Error; err != nil {
			return err
		}
		return recalcRating(tx, rev.PropertyID)
	})
	if err != nil {
		return fmt.Errorf("ReviewRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rev models.Review
		if err := tx.First(&rev, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&rev).Error; err != nil {
			return err
		}
		return recalcRating(tx, rev.PropertyID)
	})
	if err != nil {
		return fmt.Errorf("ReviewRepository.Delete: %w", translate(err))
	}
	return nil
}

func recalcRating(tx *gorm.DB, propertyID uint) error {
	var agg struct {
		Avg float64
		Cnt int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt").
		Where("property_id = ?", propertyID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("recalc rating: %w", err)
	}
	return tx.Model(&models.Property{}).Where("id = ?", propertyID).
		UpdateColumns(map[string]interface{}{
			"average_rating": math.Round(agg.Avg*100) / 100,
			"review_count":   agg.Cnt,
		}).Error
}
