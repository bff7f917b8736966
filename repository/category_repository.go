package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("CategoryRepository.List: %w", err)
	}
	return list, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, fmt.Errorf("CategoryRepository.GetByID: %w", translate(err))
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	db := r.DB.WithContext(ctx)
	c.Name = strings.TrimSpace(c.Name)
	taken, err := nameTaken(db, &models.Category{}, "name", c.Name, 0)
	if err != nil {
		return fmt.Errorf("CategoryRepository.Create: %w", err)
	}
	if taken {
		return fmt.Errorf("CategoryRepository.Create: category %q: %w", c.Name, ErrDuplicate)
	}
	if err := db.Create(c).Error; err != nil {
		return fmt.Errorf("CategoryRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	db := r.DB.WithContext(ctx)
	c.Name = strings.TrimSpace(c.Name)
	taken, err := nameTaken(db, &models.Category{}, "name", c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("CategoryRepository.Update: %w", err)
	}
	if taken {
		return fmt.Errorf("CategoryRepository.Update: category %q: %w", c.Name, ErrDuplicate)
	}
	if err := db.Save(c).Error; err != nil {
		return fmt.Errorf("CategoryRepository.Update: %w", translate(err))
	}
	return nil
}

// Delete removes the category and detaches it from its properties.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Property{}).Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("CategoryRepository.Delete: %w", translate(err))
	}
	return nil
}
