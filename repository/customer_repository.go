package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	db := r.DB.WithContext(ctx)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	taken, err := nameTaken(db, &models.Customer{}, "email", c.Email, 0)
	if err != nil {
		return fmt.Errorf("CustomerRepository.Create: %w", err)
	}
	if taken {
		return fmt.Errorf("CustomerRepository.Create: %q: %w", c.Email, ErrDuplicate)
	}
	if err := db.Create(c).Error; err != nil {
		return fmt.Errorf("CustomerRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&c).Error
	if err != nil {
		return nil, fmt.Errorf("CustomerRepository.GetByEmail: %w", translate(err))
	}
	return &c, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, fmt.Errorf("CustomerRepository.GetByID: %w", translate(err))
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, page, limit int) ([]models.Customer, int64, error) {
	db := r.DB.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("CustomerRepository.List count: %w", err)
	}
	list := []models.Customer{}
	if err := db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset(page, limit)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("CustomerRepository.List: %w", err)
	}
	return list, total, nil
}

// Delete removes the customer and their favorites.
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Review{}).Where("customer_id = ?", id).
			UpdateColumn("customer_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Customer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("CustomerRepository.Delete: %w", translate(err))
	}
	return nil
}
