package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type BankRepository struct {
	DB *gorm.DB
}

func NewBankRepository(db *gorm.DB) *BankRepository {
	return &BankRepository{DB: db}
}

// List returns the offers cheapest rate first.
func (r *BankRepository) List(ctx context.Context) ([]models.Bank, error) {
	var list []models.Bank
	if err := r.DB.WithContext(ctx).Order("interest_rate ASC, name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("BankRepository.List: %w", err)
	}
	return list, nil
}

func (r *BankRepository) GetByID(ctx context.Context, id uint) (*models.Bank, error) {
	var b models.Bank
	if err := r.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, fmt.Errorf("BankRepository.GetByID: %w", translate(err))
	}
	return &b, nil
}

func (r *BankRepository) Create(ctx context.Context, b *models.Bank) error {
	db := r.DB.WithContext(ctx)
	b.Name = strings.TrimSpace(b.Name)
	taken, err := nameTaken(db, &models.Bank{}, "name", b.Name, 0)
	if err != nil {
		return fmt.Errorf("BankRepository.Create: %w", err)
	}
	if taken {
		return fmt.Errorf("BankRepository.Create: bank %q: %w", b.Name, ErrDuplicate)
	}
	if err := db.Create(b).Error; err != nil {
		return fmt.Errorf("BankRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *BankRepository) Update(ctx context.Context, b *models.Bank) error {
	db := r.DB.WithContext(ctx)
	b.Name = strings.TrimSpace(b.Name)
	taken, err := nameTaken(db, &models.Bank{}, "name", b.Name, b.ID)
	if err != nil {
		return fmt.Errorf("BankRepository.Update: %w", err)
	}
	if taken {
		return fmt.Errorf("BankRepository.Update: bank %q: %w", b.Name, ErrDuplicate)
	}
	if err := db.Save(b).Error; err != nil {
		return fmt.Errorf("BankRepository.Update: %w", translate(err))
	}
	return nil
}

func (r *BankRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Bank{}, id)
	if res.Error != nil {
		return fmt.Errorf("BankRepository.Delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("BankRepository.Delete: %w", ErrNotFound)
	}
	return nil
}
