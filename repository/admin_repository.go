package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	db := r.DB.WithContext(ctx)
	a.Username = strings.TrimSpace(a.Username)
	taken, err := nameTaken(db, &models.Admin{}, "username", a.Username, 0)
	if err != nil {
		return fmt.Errorf("AdminRepository.Create: %w", err)
	}
	if taken {
		return fmt.Errorf("AdminRepository.Create: %q: %w", a.Username, ErrDuplicate)
	}
	if a.Role == "" {
		a.Role = models.RoleAdmin
	}
	if err := db.Create(a).Error; err != nil {
		return fmt.Errorf("AdminRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		return nil, fmt.Errorf("AdminRepository.GetByUsername: %w", translate(err))
	}
	return &a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, fmt.Errorf("AdminRepository.GetByID: %w", translate(err))
	}
	return &a, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.DB.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("AdminRepository.UpdatePassword: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("AdminRepository.UpdatePassword: %w", ErrNotFound)
	}
	return nil
}
