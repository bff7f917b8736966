package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository struct {
	DB *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{DB: db}
}

func applySaleFilter(q *gorm.DB, f models.SaleFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR reference = ?)",
			like, like, like, s)
	}
	return q
}

func (r *SaleRepository) List(ctx context.Context, f models.SaleFilter) ([]models.Sale, int64, error) {
	db := r.DB.WithContext(ctx)

	var total int64
	if err := applySaleFilter(db.Model(&models.Sale{}), f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("SaleRepository.List count: %w", err)
	}

	list := []models.Sale{}
	err := applySaleFilter(db.Model(&models.Sale{}), f).
		Preload("Property").Preload("Agent").
		Order("created_at DESC, id DESC").
		Limit(f.Limit).Offset(offset(f.Page, f.Limit)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("SaleRepository.List: %w", err)
	}
	return list, total, nil
}

// ListAll returns every lead matching f without paging, oldest first.
func (r *SaleRepository) ListAll(ctx context.Context, f models.SaleFilter) ([]models.Sale, error) {
	list := []models.Sale{}
	err := applySaleFilter(r.DB.WithContext(ctx).Model(&models.Sale{}), f).
		Preload("Property").Preload("Agent").
		Order("created_at ASC, id ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("SaleRepository.ListAll: %w", err)
	}
	return list, nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	var s models.Sale
	if err := r.DB.WithContext(ctx).Preload("Property").Preload("Agent").First(&s, id).Error; err != nil {
		return nil, fmt.Errorf("SaleRepository.GetByID: %w", translate(err))
	}
	return &s, nil
}

func (r *SaleRepository) checkReferences(db *gorm.DB, s *models.Sale) error {
	if s.PropertyID != nil {
		ok, err := exists(db, &models.Property{}, *s.PropertyID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("property %d: %w", *s.PropertyID, ErrInvalidReference)
		}
	}
	if s.AgentID != nil {
		ok, err := exists(db, &models.Agent{}, *s.AgentID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("agent %d: %w", *s.AgentID, ErrInvalidReference)
		}
	}
	return nil
}

// Create stores a new lead. A lead about a property without an agent is
// assigned to the property's agent.
func (r *SaleRepository) Create(ctx context.Context, s *models.Sale) error {
	db := r.DB.WithContext(ctx)
	if err := r.checkReferences(db, s); err != nil {
		return fmt.Errorf("SaleRepository.Create: %w", err)
	}
	if s.PropertyID != nil && s.AgentID == nil {
		var p models.Property
		if err := db.Select("id", "agent_id").First(&p, *s.PropertyID).Error; err != nil {
			return fmt.Errorf("SaleRepository.Create: %w", translate(err))
		}
		s.AgentID = p.AgentID
	}
	if s.Status == "" {
		s.Status = models.LeadStatusNew
	}
	if s.Source == "" {
		s.Source = models.LeadSourceWebsite
	}
	s.Reference = uuid.NewString()
	if err := db.Omit(clause.Associations).Create(s).Error; err != nil {
		return fmt.Errorf("SaleRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *SaleRepository) Update(ctx context.Context, s *models.Sale) error {
	db := r.DB.WithContext(ctx)
	if err := r.checkReferences(db, s); err != nil {
		return fmt.Errorf("SaleRepository.Update: %w", err)
	}
	s.Property, s.Agent = nil, nil
	if err := db.Omit(clause.Associations).Save(s).Error; err != nil {
		return fmt.Errorf("SaleRepository.Update: %w", translate(err))
	}
	return nil
}

func (r *SaleRepository) UpdateStatus(ctx context.Context, id uint, status models.LeadStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Sale{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("SaleRepository.UpdateStatus: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("SaleRepository.UpdateStatus: %w", ErrNotFound)
	}
	return nil
}

func (r *SaleRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Sale{}, id)
	if res.Error != nil {
		return fmt.Errorf("SaleRepository.Delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("SaleRepository.Delete: %w", ErrNotFound)
	}
	return nil
}
