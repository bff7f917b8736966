package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/dcode-github/real_estate_portal/models"
	"gorm.io/gorm"
)

type AgentRepository struct {
	DB *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{DB: db}
}

func (r *AgentRepository) List(ctx context.Context) ([]models.Agent, error) {
	var list []models.Agent
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("AgentRepository.List: %w", err)
	}
	return list, nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id uint) (*models.Agent, error) {
	var a models.Agent
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, fmt.Errorf("AgentRepository.GetByID: %w", translate(err))
	}
	return &a, nil
}

// GetWithProperties loads the agent and the properties it lists.
func (r *AgentRepository) GetWithProperties(ctx context.Context, id uint) (*models.Agent, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("agent_id = ?", id).
		Order("created_at DESC").Find(&a.Properties).Error; err != nil {
		return nil, fmt.Errorf("AgentRepository.GetWithProperties: %w", err)
	}
	return a, nil
}

func (r *AgentRepository) Create(ctx context.Context, a *models.Agent) error {
	db := r.DB.WithContext(ctx)
	a.Email = strings.TrimSpace(a.Email)
	taken, err := nameTaken(db, &models.Agent{}, "email", a.Email, 0)
	if err != nil {
		return fmt.Errorf("AgentRepository.Create: %w", err)
	}
	if taken {
		return fmt.Errorf("AgentRepository.Create: agent %q: %w", a.Email, ErrDuplicate)
	}
	if err := db.Create(a).Error; err != nil {
		return fmt.Errorf("AgentRepository.Create: %w", translate(err))
	}
	return nil
}

func (r *AgentRepository) Update(ctx context.Context, a *models.Agent) error {
	db := r.DB.WithContext(ctx)
	a.Email = strings.TrimSpace(a.Email)
	taken, err := nameTaken(db, &models.Agent{}, "email", a.Email, a.ID)
	if err != nil {
		return fmt.Errorf("AgentRepository.Update: %w", err)
	}
	if taken {
		return fmt.Errorf("AgentRepository.Update: agent %q: %w", a.Email, ErrDuplicate)
	}
	a.Properties = nil
	if err := db.Save(a).Error; err != nil {
		return fmt.Errorf("AgentRepository.Update: %w", translate(err))
	}
	return nil
}

// Delete removes the agent and clears it from properties and leads.
func (r *AgentRepository) Delete(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Property{}).Where("agent_id = ?", id).
			UpdateColumn("agent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Sale{}).Where("agent_id = ?", id).
			UpdateColumn("agent_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Agent{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("AgentRepository.Delete: %w", translate(err))
	}
	return nil
}
