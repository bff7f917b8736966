package models

import "time"

type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"customerId"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_favorite_pair;index" json:"propertyId"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"property,omitempty"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

type FavoriteInput struct {
	PropertyID uint `json:"propertyId" validate:"required"`
}
