package models

import "time"

// Review represents a visitor's review of a property.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"propertyId"`
	Property   *Property `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CustomerID *uint     `gorm:"index" json:"customerId,omitempty"`
	Name       string    `gorm:"size:150;not null" json:"name"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReviewInput struct {
	Name    string `json:"name" validate:"required,notblank,max=150"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=5000"`
}
