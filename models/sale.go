package models

import "time"

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusNegotiating LeadStatus = "negotiating"
	LeadStatusClosed      LeadStatus = "closed"
	LeadStatusLost        LeadStatus = "lost"
)

var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
	LeadStatusNegotiating, LeadStatusClosed, LeadStatusLost,
}

func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const (
	LeadSourceWebsite  = "website"
	LeadSourcePhone    = "phone"
	LeadSourceWalkIn   = "walk_in"
	LeadSourceReferral = "referral"
)

// Sale is a lead raised from the inquiry form or entered by staff.
type Sale struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Reference  string     `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	Name       string     `gorm:"size:150;not null" json:"name"`
	Email      string     `gorm:"size:200;not null;index" json:"email"`
	Phone      string     `gorm:"size:30" json:"phone"`
	Message    string     `gorm:"type:text" json:"message"`
	PropertyID *uint      `gorm:"index" json:"propertyId"`
	Property   *Property  `gorm:"constraint:OnDelete:SET NULL" json:"property,omitempty"`
	AgentID    *uint      `gorm:"index" json:"agentId"`
	Agent      *Agent     `gorm:"constraint:OnDelete:SET NULL" json:"agent,omitempty"`
	Status     LeadStatus `gorm:"size:20;not null;default:new;index" json:"status"`
	Source     string     `gorm:"size:20;not null;default:website" json:"source"`
	Notes      string     `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type InquiryInput struct {
	Name       string `json:"name" validate:"required,notblank,max=150"`
	Email      string `json:"email" validate:"required,email,max=200"`
	Phone      string `json:"phone" validate:"max=30"`
	Message    string `json:"message" validate:"max=5000"`
	PropertyID *uint  `json:"propertyId"`
}

type SaleInput struct {
	Name       string     `json:"name" validate:"required,notblank,max=150"`
	Email      string     `json:"email" validate:"required,email,max=200"`
	Phone      string     `json:"phone" validate:"max=30"`
	Message    string     `json:"message" validate:"max=5000"`
	PropertyID *uint      `json:"propertyId"`
	AgentID    *uint      `json:"agentId"`
	Status     LeadStatus `json:"status" validate:"omitempty,oneof=new contacted qualified negotiating closed lost"`
	Source     string     `json:"source" validate:"omitempty,oneof=website phone walk_in referral"`
	Notes      string     `json:"notes"`
}

func (in SaleInput) Apply(s *Sale) {
	s.Name = in.Name
	s.Email = in.Email
	s.Phone = in.Phone
	s.Message = in.Message
	s.PropertyID = in.PropertyID
	s.AgentID = in.AgentID
	s.Status = in.Status
	if s.Status == "" {
		s.Status = LeadStatusNew
	}
	s.Source = in.Source
	if s.Source == "" {
		s.Source = LeadSourceWebsite
	}
	s.Notes = in.Notes
}

type LeadStatusInput struct {
	Status LeadStatus `json:"status" validate:"required"`
}

type SaleFilter struct {
	Status string
	Query  string
	Page   int
	Limit  int
}
