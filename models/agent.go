package models

import "time"

type Agent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:150;not null" json:"name"`
	Email           string     `gorm:"size:200;not null;uniqueIndex" json:"email"`
	Phone           string     `gorm:"size:30" json:"phone"`
	PhotoURL        string     `gorm:"size:500" json:"photoUrl"`
	Bio             string     `gorm:"type:text" json:"bio"`
	Speciality      string     `gorm:"size:100" json:"speciality"`
	ExperienceYears int        `gorm:"not null;default:0" json:"experienceYears"`
	Properties      []Property `gorm:"-" json:"properties,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type AgentInput struct {
	Name            string `json:"name" validate:"required,notblank,max=150"`
	Email           string `json:"email" validate:"required,email,max=200"`
	Phone           string `json:"phone" validate:"max=30"`
	PhotoURL        string `json:"photoUrl" validate:"omitempty,url,max=500"`
	Bio             string `json:"bio"`
	Speciality      string `json:"speciality" validate:"max=100"`
	ExperienceYears int    `json:"experienceYears" validate:"gte=0,lte=80"`
}

func (in AgentInput) Apply(a *Agent) {
	a.Name = in.Name
	a.Email = in.Email
	a.Phone = in.Phone
	a.PhotoURL = in.PhotoURL
	a.Bio = in.Bio
	a.Speciality = in.Speciality
	a.ExperienceYears = in.ExperienceYears
}
