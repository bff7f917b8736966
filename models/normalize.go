package models

import "strings"

// Normalizer is implemented by request bodies that clean up their fields
// before validation.
type Normalizer interface {
	Normalize()
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func (in *PropertyInput) Normalize() {
	trim(&in.Name, &in.Location, &in.City, &in.Address)
}

func (in *AgentInput) Normalize() {
	trim(&in.Name, &in.Email, &in.Phone, &in.PhotoURL, &in.Speciality)
}

func (in *BankInput) Normalize() {
	trim(&in.Name, &in.LogoURL, &in.ContactPhone, &in.Website)
}

func (in *CategoryInput) Normalize() {
	trim(&in.Name)
}

func (in *InquiryInput) Normalize() {
	trim(&in.Name, &in.Email, &in.Phone)
}

func (in *SaleInput) Normalize() {
	trim(&in.Name, &in.Email, &in.Phone)
}

func (in *ReviewInput) Normalize() {
	trim(&in.Name)
}

func (in *RegisterInput) Normalize() {
	trim(&in.Name, &in.Email, &in.Phone)
}

func (in *LoginInput) Normalize() {
	trim(&in.Email)
}

func (in *AdminLoginInput) Normalize() {
	trim(&in.Username)
}
