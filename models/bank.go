package models

import "time"

// Bank is a lender with a home loan offer.
type Bank struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	InterestRate   float64   `gorm:"not null" json:"interestRate"`
	MaxLoanAmount  float64   `gorm:"not null" json:"maxLoanAmount"`
	MaxTenureYears int       `gorm:"not null" json:"maxTenureYears"`
	ProcessingFee  float64   `gorm:"not null;default:0" json:"processingFee"`
	LogoURL        string    `gorm:"size:500" json:"logoUrl"`
	ContactPhone   string    `gorm:"size:30" json:"contactPhone"`
	Website        string    `gorm:"size:300" json:"website"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type BankInput struct {
	Name           string  `json:"name" validate:"required,notblank,max=150"`
	InterestRate   float64 `json:"interestRate" validate:"gt=0,lte=100"`
	MaxLoanAmount  float64 `json:"maxLoanAmount" validate:"gt=0"`
	MaxTenureYears int     `json:"maxTenureYears" validate:"gte=1,lte=40"`
	ProcessingFee  float64 `json:"processingFee" validate:"gte=0,lte=100"`
	LogoURL        string  `json:"logoUrl" validate:"omitempty,url,max=500"`
	ContactPhone   string  `json:"contactPhone" validate:"max=30"`
	Website        string  `json:"website" validate:"omitempty,url,max=300"`
}

func (in BankInput) Apply(b *Bank) {
	b.Name = in.Name
	b.InterestRate = in.InterestRate
	b.MaxLoanAmount = in.MaxLoanAmount
	b.MaxTenureYears = in.MaxTenureYears
	b.ProcessingFee = in.ProcessingFee
	b.LogoURL = in.LogoURL
	b.ContactPhone = in.ContactPhone
	b.Website = in.Website
}

type LoanQuote struct {
	BankID        uint    `json:"bankId"`
	BankName      string  `json:"bankName"`
	Amount        float64 `json:"amount"`
	Years         int     `json:"years"`
	InterestRate  float64 `json:"interestRate"`
	MonthlyEMI    float64 `json:"monthlyEmi"`
	TotalPayment  float64 `json:"totalPayment"`
	TotalInterest float64 `json:"totalInterest"`
	ProcessingFee float64 `json:"processingFee"`
}
