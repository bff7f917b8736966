package models

import (
	"encoding/json"
	"time"
)

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypePlot       PropertyType = "plot"
	PropertyTypeCommercial PropertyType = "commercial"
)

type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
)

var PropertyStatuses = []PropertyStatus{
	PropertyStatusAvailable, PropertyStatusPending, PropertyStatusSold, PropertyStatusRented,
}

type Property struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         float64         `gorm:"not null;index" json:"price"`
	Location      string          `gorm:"size:150;not null;index" json:"location"`
	City          string          `gorm:"size:100;index" json:"city"`
	Address       string          `gorm:"size:255" json:"address"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Bedrooms      int             `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms     int             `gorm:"not null;default:0" json:"bathrooms"`
	Balconies     int             `gorm:"not null;default:0" json:"balconies"`
	AreaSqFt      int             `json:"areaSqFt"`
	PropertyType  PropertyType    `gorm:"size:30;index" json:"propertyType"`
	ListingType   ListingType     `gorm:"size:10;index" json:"listingType"`
	Status        PropertyStatus  `gorm:"size:20;not null;default:available;index" json:"status"`
	Amenities     string          `gorm:"type:text" json:"amenities"`
	CategoryID    *uint           `gorm:"index" json:"categoryId"`
	Category      *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	AgentID       *uint           `gorm:"index" json:"agentId"`
	Agent         *Agent          `gorm:"constraint:OnDelete:SET NULL" json:"agent,omitempty"`
	IsHotspot     bool            `gorm:"not null;default:false;index" json:"isHotspot"`
	IsFeatured    bool            `gorm:"not null;default:false;index" json:"isFeatured"`
	AverageRating float64         `gorm:"not null;default:0" json:"averageRating"`
	ReviewCount   int             `gorm:"not null;default:0" json:"reviewCount"`
	Photos        []PropertyPhoto `gorm:"constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	IsFavorite    bool            `gorm:"-" json:"isFavorite,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type PropertyPhoto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PropertyID  uint      `gorm:"not null;index" json:"propertyId"`
	FileID      string    `gorm:"size:64;not null" json:"fileId"`
	FileName    string    `gorm:"size:255" json:"fileName"`
	ContentType string    `gorm:"size:100" json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PropertyInput is the body of create, full update and (merged) partial update.
type PropertyInput struct {
	Name         string         `json:"name" validate:"required,notblank,max=200"`
	Description  string         `json:"description"`
	Price        float64        `json:"price" validate:"gt=0"`
	Location     string         `json:"location" validate:"required,notblank,max=150"`
	City         string         `json:"city" validate:"max=100"`
	Address      string         `json:"address" validate:"max=255"`
	Latitude     float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64        `json:"longitude" validate:"gte=-180,lte=180"`
	Bedrooms     int            `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int            `json:"bathrooms" validate:"gte=0"`
	Balconies    int            `json:"balconies" validate:"gte=0"`
	AreaSqFt     int            `json:"areaSqFt" validate:"gte=0"`
	PropertyType PropertyType   `json:"propertyType" validate:"omitempty,oneof=apartment villa house plot commercial"`
	ListingType  ListingType    `json:"listingType" validate:"omitempty,oneof=sale rent"`
	Status       PropertyStatus `json:"status" validate:"omitempty,oneof=available pending sold rented"`
	Amenities    string         `json:"amenities"`
	CategoryID   *uint          `json:"categoryId"`
	AgentID      *uint          `json:"agentId"`
	IsHotspot    bool           `json:"isHotspot"`
	IsFeatured   bool           `json:"isFeatured"`
}

func (in PropertyInput) Apply(p *Property) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Location = in.Location
	p.City = in.City
	p.Address = in.Address
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.Balconies = in.Balconies
	p.AreaSqFt = in.AreaSqFt
	p.PropertyType = in.PropertyType
	p.ListingType = in.ListingType
	p.Status = in.Status
	if p.Status == "" {
		p.Status = PropertyStatusAvailable
	}
	if p.ListingType == "" {
		p.ListingType = ListingTypeSale
	}
	p.Amenities = in.Amenities
	p.CategoryID = in.CategoryID
	p.AgentID = in.AgentID
	p.IsHotspot = in.IsHotspot
	p.IsFeatured = in.IsFeatured
}

// PropertyUpdate is the body of PUT and PATCH. It also accepts a property
// exactly as GET returns it; the read-only fields are decoded and dropped.
type PropertyUpdate struct {
	PropertyInput
	ID            json.RawMessage `json:"id"`
	Category      json.RawMessage `json:"category"`
	Agent         json.RawMessage `json:"agent"`
	AverageRating json.RawMessage `json:"averageRating"`
	ReviewCount   json.RawMessage `json:"reviewCount"`
	Photos        json.RawMessage `json:"photos"`
	IsFavorite    json.RawMessage `json:"isFavorite"`
	CreatedAt     json.RawMessage `json:"createdAt"`
	UpdatedAt     json.RawMessage `json:"updatedAt"`
}

func InputFromProperty(p *Property) PropertyInput {
	return PropertyInput{
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Location:     p.Location,
		City:         p.City,
		Address:      p.Address,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Balconies:    p.Balconies,
		AreaSqFt:     p.AreaSqFt,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Status:       p.Status,
		Amenities:    p.Amenities,
		CategoryID:   p.CategoryID,
		AgentID:      p.AgentID,
		IsHotspot:    p.IsHotspot,
		IsFeatured:   p.IsFeatured,
	}
}

// PropertyFilter holds the parsed search query of the public listing.
type PropertyFilter struct {
	Query        string
	Location     string
	City         string
	CategoryID   uint
	AgentID      uint
	PropertyType string
	ListingType  string
	Status       string
	MinPrice     float64
	MaxPrice     float64
	MinBedrooms  int
	MinBathrooms int
	Featured     *bool
	Hotspot      *bool
	Sort         string
	Page         int
	Limit        int
}

type LocationCount struct {
	Location string `db:"location" json:"location"`
	Count    int64  `db:"count" json:"count"`
}

type Comparison struct {
	Properties []Property        `json:"properties"`
	Summary    ComparisonSummary `json:"summary"`
}

type ComparisonSummary struct {
	MinPrice     float64          `json:"minPrice"`
	MaxPrice     float64          `json:"maxPrice"`
	CheapestID   uint             `json:"cheapestId"`
	LargestID    uint             `json:"largestId"`
	BestRatedID  uint             `json:"bestRatedId"`
	MaxBedrooms  int              `json:"maxBedrooms"`
	MaxBathrooms int              `json:"maxBathrooms"`
	PricePerSqFt map[uint]float64 `json:"pricePerSqFt"`
}
