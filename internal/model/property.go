package model

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property Types
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeCondo      PropertyType = "Condo"
	PropertyTypeVilla      PropertyType = "Villa"
	PropertyTypeTownhouse  PropertyType = "Townhouse"
	PropertyTypeCommercial PropertyType = "Commercial"
	PropertyTypeMixedUse   PropertyType = "Mixed Use"
)

// Currency Types
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

type Property struct {
	gorm.Model
	Name        string       `json:"name" gorm:"not null"`
	Slug        string       `json:"slug" gorm:"uniqueIndex:idx_user_property_slug;not null"`
	Type        PropertyType `json:"type" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text"`

	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_user_property_slug"`

	// Location fields
	CountryCode string `json:"country_code" gorm:"not null"`
	CountryName string `json:"country_name" gorm:"not null"`
	StateCode   string `json:"state_code"`
	StateName   string `json:"state_name"`
	City        string `json:"city" gorm:"not null"`
	PostalCode  string `json:"postal_code"`
	FullAddress string `json:"full_address" gorm:"type:text"`

	YearBuilt int            `json:"year_built"`
	Amenities datatypes.JSON `json:"amenities"` // free-form amenity list

	// Relations
	User       User                `json:"-" gorm:"foreignKey:UserID"`
	Units      []Unit              `json:"units" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Photos     []PropertyPhoto     `json:"photos" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Ownerships []PropertyOwnership `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

type PropertyPhoto struct {
	gorm.Model
	PropertyID uint   `json:"property_id"`
	URL        string `json:"url" gorm:"not null"`
	IsCover    bool   `json:"is_cover" gorm:"default:false"`
	Order      int    `json:"order" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

type Unit struct {
	gorm.Model
	PropertyID uint   `json:"property_id" gorm:"uniqueIndex:idx_property_unit_label"`
	Label      string `json:"label" gorm:"uniqueIndex:idx_property_unit_label;not null"` // "2B", "Loja Esq."
	Floor      int    `json:"floor"`
	Bedrooms   int    `json:"bedrooms"`
	Bathrooms  int    `json:"bathrooms"`
	AreaSqM    int    `json:"area_sq_m"`

	MarketRent decimal.Decimal `json:"market_rent" gorm:"type:decimal(12,2);default:0"`
	Currency   Currency        `json:"currency" gorm:"default:'EUR'"`

	// Relations
	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
	Leases   []Lease  `json:"-" gorm:"foreignKey:UnitID"`
}

// BeforeCreate fills the slug from the property name, unique per user.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		s := slug.Make(p.Name)

		var count int64
		tx.Model(&Property{}).Where("user_id = ? AND slug = ?", p.UserID, s).Count(&count)
		if count > 0 {
			s = s + "-" + time.Now().Format("20060102")
		}

		p.Slug = s
	}
	return nil
}
