package model

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Owner is a beneficial owner of one or more properties. Residency country
// selects the tax bracket table applied to their income share.
type Owner struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"index;not null"`

	FirstName        string `json:"first_name" gorm:"not null"`
	LastName         string `json:"last_name" gorm:"not null"`
	Email            string `json:"email"`
	TaxNumber        string `json:"tax_number"`
	ResidencyCountry string `json:"residency_country" gorm:"size:2;not null"` // PT or ES

	// Relations
	User       User                `json:"-" gorm:"foreignKey:UserID"`
	Ownerships []PropertyOwnership `json:"-" gorm:"foreignKey:OwnerID"`
}

func (o *Owner) GetFullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// PropertyOwnership assigns an owner a percentage share of a property.
// Shares across a property must total 100 before income can be distributed.
type PropertyOwnership struct {
	gorm.Model
	PropertyID uint `json:"property_id" gorm:"uniqueIndex:idx_property_owner;not null"`
	OwnerID    uint `json:"owner_id" gorm:"uniqueIndex:idx_property_owner;not null"`

	SharePercent decimal.Decimal `json:"share_percent" gorm:"type:decimal(5,2);not null"`

	// Relations
	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
	Owner    Owner    `json:"owner" gorm:"foreignKey:OwnerID"`
}
