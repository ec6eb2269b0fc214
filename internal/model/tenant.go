package model

import (
	"strings"

	"gorm.io/gorm"
)

type Tenant struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"index;not null"` // managing account

	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	Email       string `json:"email" gorm:"index;not null"`
	Phone       string `json:"phone"`
	TaxNumber   string `json:"tax_number"` // NIF / NIE
	CountryCode string `json:"country_code"`
	Notes       string `json:"notes" gorm:"type:text"`

	// Relations
	User   User    `json:"-" gorm:"foreignKey:UserID"`
	Leases []Lease `json:"-" gorm:"foreignKey:TenantID"`
}

func (t *Tenant) GetFullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}
