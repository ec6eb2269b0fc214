package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Distribution Status
type DistributionStatus string

const (
	DistributionStatusCurrent    DistributionStatus = "current"
	DistributionStatusSuperseded DistributionStatus = "superseded"
)

// IncomeDistribution is one computed split of a property's net rental income
// for a period. Recomputing the same (property, period) keeps the old row for
// audit and creates a new one with a bumped version.
type IncomeDistribution struct {
	gorm.Model
	UserID     uint `json:"user_id" gorm:"index;not null"`
	PropertyID uint `json:"property_id" gorm:"index;not null"`

	PeriodStart time.Time          `json:"period_start" gorm:"not null"`
	PeriodEnd   time.Time          `json:"period_end" gorm:"not null"`
	Version     int                `json:"version" gorm:"default:1"`
	Status      DistributionStatus `json:"status" gorm:"default:'current'"`

	GrossIncome decimal.Decimal `json:"gross_income" gorm:"type:decimal(12,2);not null"`
	Expenses    decimal.Decimal `json:"expenses" gorm:"type:decimal(12,2);not null"`
	NetIncome   decimal.Decimal `json:"net_income" gorm:"type:decimal(12,2);not null"`
	TotalTax    decimal.Decimal `json:"total_tax" gorm:"type:decimal(12,2);not null"`
	Currency    Currency        `json:"currency" gorm:"default:'EUR'"`

	// Relations
	Property Property            `json:"-" gorm:"foreignKey:PropertyID"`
	Shares   []DistributionShare `json:"shares" gorm:"foreignKey:DistributionID;constraint:OnDelete:CASCADE"`
}

// DistributionShare is one owner's slice of a distribution.
type DistributionShare struct {
	gorm.Model
	DistributionID uint `json:"distribution_id" gorm:"index"`
	OwnerID        uint `json:"owner_id" gorm:"index"`

	SharePercent decimal.Decimal `json:"share_percent" gorm:"type:decimal(5,2);not null"`
	GrossShare   decimal.Decimal `json:"gross_share" gorm:"type:decimal(12,2);not null"`
	Tax          decimal.Decimal `json:"tax" gorm:"type:decimal(12,2);not null"`
	NetShare     decimal.Decimal `json:"net_share" gorm:"type:decimal(12,2);not null"`
	TaxCountry   string          `json:"tax_country" gorm:"size:2"`

	Distribution IncomeDistribution `json:"-" gorm:"foreignKey:DistributionID"`
	Owner        Owner              `json:"owner" gorm:"foreignKey:OwnerID"`
}
