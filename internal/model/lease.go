package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lease Status
type LeaseStatus string

const (
	LeaseStatusDraft      LeaseStatus = "draft"
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusTerminated LeaseStatus = "terminated"
	LeaseStatusExpired    LeaseStatus = "expired"
)

type Lease struct {
	gorm.Model
	PropertyID uint `json:"property_id" gorm:"index;not null"`
	UnitID     uint `json:"unit_id" gorm:"index;not null"`
	TenantID   uint `json:"tenant_id" gorm:"index;not null"`

	Status     LeaseStatus     `json:"status" gorm:"default:'draft'"`
	RentAmount decimal.Decimal `json:"rent_amount" gorm:"type:decimal(12,2);not null"`
	Currency   Currency        `json:"currency" gorm:"default:'EUR'"`
	Deposit    decimal.Decimal `json:"deposit" gorm:"type:decimal(12,2);default:0"`
	BillingDay int             `json:"billing_day" gorm:"default:1"` // day of month rent falls due

	StartDate time.Time  `json:"start_date" gorm:"not null"`
	EndDate   *time.Time `json:"end_date"` // nil = open-ended

	TerminatedAt      *time.Time `json:"terminated_at"`
	TerminationReason string     `json:"termination_reason"`

	// Relations
	Property  Property        `json:"property" gorm:"foreignKey:PropertyID"`
	Unit      Unit            `json:"unit" gorm:"foreignKey:UnitID"`
	Tenant    Tenant          `json:"tenant" gorm:"foreignKey:TenantID"`
	Documents []LeaseDocument `json:"documents" gorm:"foreignKey:LeaseID;constraint:OnDelete:CASCADE"`
	Invoices  []Invoice       `json:"-" gorm:"foreignKey:LeaseID"`
}

type LeaseDocument struct {
	gorm.Model
	LeaseID  uint   `json:"lease_id" gorm:"index"`
	Name     string `json:"name" gorm:"not null"`
	URL      string `json:"url" gorm:"not null"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`

	Lease Lease `json:"-" gorm:"foreignKey:LeaseID"`
}

// IsCurrent reports whether the lease covers the given date.
func (l *Lease) IsCurrent(at time.Time) bool {
	if l.Status != LeaseStatusActive {
		return false
	}
	if at.Before(l.StartDate) {
		return false
	}
	if l.EndDate != nil && at.After(*l.EndDate) {
		return false
	}
	return true
}

// Overlaps reports whether [start, end) intersects the lease period.
// A nil end means open-ended.
func (l *Lease) Overlaps(start time.Time, end *time.Time) bool {
	if l.EndDate != nil && !start.Before(*l.EndDate) {
		return false
	}
	if end != nil && !l.StartDate.Before(*end) {
		return false
	}
	return true
}
