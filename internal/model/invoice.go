package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice Status
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusIssued  InvoiceStatus = "issued"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

type Invoice struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"index;uniqueIndex:idx_user_invoice_number;not null"`
	LeaseID uint `json:"lease_id" gorm:"index;not null"`

	Number   string          `json:"number" gorm:"uniqueIndex:idx_user_invoice_number"`
	Status   InvoiceStatus   `json:"status" gorm:"default:'draft'"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Currency Currency        `json:"currency" gorm:"default:'EUR'"`

	// Billing period the invoice covers
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	IssuedAt *time.Time `json:"issued_at"`
	DueDate  time.Time  `json:"due_date"`
	PaidAt   *time.Time `json:"paid_at"`

	// Relations
	User  User          `json:"-" gorm:"foreignKey:UserID"`
	Lease Lease         `json:"lease" gorm:"foreignKey:LeaseID"`
	Lines []InvoiceLine `json:"lines" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

type InvoiceLine struct {
	gorm.Model
	InvoiceID   uint            `json:"invoice_id" gorm:"index"`
	Description string          `json:"description" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"default:1"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`

	Invoice Invoice `json:"-" gorm:"foreignKey:InvoiceID"`
}

// NextInvoiceNumber builds the sequential per-account number, e.g. "INV-2026-000123".
func NextInvoiceNumber(tx *gorm.DB, userID uint, at time.Time) (string, error) {
	var count int64
	if err := tx.Model(&Invoice{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%06d", at.Year(), count+1), nil
}

// LineTotal returns quantity times unit price.
func (l *InvoiceLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ComputeTotal sums the invoice lines.
func (i *Invoice) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range i.Lines {
		total = total.Add(i.Lines[idx].LineTotal())
	}
	return total
}

// IsPayable reports whether the invoice can accept an online payment.
func (i *Invoice) IsPayable() bool {
	return i.Status == InvoiceStatusIssued || i.Status == InvoiceStatusOverdue
}
