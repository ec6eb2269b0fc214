package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment method families offered at checkout. Multibanco and MB WAY are the
// Portuguese reference/wallet flows, SEPA debit covers eurozone bank pulls.
type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodMultibanco PaymentMethod = "multibanco"
	PaymentMethodMBWay      PaymentMethod = "mb_way"
	PaymentMethodSEPADebit  PaymentMethod = "sepa_debit"
	PaymentMethodManual     PaymentMethod = "manual" // offline transfer or cash
)

// Transaction Status
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusSucceeded  TransactionStatus = "succeeded"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
)

type PaymentTransaction struct {
	gorm.Model
	InvoiceID uint `json:"invoice_id" gorm:"index;not null"`

	Method         PaymentMethod     `json:"method" gorm:"not null"`
	Status         TransactionStatus `json:"status" gorm:"default:'pending'"`
	Amount         decimal.Decimal   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency       Currency          `json:"currency" gorm:"default:'EUR'"`
	StripeIntentID string            `json:"stripe_intent_id" gorm:"index"`
	FailureReason  string            `json:"failure_reason"`
	CompletedAt    *time.Time        `json:"completed_at"`

	// Multibanco voucher details returned by the provider (entity/reference)
	VoucherDetails datatypes.JSON `json:"voucher_details"`

	// Relations
	Invoice Invoice `json:"-" gorm:"foreignKey:InvoiceID"`
}

// WebhookEvent keeps one row per provider event id so replayed webhook
// deliveries are dropped instead of applied twice.
type WebhookEvent struct {
	ID         uint      `gorm:"primaryKey"`
	EventID    string    `gorm:"uniqueIndex;not null"`
	EventType  string    `gorm:"size:100"`
	ReceivedAt time.Time `gorm:"autoCreateTime"`
}
