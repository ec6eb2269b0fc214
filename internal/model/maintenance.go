package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticket Status
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Ticket Priority
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

type MaintenanceTicket struct {
	gorm.Model
	UserID     uint  `json:"user_id" gorm:"index;not null"`
	PropertyID uint  `json:"property_id" gorm:"index;not null"`
	UnitID     *uint `json:"unit_id" gorm:"index"` // nil = common area
	TenantID   *uint `json:"tenant_id" gorm:"index"`

	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"size:50"` // plumbing, electrical, ...
	Status      TicketStatus   `json:"status" gorm:"default:'open'"`
	Priority    TicketPriority `json:"priority" gorm:"default:'medium'"`

	// Repair cost; feeds the property's deductible expenses
	Cost       decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);default:0"`
	ResolvedAt *time.Time      `json:"resolved_at"`
	ClosedAt   *time.Time      `json:"closed_at"`

	// Relations
	User     User            `json:"-" gorm:"foreignKey:UserID"`
	Property Property        `json:"property" gorm:"foreignKey:PropertyID"`
	Unit     *Unit           `json:"unit" gorm:"foreignKey:UnitID"`
	Tenant   *Tenant         `json:"tenant" gorm:"foreignKey:TenantID"`
	Comments []TicketComment `json:"comments" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

type TicketComment struct {
	gorm.Model
	TicketID uint   `json:"ticket_id" gorm:"index"`
	Author   string `json:"author" gorm:"size:100"`
	Body     string `json:"body" gorm:"type:text;not null"`

	Ticket MaintenanceTicket `json:"-" gorm:"foreignKey:TicketID"`
}

// CanTransitionTo enforces the ticket lifecycle: open -> in_progress ->
// resolved -> closed, with reopen allowed from resolved.
func (t *MaintenanceTicket) CanTransitionTo(next TicketStatus) bool {
	switch t.Status {
	case TicketStatusOpen:
		return next == TicketStatusInProgress || next == TicketStatusClosed
	case TicketStatusInProgress:
		return next == TicketStatusResolved || next == TicketStatusOpen
	case TicketStatusResolved:
		return next == TicketStatusClosed || next == TicketStatusOpen
	case TicketStatusClosed:
		return false
	}
	return false
}
