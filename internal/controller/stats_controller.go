package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
)

// DashboardStats is the landlord's portfolio overview.
type DashboardStats struct {
	TotalProperties int64 `json:"total_properties"`
	TotalUnits      int64 `json:"total_units"`
	OccupiedUnits   int64 `json:"occupied_units"`
	// OccupancyRate is occupied/total as a percentage, 0 when no units exist.
	OccupancyRate float64 `json:"occupancy_rate"`

	RentCollectedThisMonth   decimal.Decimal `json:"rent_collected_this_month"`
	RentOutstandingThisMonth decimal.Decimal `json:"rent_outstanding_this_month"`
	OverdueInvoices          int64           `json:"overdue_invoices"`

	OpenTickets    int64 `json:"open_tickets"`
	ExpiringLeases int64 `json:"expiring_leases"` // next 90 days
}

// GetDashboardStats aggregates the caller's portfolio numbers.
func GetDashboardStats(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	db := database.GetDB()

	var stats DashboardStats

	db.Model(&model.Property{}).
		Where("user_id = ?", claims.UserID).
		Count(&stats.TotalProperties)

	db.Model(&model.Unit{}).
		Joins("JOIN properties ON units.property_id = properties.id").
		Where("properties.user_id = ?", claims.UserID).
		Count(&stats.TotalUnits)

	db.Model(&model.Lease{}).
		Joins("JOIN properties ON leases.property_id = properties.id").
		Where("properties.user_id = ? AND leases.status = ?", claims.UserID, model.LeaseStatusActive).
		Distinct("leases.unit_id").
		Count(&stats.OccupiedUnits)

	if stats.TotalUnits > 0 {
		stats.OccupancyRate = float64(stats.OccupiedUnits) / float64(stats.TotalUnits) * 100
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats.RentCollectedThisMonth = sumInvoiceTotals(claims.UserID,
		"invoices.status = ? AND invoices.paid_at >= ? AND invoices.paid_at < ?",
		model.InvoiceStatusPaid, monthStart, monthEnd)
	stats.RentOutstandingThisMonth = sumInvoiceTotals(claims.UserID,
		"invoices.status IN ? AND invoices.due_date >= ? AND invoices.due_date < ?",
		[]model.InvoiceStatus{model.InvoiceStatusIssued, model.InvoiceStatusOverdue}, monthStart, monthEnd)

	db.Model(&model.Invoice{}).
		Where("user_id = ? AND status = ?", claims.UserID, model.InvoiceStatusOverdue).
		Count(&stats.OverdueInvoices)

	db.Model(&model.MaintenanceTicket{}).
		Where("user_id = ? AND status IN ?", claims.UserID,
			[]model.TicketStatus{model.TicketStatusOpen, model.TicketStatusInProgress}).
		Count(&stats.OpenTickets)

	horizon := now.AddDate(0, 0, 90)
	db.Model(&model.Lease{}).
		Joins("JOIN properties ON leases.property_id = properties.id").
		Where("properties.user_id = ? AND leases.status = ?", claims.UserID, model.LeaseStatusActive).
		Where("leases.end_date IS NOT NULL AND leases.end_date BETWEEN ? AND ?", now, horizon).
		Count(&stats.ExpiringLeases)

	return c.JSON(stats)
}

func sumInvoiceTotals(userID uint, cond string, args ...interface{}) decimal.Decimal {
	var invoices []model.Invoice
	database.GetDB().
		Where("invoices.user_id = ?", userID).
		Where(cond, args...).
		Find(&invoices)

	total := decimal.Zero
	for i := range invoices {
		total = total.Add(invoices[i].Total)
	}
	return total
}
