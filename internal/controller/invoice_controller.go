package controller

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"arrenda_backend/pkg/utils/jwt"
)

type InvoiceLineInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type InvoiceInput struct {
	LeaseID     uint               `json:"lease_id" validate:"required"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	DueDate     time.Time          `json:"due_date" validate:"required"`
	Lines       []InvoiceLineInput `json:"lines" validate:"required,min=1"`
}

// CreateInvoice creates a draft invoice for a lease.
func CreateInvoice(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(InvoiceInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invoice needs at least one line",
		})
	}

	var lease model.Lease
	if err := database.GetDB().Preload("Property").First(&lease, input.LeaseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lease not found",
		})
	}
	if lease.Property.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to invoice this lease",
		})
	}

	tx := database.GetDB().Begin()

	number, err := model.NextInvoiceNumber(tx, claims.UserID, time.Now())
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not assign invoice number",
		})
	}

	invoice := model.Invoice{
		UserID:      claims.UserID,
		LeaseID:     lease.ID,
		Number:      number,
		Status:      model.InvoiceStatusDraft,
		Currency:    lease.Currency,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		DueDate:     input.DueDate,
	}
	for _, line := range input.Lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		invoice.Lines = append(invoice.Lines, model.InvoiceLine{
			Description: line.Description,
			Quantity:    qty,
			UnitPrice:   line.UnitPrice,
		})
	}
	invoice.Total = invoice.ComputeTotal()

	if invoice.Total.Sign() <= 0 {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invoice total must be positive",
		})
	}

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create invoice",
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete invoice creation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// ListMyInvoices lists the caller's invoices, filterable by status, lease or
// property.
func ListMyInvoices(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().Where("invoices.user_id = ?", claims.UserID).
		Preload("Lines").
		Preload("Lease.Tenant").
		Preload("Lease.Property")

	if status := c.Query("status"); status != "" {
		query = query.Where("invoices.status = ?", status)
	}
	if leaseID := c.Query("lease_id"); leaseID != "" {
		query = query.Where("invoices.lease_id = ?", leaseID)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Joins("JOIN leases ON invoices.lease_id = leases.id").
			Where("leases.property_id = ?", propertyID)
	}

	var invoices []model.Invoice
	if err := query.Order("invoices.created_at desc").Find(&invoices).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch invoices",
		})
	}

	return c.JSON(invoices)
}

// GetInvoice returns one invoice with its lines and payment attempts.
func GetInvoice(c *fiber.Ctx) error {
	id := c.Params("id")

	var invoice model.Invoice
	if err := database.GetDB().
		Preload("Lines").
		Preload("Lease.Tenant").
		Preload("Lease.Property").
		First(&invoice, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	var transactions []model.PaymentTransaction
	database.GetDB().Where("invoice_id = ?", invoice.ID).
		Order("created_at desc").
		Find(&transactions)

	return c.JSON(fiber.Map{
		"invoice":      invoice,
		"transactions": transactions,
	})
}

// IssueInvoice moves a draft to issued and emails the tenant.
func IssueInvoice(c *fiber.Ctx) error {
	id := c.Params("id")

	var invoice model.Invoice
	if err := database.GetDB().
		Preload("Lease.Tenant").
		First(&invoice, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	if invoice.Status != model.InvoiceStatusDraft {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only draft invoices can be issued",
		})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    model.InvoiceStatusIssued,
		"issued_at": now,
	}
	if err := database.GetDB().Model(&invoice).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not issue invoice",
		})
	}

	if email.GlobalEmailService != nil {
		payLink := fmt.Sprintf("%s/pay/%d", os.Getenv("APP_BASE_URL"), invoice.ID)
		err := email.GlobalEmailService.SendInvoiceIssuedEmail(invoice.Lease.Tenant.Email, email.InvoiceIssuedData{
			TenantName:    invoice.Lease.Tenant.GetFullName(),
			InvoiceNumber: invoice.Number,
			Amount:        invoice.Total.StringFixed(2),
			Currency:      string(invoice.Currency),
			DueDate:       invoice.DueDate,
			PayLink:       payLink,
		})
		if err != nil {
			log.Printf("Could not send invoice email: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Invoice issued",
	})
}

// VoidInvoice cancels an unpaid invoice.
func VoidInvoice(c *fiber.Ctx) error {
	id := c.Params("id")

	var invoice model.Invoice
	if err := database.GetDB().First(&invoice, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	if invoice.Status == model.InvoiceStatusPaid {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Paid invoices cannot be voided",
		})
	}

	if err := database.GetDB().Model(&invoice).Update("status", model.InvoiceStatusVoid).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not void invoice",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoice voided",
	})
}

// MarkInvoicePaid records an offline payment (bank transfer, cash).
func MarkInvoicePaid(c *fiber.Ctx) error {
	id := c.Params("id")

	var invoice model.Invoice
	if err := database.GetDB().Preload("Lease.Tenant").First(&invoice, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	if !invoice.IsPayable() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Invoice is not awaiting payment",
		})
	}

	now := time.Now()
	if err := settleInvoice(&invoice, model.PaymentTransaction{
		InvoiceID:   invoice.ID,
		Method:      model.PaymentMethodManual,
		Status:      model.TransactionStatusSucceeded,
		Amount:      invoice.Total,
		Currency:    invoice.Currency,
		CompletedAt: &now,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not mark invoice paid",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoice marked as paid",
	})
}
