package cron

import (
	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

func InitInvoiceOverdueCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		markOverdueInvoices()
	})

	if err != nil {
		log.Printf("Could not initialize invoice overdue cron: %v", err)
		return
	}

	c.Start()
}

// markOverdueInvoices flips issued invoices past their due date to overdue and
// reminds the tenant by email.
func markOverdueInvoices() {
	log.Println("Checking for overdue invoices...")

	now := time.Now()

	var invoices []model.Invoice
	err := database.DB.Where("status = ? AND due_date < ?", model.InvoiceStatusIssued, now).
		Preload("Lease.Tenant").
		Find(&invoices).Error
	if err != nil {
		log.Printf("Error fetching overdue invoices: %v", err)
		return
	}

	log.Printf("Found %d invoices past due", len(invoices))

	for _, invoice := range invoices {
		if err := database.DB.Model(&invoice).
			Update("status", model.InvoiceStatusOverdue).Error; err != nil {
			log.Printf("Error marking invoice %s overdue: %v", invoice.Number, err)
			continue
		}

		tenant := invoice.Lease.Tenant
		if email.GlobalEmailService == nil || tenant.Email == "" {
			continue
		}

		daysOverdue := int(now.Sub(invoice.DueDate).Hours() / 24)
		err := email.GlobalEmailService.SendRentReminderEmail(tenant.Email, email.RentReminderData{
			TenantName:    tenant.GetFullName(),
			InvoiceNumber: invoice.Number,
			Amount:        invoice.Total.StringFixed(2),
			Currency:      string(invoice.Currency),
			DueDate:       invoice.DueDate,
			DaysOverdue:   daysOverdue,
		})
		if err != nil {
			log.Printf("Error sending rent reminder to %s: %v", tenant.Email, err)
		} else {
			log.Printf("Sent rent reminder to %s for invoice %s", tenant.Email, invoice.Number)
		}
	}
}
