package cron

import (
	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func InitInvoiceGenerationCron() {
	c := cron.New()

	_, err := c.AddFunc("0 6 * * *", func() {
		generateRentInvoices(time.Now())
	})

	if err != nil {
		log.Printf("Could not initialize invoice generation cron: %v", err)
		return
	}

	c.Start()
}

// generateRentInvoices drafts and issues the monthly rent invoice for every
// active lease whose billing day is today. Skips leases that already have an
// invoice for the current period, so a rerun on the same day is harmless.
func generateRentInvoices(now time.Time) {
	log.Println("Generating rent invoices...")

	var leases []model.Lease
	err := database.DB.Where("status = ? AND billing_day = ?", model.LeaseStatusActive, now.Day()).
		Preload("Property").
		Preload("Tenant").
		Find(&leases).Error
	if err != nil {
		log.Printf("Error fetching leases for billing: %v", err)
		return
	}

	log.Printf("Found %d leases billing today", len(leases))

	for _, lease := range leases {
		periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		periodEnd := periodStart.AddDate(0, 1, 0)

		if !lease.IsCurrent(now) {
			continue
		}

		var existing int64
		database.DB.Model(&model.Invoice{}).
			Where("lease_id = ? AND period_start = ? AND status <> ?",
				lease.ID, periodStart, model.InvoiceStatusVoid).
			Count(&existing)
		if existing > 0 {
			continue
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			number, err := model.NextInvoiceNumber(tx, lease.Property.UserID, now)
			if err != nil {
				return err
			}

			issuedAt := now
			invoice := model.Invoice{
				UserID:      lease.Property.UserID,
				LeaseID:     lease.ID,
				Number:      number,
				Status:      model.InvoiceStatusIssued,
				Total:       lease.RentAmount,
				Currency:    lease.Currency,
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
				IssuedAt:    &issuedAt,
				DueDate:     now.AddDate(0, 0, 7),
				Lines: []model.InvoiceLine{
					{
						Description: "Monthly rent " + periodStart.Format("January 2006"),
						Quantity:    1,
						UnitPrice:   lease.RentAmount,
					},
				},
			}
			return tx.Create(&invoice).Error
		})
		if err != nil {
			log.Printf("Error creating rent invoice for lease %d: %v", lease.ID, err)
			continue
		}

		log.Printf("Issued rent invoice for lease %d (%s)", lease.ID, lease.Tenant.GetFullName())
	}
}
