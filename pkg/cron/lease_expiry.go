package cron

import (
	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

func InitLeaseExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		checkExpiringLeases()
		expireEndedLeases()
	})

	if err != nil {
		log.Printf("Could not initialize lease expiry cron: %v", err)
		return
	}

	c.Start()
}

func checkExpiringLeases() {
	log.Println("Checking for expiring leases...")

	warningDays := []int{30, 7}

	for _, days := range warningDays {
		var leases []model.Lease
		targetDate := time.Now().AddDate(0, 0, days).Format("2006-01-02")

		err := database.DB.Where("DATE(end_date) = ? AND status = ?", targetDate, model.LeaseStatusActive).
			Preload("Property.User").
			Preload("Unit").
			Preload("Tenant").
			Find(&leases).Error
		if err != nil {
			log.Printf("Error fetching expiring leases: %v", err)
			continue
		}

		log.Printf("Found %d leases expiring in %d days", len(leases), days)

		for _, lease := range leases {
			if email.GlobalEmailService == nil || lease.EndDate == nil {
				continue
			}

			err := email.GlobalEmailService.SendLeaseExpiryWarning(lease.Property.User.Email, email.LeaseExpiryData{
				CompanyName:  lease.Property.User.CompanyName,
				PropertyName: lease.Property.Name,
				UnitLabel:    lease.Unit.Label,
				TenantName:   lease.Tenant.GetFullName(),
				EndDate:      *lease.EndDate,
				DaysLeft:     days,
			})
			if err != nil {
				log.Printf("Error sending expiry warning to %s: %v", lease.Property.User.Email, err)
			} else {
				log.Printf("Sent expiry warning for lease %d expiring in %d days", lease.ID, days)
			}
		}
	}
}

// expireEndedLeases flips active leases whose end date has passed to expired.
func expireEndedLeases() {
	result := database.DB.Model(&model.Lease{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", model.LeaseStatusActive, time.Now()).
		Update("status", model.LeaseStatusExpired)

	if result.Error != nil {
		log.Printf("Error expiring ended leases: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d leases as expired", result.RowsAffected)
	}
}
