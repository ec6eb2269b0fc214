package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"arrenda_backend/pkg/tax"
	"arrenda_backend/pkg/utils/jwt"
)

type DistributionInput struct {
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
}

// ComputeDistribution runs the income split for the :id property over a
// period. Rerunning the same period supersedes the previous version and keeps
// it for audit.
func ComputeDistribution(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	propertyID := c.Params("id")
	input := new(DistributionInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Period end must be after period start",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var ownerships []model.PropertyOwnership
	if err := database.GetDB().Where("property_id = ?", property.ID).
		Preload("Owner").
		Find(&ownerships).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch ownership shares",
		})
	}

	shares := make([]tax.OwnerShare, 0, len(ownerships))
	ownersByID := make(map[uint]model.Owner, len(ownerships))
	for _, o := range ownerships {
		shares = append(shares, tax.OwnerShare{
			OwnerID:      o.OwnerID,
			SharePercent: o.SharePercent,
			Country:      o.Owner.ResidencyCountry,
		})
		ownersByID[o.OwnerID] = o.Owner
	}

	gross, err := collectedRent(property.ID, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute collected rent",
		})
	}

	expenses, err := maintenanceExpenses(property.ID, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute expenses",
		})
	}

	result, err := tax.Distribute(gross, expenses, shares)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var distribution model.IncomeDistribution
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		// Supersede the current version for this exact period, if any.
		var previous model.IncomeDistribution
		version := 1
		findErr := tx.Where(
			"property_id = ? AND period_start = ? AND period_end = ? AND status = ?",
			property.ID, input.PeriodStart, input.PeriodEnd, model.DistributionStatusCurrent,
		).First(&previous).Error
		if findErr == nil {
			version = previous.Version + 1
			if err := tx.Model(&previous).
				Update("status", model.DistributionStatusSuperseded).Error; err != nil {
				return err
			}
		} else if findErr != gorm.ErrRecordNotFound {
			return findErr
		}

		distribution = model.IncomeDistribution{
			UserID:      claims.UserID,
			PropertyID:  property.ID,
			PeriodStart: input.PeriodStart,
			PeriodEnd:   input.PeriodEnd,
			Version:     version,
			Status:      model.DistributionStatusCurrent,
			GrossIncome: result.Gross,
			Expenses:    result.Expenses,
			NetIncome:   result.Net,
			TotalTax:    result.TotalTax,
			Currency:    model.CurrencyEUR,
		}
		for _, s := range result.Shares {
			distribution.Shares = append(distribution.Shares, model.DistributionShare{
				OwnerID:      s.OwnerID,
				SharePercent: s.SharePercent,
				GrossShare:   s.Gross,
				Tax:          s.Tax,
				NetShare:     s.Net,
				TaxCountry:   s.Country,
			})
		}
		return tx.Create(&distribution).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save distribution",
		})
	}

	if email.GlobalEmailService != nil {
		period := fmt.Sprintf("%s – %s",
			input.PeriodStart.Format("02 Jan 2006"),
			input.PeriodEnd.Format("02 Jan 2006"))
		for _, s := range distribution.Shares {
			owner := ownersByID[s.OwnerID]
			if owner.Email == "" {
				continue
			}
			err := email.GlobalEmailService.SendDistributionReadyEmail(owner.Email, email.DistributionReadyData{
				OwnerName:    owner.GetFullName(),
				PropertyName: property.Name,
				Period:       period,
				NetShare:     s.NetShare.StringFixed(2),
				Currency:     string(distribution.Currency),
			})
			if err != nil {
				log.Printf("Could not send distribution email to %s: %v", owner.Email, err)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(distribution)
}

// ListDistributions lists distributions of the :id property, newest first.
// Pass ?all=true to include superseded versions.
func ListDistributions(c *fiber.Ctx) error {
	propertyID := c.Params("id")

	query := database.GetDB().Where("property_id = ?", propertyID).
		Preload("Shares.Owner")

	if c.Query("all") != "true" {
		query = query.Where("status = ?", model.DistributionStatusCurrent)
	}

	var distributions []model.IncomeDistribution
	if err := query.Order("period_start desc, version desc").Find(&distributions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch distributions",
		})
	}

	return c.JSON(distributions)
}

// GetDistribution returns one distribution with its shares.
func GetDistribution(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")

	var distribution model.IncomeDistribution
	if err := database.GetDB().
		Preload("Shares.Owner").
		First(&distribution, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Distribution not found",
		})
	}

	if distribution.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this distribution",
		})
	}

	return c.JSON(distribution)
}

// collectedRent sums paid invoices whose billing period falls in the window.
func collectedRent(propertyID uint, start, end time.Time) (decimal.Decimal, error) {
	var invoices []model.Invoice
	err := database.GetDB().
		Joins("JOIN leases ON invoices.lease_id = leases.id").
		Where("leases.property_id = ?", propertyID).
		Where("invoices.status = ?", model.InvoiceStatusPaid).
		Where("invoices.period_start >= ? AND invoices.period_start < ?", start, end).
		Find(&invoices).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range invoices {
		total = total.Add(invoices[i].Total)
	}
	return total, nil
}

// maintenanceExpenses sums repair costs of tickets resolved in the window.
func maintenanceExpenses(propertyID uint, start, end time.Time) (decimal.Decimal, error) {
	var tickets []model.MaintenanceTicket
	err := database.GetDB().
		Where("property_id = ?", propertyID).
		Where("resolved_at >= ? AND resolved_at < ?", start, end).
		Find(&tickets).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range tickets {
		total = total.Add(tickets[i].Cost)
	}
	return total, nil
}
