package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
	"arrenda_backend/pkg/utils/storage"
)

type LeaseInput struct {
	PropertyID uint `json:"property_id" validate:"required"`
	UnitID     uint `json:"unit_id" validate:"required"`
	TenantID   uint `json:"tenant_id" validate:"required"`

	RentAmount decimal.Decimal `json:"rent_amount" validate:"required"`
	Currency   model.Currency  `json:"currency"`
	Deposit    decimal.Decimal `json:"deposit"`
	BillingDay int             `json:"billing_day"`

	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`
}

type TerminateLeaseInput struct {
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// CreateLease creates a draft lease after checking the references belong to
// the caller.
func CreateLease(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(LeaseInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.RentAmount.Sign() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rent amount must be positive",
		})
	}
	if input.BillingDay < 1 || input.BillingDay > 28 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Billing day must be between 1 and 28",
		})
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "End date must be after start date",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, input.PropertyID).Error; err != nil || property.UserID != claims.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var unit model.Unit
	if err := database.GetDB().First(&unit, input.UnitID).Error; err != nil || unit.PropertyID != property.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unit not found on this property",
		})
	}

	var tenant model.Tenant
	if err := database.GetDB().First(&tenant, input.TenantID).Error; err != nil || tenant.UserID != claims.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tenant not found",
		})
	}

	lease := model.Lease{
		PropertyID: property.ID,
		UnitID:     unit.ID,
		TenantID:   tenant.ID,
		Status:     model.LeaseStatusDraft,
		RentAmount: input.RentAmount,
		Currency:   input.Currency,
		Deposit:    input.Deposit,
		BillingDay: input.BillingDay,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if lease.Currency == "" {
		lease.Currency = model.CurrencyEUR
	}

	if err := database.GetDB().Create(&lease).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lease",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(lease)
}

// ListMyLeases lists leases across the caller's portfolio, filterable by
// status, property or tenant.
func ListMyLeases(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().
		Joins("JOIN properties ON leases.property_id = properties.id").
		Where("properties.user_id = ?", claims.UserID).
		Preload("Property").
		Preload("Unit").
		Preload("Tenant")

	if status := c.Query("status"); status != "" {
		query = query.Where("leases.status = ?", status)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("leases.property_id = ?", propertyID)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("leases.tenant_id = ?", tenantID)
	}

	var leases []model.Lease
	if err := query.Order("leases.created_at desc").Find(&leases).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch leases",
		})
	}

	return c.JSON(leases)
}

// GetLease returns one lease with relations and documents.
func GetLease(c *fiber.Ctx) error {
	id := c.Params("id")

	var lease model.Lease
	if err := database.GetDB().
		Preload("Property").
		Preload("Unit").
		Preload("Tenant").
		Preload("Documents").
		First(&lease, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lease not found",
		})
	}

	return c.JSON(lease)
}

// ActivateLease moves a draft lease to active. The unit must not already
// have an active lease overlapping the period.
func ActivateLease(c *fiber.Ctx) error {
	id := c.Params("id")

	var lease model.Lease
	if err := database.GetDB().First(&lease, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lease not found",
		})
	}

	if lease.Status != model.LeaseStatusDraft {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only draft leases can be activated",
		})
	}

	var existing []model.Lease
	if err := database.GetDB().
		Where("unit_id = ? AND status = ? AND id != ?", lease.UnitID, model.LeaseStatusActive, lease.ID).
		Find(&existing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not check unit availability",
		})
	}
	for i := range existing {
		if existing[i].Overlaps(lease.StartDate, lease.EndDate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Unit already has an active lease for this period",
			})
		}
	}

	if err := database.GetDB().Model(&lease).Update("status", model.LeaseStatusActive).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not activate lease",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lease activated",
		"lease":   lease,
	})
}

// TerminateLease ends an active lease early.
func TerminateLease(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(TerminateLeaseInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	var lease model.Lease
	if err := database.GetDB().First(&lease, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lease not found",
		})
	}

	if lease.Status != model.LeaseStatusActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only active leases can be terminated",
		})
	}

	updates := map[string]interface{}{
		"status":             model.LeaseStatusTerminated,
		"terminated_at":      input.Date,
		"termination_reason": input.Reason,
	}
	if err := database.GetDB().Model(&lease).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not terminate lease",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lease terminated",
	})
}

// UploadLeaseDocument attaches a contract scan or similar file to the lease.
func UploadLeaseDocument(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")

	var lease model.Lease
	if err := database.GetDB().First(&lease, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lease not found",
		})
	}

	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing document file",
		})
	}

	url, err := storage.UploadLeaseDocument(file, claims.CompanyName, lease.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc := model.LeaseDocument{
		LeaseID:  lease.ID,
		Name:     file.Filename,
		URL:      url,
		MimeType: file.Header.Get("Content-Type"),
		Size:     file.Size,
	}
	if err := database.GetDB().Create(&doc).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}
