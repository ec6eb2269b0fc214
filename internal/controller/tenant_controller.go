package controller

import (
	"github.com/gofiber/fiber/v2"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
)

type TenantInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	TaxNumber   string `json:"tax_number"`
	CountryCode string `json:"country_code"`
	Notes       string `json:"notes"`
}

func CreateTenant(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(TenantInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	tenant := model.Tenant{
		UserID:      claims.UserID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		TaxNumber:   input.TaxNumber,
		CountryCode: input.CountryCode,
		Notes:       input.Notes,
	}

	if err := database.GetDB().Create(&tenant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create tenant",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(tenant)
}

func ListMyTenants(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().Where("user_id = ?", claims.UserID)

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var tenants []model.Tenant
	if err := query.Order("last_name asc, first_name asc").Find(&tenants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch tenants",
		})
	}

	return c.JSON(tenants)
}

func GetTenant(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")

	var tenant model.Tenant
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&tenant, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tenant not found",
		})
	}

	var leases []model.Lease
	database.GetDB().Where("tenant_id = ?", tenant.ID).
		Preload("Property").
		Preload("Unit").
		Order("start_date desc").
		Find(&leases)

	return c.JSON(fiber.Map{
		"tenant": tenant,
		"leases": leases,
	})
}

func UpdateTenant(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")
	input := new(TenantInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var tenant model.Tenant
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&tenant, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tenant not found",
		})
	}

	tenant.FirstName = input.FirstName
	tenant.LastName = input.LastName
	tenant.Email = input.Email
	tenant.Phone = input.Phone
	tenant.TaxNumber = input.TaxNumber
	tenant.CountryCode = input.CountryCode
	tenant.Notes = input.Notes

	if err := database.GetDB().Save(&tenant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update tenant",
		})
	}

	return c.JSON(tenant)
}

// DeleteTenant removes a tenant without lease history.
func DeleteTenant(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")

	var tenant model.Tenant
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&tenant, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Tenant not found",
		})
	}

	var leaseCount int64
	database.GetDB().Model(&model.Lease{}).Where("tenant_id = ?", tenant.ID).Count(&leaseCount)
	if leaseCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Tenant has lease history and cannot be deleted",
		})
	}

	if err := database.GetDB().Delete(&tenant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete tenant",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
