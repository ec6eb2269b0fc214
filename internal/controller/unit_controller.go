package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
)

type UnitInput struct {
	Label      string          `json:"label" validate:"required"`
	Floor      int             `json:"floor"`
	Bedrooms   int             `json:"bedrooms"`
	Bathrooms  int             `json:"bathrooms"`
	AreaSqM    int             `json:"area_sq_m"`
	MarketRent decimal.Decimal `json:"market_rent"`
	Currency   model.Currency  `json:"currency"`
}

// CreateUnit adds a unit under the :id property.
func CreateUnit(c *fiber.Ctx) error {
	propertyID := c.Params("id")
	input := new(UnitInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	unit := model.Unit{
		PropertyID: property.ID,
		Label:      input.Label,
		Floor:      input.Floor,
		Bedrooms:   input.Bedrooms,
		Bathrooms:  input.Bathrooms,
		AreaSqM:    input.AreaSqM,
		MarketRent: input.MarketRent,
		Currency:   input.Currency,
	}
	if unit.Currency == "" {
		unit.Currency = model.CurrencyEUR
	}

	if err := database.GetDB().Create(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create unit",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(unit)
}

// ListUnits lists the units of the :id property.
func ListUnits(c *fiber.Ctx) error {
	propertyID := c.Params("id")

	var units []model.Unit
	if err := database.GetDB().Where("property_id = ?", propertyID).
		Order("label asc").
		Find(&units).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch units",
		})
	}

	return c.JSON(units)
}

// UpdateUnit edits a unit; the unit must belong to the caller.
func UpdateUnit(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	unitID := c.Params("unit_id")
	input := new(UnitInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var unit model.Unit
	if err := database.GetDB().Preload("Property").First(&unit, unitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unit not found",
		})
	}

	if unit.Property.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this unit",
		})
	}

	unit.Label = input.Label
	unit.Floor = input.Floor
	unit.Bedrooms = input.Bedrooms
	unit.Bathrooms = input.Bathrooms
	unit.AreaSqM = input.AreaSqM
	unit.MarketRent = input.MarketRent
	if input.Currency != "" {
		unit.Currency = input.Currency
	}

	if err := database.GetDB().Save(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update unit",
		})
	}

	return c.JSON(unit)
}

// DeleteUnit removes a unit without lease history.
func DeleteUnit(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	unitID := c.Params("unit_id")

	var unit model.Unit
	if err := database.GetDB().Preload("Property").First(&unit, unitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unit not found",
		})
	}

	if unit.Property.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this unit",
		})
	}

	var leaseCount int64
	database.GetDB().Model(&model.Lease{}).Where("unit_id = ?", unit.ID).Count(&leaseCount)
	if leaseCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Unit has lease history and cannot be deleted",
		})
	}

	if err := database.GetDB().Delete(&unit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete unit",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
