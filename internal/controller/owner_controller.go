package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/tax"
	"arrenda_backend/pkg/utils/jwt"
)

type OwnerInput struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	Email            string `json:"email"`
	TaxNumber        string `json:"tax_number"`
	ResidencyCountry string `json:"residency_country" validate:"required"`
}

type OwnershipShareInput struct {
	OwnerID      uint            `json:"owner_id" validate:"required"`
	SharePercent decimal.Decimal `json:"share_percent" validate:"required"`
}

type SetOwnershipInput struct {
	Shares []OwnershipShareInput `json:"shares" validate:"required,min=1"`
}

func CreateOwner(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(OwnerInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if _, err := tax.BracketsFor(input.ResidencyCountry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "Unsupported residency country",
			"supported": tax.SupportedCountries(),
		})
	}

	owner := model.Owner{
		UserID:           claims.UserID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		TaxNumber:        input.TaxNumber,
		ResidencyCountry: input.ResidencyCountry,
	}

	if err := database.GetDB().Create(&owner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create owner",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(owner)
}

func ListMyOwners(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var owners []model.Owner
	if err := database.GetDB().Where("user_id = ?", claims.UserID).
		Order("last_name asc, first_name asc").
		Find(&owners).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch owners",
		})
	}

	return c.JSON(owners)
}

func UpdateOwner(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")
	input := new(OwnerInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if _, err := tax.BracketsFor(input.ResidencyCountry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "Unsupported residency country",
			"supported": tax.SupportedCountries(),
		})
	}

	var owner model.Owner
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&owner, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Owner not found",
		})
	}

	owner.FirstName = input.FirstName
	owner.LastName = input.LastName
	owner.Email = input.Email
	owner.TaxNumber = input.TaxNumber
	owner.ResidencyCountry = input.ResidencyCountry

	if err := database.GetDB().Save(&owner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update owner",
		})
	}

	return c.JSON(owner)
}

// SetPropertyOwnership replaces the share table of the :id property. The new
// shares must pass the 100% check before anything is written.
func SetPropertyOwnership(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	propertyID := c.Params("id")
	input := new(SetOwnershipInput)

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

	shares := make([]tax.OwnerShare, 0, len(input.Shares))
	for _, s := range input.Shares {
		var owner model.Owner
		if err := database.GetDB().First(&owner, s.OwnerID).Error; err != nil || owner.UserID != claims.UserID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Owner not found",
			})
		}
		shares = append(shares, tax.OwnerShare{
			OwnerID:      s.OwnerID,
			SharePercent: s.SharePercent,
			Country:      owner.ResidencyCountry,
		})
	}

	if err := tax.ValidateShares(shares); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", property.ID).
			Delete(&model.PropertyOwnership{}).Error; err != nil {
			return err
		}
		for _, s := range input.Shares {
			ownership := model.PropertyOwnership{
				PropertyID:   property.ID,
				OwnerID:      s.OwnerID,
				SharePercent: s.SharePercent,
			}
			if err := tx.Create(&ownership).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save ownership shares",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Ownership shares saved",
	})
}

// GetPropertyOwnership lists the share table of the :id property.
func GetPropertyOwnership(c *fiber.Ctx) error {
	propertyID := c.Params("id")

	var ownerships []model.PropertyOwnership
	if err := database.GetDB().Where("property_id = ?", propertyID).
		Preload("Owner").
		Find(&ownerships).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch ownership shares",
		})
	}

	return c.JSON(ownerships)
}
