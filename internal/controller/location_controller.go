package controller

import (
	"github.com/gofiber/fiber/v2"

	"arrenda_backend/pkg/utils/location"
)

func GetLocationData(c *fiber.Ctx) error {
	return c.JSON(location.GetCountries())
}

func GetRegionsByCountry(c *fiber.Ctx) error {
	countryCode := c.Params("countryCode")

	regions := location.GetRegionsByCountry(countryCode)
	if regions == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No regions for country",
		})
	}

	return c.JSON(regions)
}
