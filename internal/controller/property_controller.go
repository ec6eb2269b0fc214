package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
	"arrenda_backend/pkg/utils/location"
	"arrenda_backend/pkg/utils/storage"
)

const MaxPropertyPhotos = 16

type PropertyInput struct {
	Name        string             `json:"name" validate:"required"`
	Type        model.PropertyType `json:"type" validate:"required"`
	Description string             `json:"description"`

	// Location fields
	CountryCode string `json:"country_code" validate:"required"`
	CountryName string `json:"country_name" validate:"required"`
	StateCode   string `json:"state_code"`
	StateName   string `json:"state_name"`
	City        string `json:"city" validate:"required"`
	PostalCode  string `json:"postal_code"`
	FullAddress string `json:"full_address" validate:"required"`

	YearBuilt int            `json:"year_built"`
	Amenities datatypes.JSON `json:"amenities"`
}

// CreateProperty registers a new managed property.
func CreateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !location.IsKnownCountry(input.CountryCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown country code",
		})
	}

	property := model.Property{
		UserID:      claims.UserID,
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		CountryCode: input.CountryCode,
		CountryName: input.CountryName,
		StateCode:   input.StateCode,
		StateName:   input.StateName,
		City:        input.City,
		PostalCode:  input.PostalCode,
		FullAddress: input.FullAddress,
		YearBuilt:   input.YearBuilt,
		Amenities:   input.Amenities,
	}

	if err := database.GetDB().Create(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty edits property details.
func UpdateProperty(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	property.Name = input.Name
	property.Type = input.Type
	property.Description = input.Description
	property.CountryCode = input.CountryCode
	property.CountryName = input.CountryName
	property.StateCode = input.StateCode
	property.StateName = input.StateName
	property.City = input.City
	property.PostalCode = input.PostalCode
	property.FullAddress = input.FullAddress
	property.YearBuilt = input.YearBuilt
	property.Amenities = input.Amenities

	if err := database.GetDB().Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	return c.JSON(property)
}

// ListMyProperties lists the caller's properties with units and photos.
func ListMyProperties(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var properties []model.Property
	if err := database.GetDB().Where("user_id = ?", claims.UserID).
		Preload("Units").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_photos.order ASC")
		}).
		Order("created_at desc").
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// GetProperty returns one property with its relations.
func GetProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := database.GetDB().
		Preload("Units").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_photos.order ASC")
		}).
		Preload("Ownerships.Owner").
		First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	return c.JSON(property)
}

// DeleteProperty removes a property; active leases block deletion.
func DeleteProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var activeLeases int64
	database.GetDB().Model(&model.Lease{}).
		Where("property_id = ? AND status = ?", property.ID, model.LeaseStatusActive).
		Count(&activeLeases)
	if activeLeases > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Property has active leases",
		})
	}

	if err := database.GetDB().Delete(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPropertyPhoto stores an image and attaches it to the property.
func UploadPropertyPhoto(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var photoCount int64
	database.GetDB().Model(&model.PropertyPhoto{}).Where("property_id = ?", property.ID).Count(&photoCount)
	if int(photoCount) >= MaxPropertyPhotos {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Photo limit reached for this property",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing photo file",
		})
	}

	url, err := storage.UploadPropertyPhoto(file, claims.CompanyName, property.Slug)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	photo := model.PropertyPhoto{
		PropertyID: property.ID,
		URL:        url,
		IsCover:    photoCount == 0,
		Order:      int(photoCount),
	}
	if err := database.GetDB().Create(&photo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save photo",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// DeletePropertyPhoto removes a photo record and its stored object.
func DeletePropertyPhoto(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	photoID := c.Params("photo_id")

	var photo model.PropertyPhoto
	if err := database.GetDB().Preload("Property").First(&photo, photoID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Photo not found",
		})
	}

	if photo.Property.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this photo",
		})
	}

	if err := storage.DeleteObject(photo.URL); err != nil {
		log.Printf("Could not delete stored photo %s: %v", photo.URL, err)
	}

	if err := database.GetDB().Delete(&photo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete photo",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
