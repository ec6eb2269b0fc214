package controller

import (
	"github.com/gofiber/fiber/v2"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
	"arrenda_backend/pkg/utils/storage"
)

type ProfileUpdateInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	PhoneNumber string `json:"phone_number"`
	TaxNumber   string `json:"tax_number"`
}

func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ProfileUpdateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{
		"first_name":   input.FirstName,
		"last_name":    input.LastName,
		"title":        input.Title,
		"phone_number": input.PhoneNumber,
		"tax_number":   input.TaxNumber,
	}

	if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.GetPublicProfile(),
	})
}

func GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.GetPublicProfile())
}

func UploadAvatar(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing avatar file",
		})
	}

	url, err := storage.UploadAvatar(file, user.Username)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := database.GetDB().Model(&user).Update("avatar", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save avatar",
		})
	}

	return c.JSON(fiber.Map{
		"avatar": url,
	})
}

// GetLoginHistory lists recent sign-ins for the account.
func GetLoginHistory(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var history []model.LoginHistory
	if err := database.GetDB().Where("user_id = ?", claims.UserID).
		Order("created_at desc").
		Limit(50).
		Find(&history).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch login history",
		})
	}

	return c.JSON(history)
}
