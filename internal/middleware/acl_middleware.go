package middleware

import (
	"github.com/gofiber/fiber/v2"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/utils/jwt"
)

// CheckPropertyOwnership ensures the :id property belongs to the caller.
func CheckPropertyOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		propertyID := c.Params("id")

		var property model.Property
		if err := database.DB.First(&property, propertyID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}

		if property.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this property",
			})
		}

		return c.Next()
	}
}

// CheckLeaseOwnership ensures the :id lease belongs to one of the caller's
// properties.
func CheckLeaseOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		leaseID := c.Params("id")

		var lease model.Lease
		if err := database.DB.Preload("Property").First(&lease, leaseID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lease not found",
			})
		}

		if lease.Property.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this lease",
			})
		}

		return c.Next()
	}
}

// CheckInvoiceOwnership ensures the :id invoice belongs to the caller.
func CheckInvoiceOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		invoiceID := c.Params("id")

		var invoice model.Invoice
		if err := database.DB.First(&invoice, invoiceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invoice not found",
			})
		}

		if invoice.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this invoice",
			})
		}

		return c.Next()
	}
}

// CheckTicketOwnership ensures the :id maintenance ticket belongs to the
// caller.
func CheckTicketOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		ticketID := c.Params("id")

		var ticket model.MaintenanceTicket
		if err := database.DB.First(&ticket, ticketID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Ticket not found",
			})
		}

		if ticket.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this ticket",
			})
		}

		return c.Next()
	}
}
