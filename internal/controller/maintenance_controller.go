package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"arrenda_backend/pkg/utils/jwt"
)

type TicketInput struct {
	PropertyID  uint                 `json:"property_id" validate:"required"`
	UnitID      *uint                `json:"unit_id"`
	TenantID    *uint                `json:"tenant_id"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Priority    model.TicketPriority `json:"priority"`
}

type TicketStatusInput struct {
	Status model.TicketStatus `json:"status" validate:"required"`
	Cost   *decimal.Decimal   `json:"cost"`
}

type TicketCommentInput struct {
	Author string `json:"author"`
	Body   string `json:"body" validate:"required"`
}

// CreateTicket opens a maintenance ticket on one of the caller's properties.
func CreateTicket(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(TicketInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, input.PropertyID).Error; err != nil || property.UserID != claims.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if input.UnitID != nil {
		var unit model.Unit
		if err := database.GetDB().First(&unit, *input.UnitID).Error; err != nil || unit.PropertyID != property.ID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unit not found on this property",
			})
		}
	}

	ticket := model.MaintenanceTicket{
		UserID:      claims.UserID,
		PropertyID:  property.ID,
		UnitID:      input.UnitID,
		TenantID:    input.TenantID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      model.TicketStatusOpen,
		Priority:    input.Priority,
	}
	if ticket.Priority == "" {
		ticket.Priority = model.TicketPriorityMedium
	}

	if err := database.GetDB().Create(&ticket).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create ticket",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// ListMyTickets lists tickets, filterable by status, priority or property.
func ListMyTickets(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().Where("user_id = ?", claims.UserID).
		Preload("Property").
		Preload("Unit").
		Preload("Tenant")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if propertyID := c.Query("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var tickets []model.MaintenanceTicket
	if err := query.Order("created_at desc").Find(&tickets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch tickets",
		})
	}

	return c.JSON(tickets)
}

// GetTicket returns one ticket with comments.
func GetTicket(c *fiber.Ctx) error {
	id := c.Params("id")

	var ticket model.MaintenanceTicket
	if err := database.GetDB().
		Preload("Property").
		Preload("Unit").
		Preload("Tenant").
		Preload("Comments").
		First(&ticket, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Ticket not found",
		})
	}

	return c.JSON(ticket)
}

// UpdateTicketStatus moves a ticket through its lifecycle and optionally
// records the repair cost.
func UpdateTicketStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(TicketStatusInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var ticket model.MaintenanceTicket
	if err := database.GetDB().Preload("Tenant").First(&ticket, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Ticket not found",
		})
	}

	if !ticket.CanTransitionTo(input.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":          "Invalid status transition",
			"current_status": ticket.Status,
		})
	}

	oldStatus := ticket.Status
	now := time.Now()
	updates := map[string]interface{}{
		"status": input.Status,
	}
	if input.Cost != nil {
		updates["cost"] = *input.Cost
	}
	switch input.Status {
	case model.TicketStatusResolved:
		updates["resolved_at"] = now
	case model.TicketStatusClosed:
		updates["closed_at"] = now
	}

	if err := database.GetDB().Model(&ticket).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update ticket",
		})
	}

	if email.GlobalEmailService != nil && ticket.Tenant != nil && ticket.Tenant.Email != "" {
		err := email.GlobalEmailService.SendMaintenanceStatusEmail(ticket.Tenant.Email, email.MaintenanceStatusData{
			Name:        ticket.Tenant.GetFullName(),
			TicketTitle: ticket.Title,
			OldStatus:   string(oldStatus),
			NewStatus:   string(input.Status),
		})
		if err != nil {
			log.Printf("Could not send maintenance status email: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Ticket updated",
	})
}

// AddTicketComment appends a comment to the ticket thread.
func AddTicketComment(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")
	input := new(TicketCommentInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var ticket model.MaintenanceTicket
	if err := database.GetDB().First(&ticket, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Ticket not found",
		})
	}

	author := input.Author
	if author == "" {
		author = claims.CompanyName
	}

	comment := model.TicketComment{
		TicketID: ticket.ID,
		Author:   author,
		Body:     input.Body,
	}
	if err := database.GetDB().Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
