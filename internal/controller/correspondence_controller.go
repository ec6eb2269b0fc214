package controller

import (
	"bytes"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"arrenda_backend/pkg/utils/jwt"
)

type TemplateInput struct {
	Name      string         `json:"name" validate:"required"`
	Subject   string         `json:"subject" validate:"required"`
	Body      string         `json:"body" validate:"required"`
	Variables datatypes.JSON `json:"variables"`
}

type SendCorrespondenceInput struct {
	LeaseID uint `json:"lease_id" validate:"required"`
}

// CreateTemplate saves a reusable notice template. The body must parse as a
// valid html/template.
func CreateTemplate(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(TemplateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if _, err := template.New("body").Parse(input.Body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Template body is not valid: " + err.Error(),
		})
	}

	tmpl := model.CorrespondenceTemplate{
		UserID:    claims.UserID,
		Name:      input.Name,
		Slug:      slug.Make(input.Name),
		Subject:   input.Subject,
		Body:      input.Body,
		Variables: input.Variables,
	}

	if err := database.GetDB().Create(&tmpl).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create template",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

func ListMyTemplates(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var templates []model.CorrespondenceTemplate
	if err := database.GetDB().Where("user_id = ?", claims.UserID).
		Order("name asc").
		Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch templates",
		})
	}

	return c.JSON(templates)
}

func UpdateTemplate(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")
	input := new(TemplateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if _, err := template.New("body").Parse(input.Body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Template body is not valid: " + err.Error(),
		})
	}

	var tmpl model.CorrespondenceTemplate
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&tmpl, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	tmpl.Name = input.Name
	tmpl.Subject = input.Subject
	tmpl.Body = input.Body
	tmpl.Variables = input.Variables

	if err := database.GetDB().Save(&tmpl).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update template",
		})
	}

	return c.JSON(tmpl)
}

func DeleteTemplate(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")

	var tmpl model.CorrespondenceTemplate
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&tmpl, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	if err := database.GetDB().Delete(&tmpl).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete template",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// correspondenceContext is the data available to template bodies.
type correspondenceContext struct {
	TenantName   string
	PropertyName string
	UnitLabel    string
	RentAmount   string
	Currency     string
	StartDate    time.Time
	EndDate      *time.Time
	CompanyName  string
	Today        time.Time
}

// SendCorrespondence renders the :id template against a lease and emails the
// tenant, logging the send either way.
func SendCorrespondence(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	id := c.Params("id")
	input := new(SendCorrespondenceInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var tmpl model.CorrespondenceTemplate
	if err := database.GetDB().Where("user_id = ?", claims.UserID).First(&tmpl, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Template not found",
		})
	}

	var lease model.Lease
	if err := database.GetDB().
		Preload("Property").
		Preload("Unit").
		Preload("Tenant").
		First(&lease, input.LeaseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lease not found",
		})
	}
	if lease.Property.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to use this lease",
		})
	}

	parsed, err := template.New("body").Parse(tmpl.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored template is not valid",
		})
	}

	ctx := correspondenceContext{
		TenantName:   lease.Tenant.GetFullName(),
		PropertyName: lease.Property.Name,
		UnitLabel:    lease.Unit.Label,
		RentAmount:   lease.RentAmount.StringFixed(2),
		Currency:     string(lease.Currency),
		StartDate:    lease.StartDate,
		EndDate:      lease.EndDate,
		CompanyName:  claims.CompanyName,
		Today:        time.Now(),
	}

	var body bytes.Buffer
	if err := parsed.Execute(&body, ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not render template",
		})
	}

	logEntry := model.CorrespondenceLog{
		UserID:     claims.UserID,
		TemplateID: tmpl.ID,
		TenantID:   &lease.TenantID,
		LeaseID:    &lease.ID,
		Recipient:  lease.Tenant.Email,
		Subject:    tmpl.Subject,
		SentAt:     time.Now(),
	}

	if email.GlobalEmailService != nil {
		if err := email.GlobalEmailService.SendRaw(lease.Tenant.Email, tmpl.Subject, body.String()); err != nil {
			logEntry.Error = err.Error()
		}
	} else {
		logEntry.Error = "email service not configured"
	}

	if err := database.GetDB().Create(&logEntry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not log correspondence",
		})
	}

	if logEntry.Error != "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not deliver email",
			"log":   logEntry,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Correspondence sent",
		"log":     logEntry,
	})
}

// ListCorrespondenceLog lists past sends, filterable by tenant or lease.
func ListCorrespondenceLog(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().Where("user_id = ?", claims.UserID)
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if leaseID := c.Query("lease_id"); leaseID != "" {
		query = query.Where("lease_id = ?", leaseID)
	}

	var logs []model.CorrespondenceLog
	if err := query.Order("sent_at desc").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch correspondence log",
		})
	}

	return c.JSON(logs)
}
