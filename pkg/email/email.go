package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name string
}

type PasswordResetData struct {
	ResetLink string
}

type InvoiceIssuedData struct {
	TenantName    string
	InvoiceNumber string
	Amount        string
	Currency      string
	DueDate       time.Time
	PayLink       string
}

type PaymentReceiptData struct {
	TenantName    string
	InvoiceNumber string
	Amount        string
	Currency      string
	Method        string
	PaidAt        time.Time
}

type RentReminderData struct {
	TenantName    string
	InvoiceNumber string
	Amount        string
	Currency      string
	DueDate       time.Time
	DaysOverdue   int
}

type LeaseExpiryData struct {
	CompanyName  string
	PropertyName string
	UnitLabel    string
	TenantName   string
	EndDate      time.Time
	DaysLeft     int
}

type MaintenanceStatusData struct {
	Name        string
	TicketTitle string
	OldStatus   string
	NewStatus   string
}

type DistributionReadyData struct {
	OwnerName    string
	PropertyName string
	Period       string
	NetShare     string
	Currency     string
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}
	return s.SendRaw(to, subject, body.String())
}

// SendRaw delivers already-rendered HTML, used by the correspondence module.
func (s *EmailService) SendRaw(to, subject, html string) error {
	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    html,
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: status %d, body %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// Email sending methods
func (s *EmailService) SendWelcomeEmail(email, name string) error {
	return s.sendTemplateEmail(email, "Welcome to Arrenda!", "welcome.html", WelcomeEmailData{Name: name})
}

func (s *EmailService) SendPasswordResetEmail(email, resetLink string) error {
	return s.sendTemplateEmail(email, "Reset your Arrenda password", "password_reset.html", PasswordResetData{ResetLink: resetLink})
}

func (s *EmailService) SendInvoiceIssuedEmail(to string, data InvoiceIssuedData) error {
	subject := fmt.Sprintf("Invoice %s from your property manager", data.InvoiceNumber)
	return s.sendTemplateEmail(to, subject, "invoice_issued.html", data)
}

func (s *EmailService) SendPaymentReceiptEmail(to string, data PaymentReceiptData) error {
	subject := fmt.Sprintf("Payment received for invoice %s", data.InvoiceNumber)
	return s.sendTemplateEmail(to, subject, "payment_receipt.html", data)
}

func (s *EmailService) SendRentReminderEmail(to string, data RentReminderData) error {
	subject := fmt.Sprintf("Reminder: invoice %s is overdue", data.InvoiceNumber)
	return s.sendTemplateEmail(to, subject, "rent_reminder.html", data)
}

func (s *EmailService) SendLeaseExpiryWarning(to string, data LeaseExpiryData) error {
	subject := fmt.Sprintf("Lease ending in %d days: %s %s", data.DaysLeft, data.PropertyName, data.UnitLabel)
	return s.sendTemplateEmail(to, subject, "lease_expiry.html", data)
}

func (s *EmailService) SendMaintenanceStatusEmail(to string, data MaintenanceStatusData) error {
	subject := fmt.Sprintf("Update on your maintenance request: %s", data.TicketTitle)
	return s.sendTemplateEmail(to, subject, "maintenance_status.html", data)
}

func (s *EmailService) SendDistributionReadyEmail(to string, data DistributionReadyData) error {
	subject := fmt.Sprintf("Income statement ready for %s (%s)", data.PropertyName, data.Period)
	return s.sendTemplateEmail(to, subject, "distribution_ready.html", data)
}
