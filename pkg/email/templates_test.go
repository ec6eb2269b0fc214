package email

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesRender(t *testing.T) {
	templates, err := loadTemplates()
	require.NoError(t, err)

	cases := []struct {
		name     string
		data     interface{}
		contains string
	}{
		{"welcome.html", WelcomeEmailData{Name: "Acme Rentals"}, "Acme Rentals"},
		{"password_reset.html", PasswordResetData{ResetLink: "https://arrenda.app/reset?token=abc"}, "https://arrenda.app/reset?token=abc"},
		{"invoice_issued.html", InvoiceIssuedData{
			TenantName:    "Maria Santos",
			InvoiceNumber: "INV-2026-000001",
			Amount:        "850.00",
			Currency:      "EUR",
			DueDate:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			PayLink:       "https://arrenda.app/pay/1",
		}, "INV-2026-000001"},
		{"payment_receipt.html", PaymentReceiptData{
			TenantName:    "Maria Santos",
			InvoiceNumber: "INV-2026-000001",
			Amount:        "850.00",
			Currency:      "EUR",
			Method:        "multibanco",
			PaidAt:        time.Now(),
		}, "850.00"},
		{"rent_reminder.html", RentReminderData{
			TenantName:    "Maria Santos",
			InvoiceNumber: "INV-2026-000002",
			Amount:        "850.00",
			Currency:      "EUR",
			DueDate:       time.Now(),
			DaysOverdue:   5,
		}, "INV-2026-000002"},
		{"lease_expiry.html", LeaseExpiryData{
			CompanyName:  "Acme Rentals",
			PropertyName: "Edifício Aurora",
			UnitLabel:    "2B",
			TenantName:   "Maria Santos",
			EndDate:      time.Now().AddDate(0, 0, 30),
			DaysLeft:     30,
		}, "2B"},
		{"maintenance_status.html", MaintenanceStatusData{
			Name:        "Maria Santos",
			TicketTitle: "Leaking tap",
			OldStatus:   "open",
			NewStatus:   "in_progress",
		}, "Leaking tap"},
		{"distribution_ready.html", DistributionReadyData{
			OwnerName:    "João Ferreira",
			PropertyName: "Edifício Aurora",
			Period:       "01 Aug 2026 – 31 Aug 2026",
			NetShare:     "1234.56",
			Currency:     "EUR",
		}, "1234.56"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		err := templates.ExecuteTemplate(&buf, tc.name, tc.data)
		require.NoError(t, err, tc.name)
		assert.True(t, strings.Contains(buf.String(), tc.contains), "%s should contain %q", tc.name, tc.contains)
	}
}
