package seed

import (
	"arrenda_backend/internal/model"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedStarterTemplates gives a new account a small set of ready-to-edit
// correspondence templates. FirstOrCreate keeps reruns harmless.
func SeedStarterTemplates(db *gorm.DB, userID uint) {
	variables := datatypes.JSON([]byte(`["TenantName","PropertyName","UnitLabel","RentAmount","Currency","StartDate","EndDate","CompanyName","Today"]`))

	templates := []model.CorrespondenceTemplate{
		{
			UserID:  userID,
			Name:    "Rent increase notice",
			Slug:    "rent-increase-notice",
			Subject: "Notice of rent adjustment for {{.PropertyName}} {{.UnitLabel}}",
			Body: `<p>Dear {{.TenantName}},</p>
<p>We are writing to inform you that the monthly rent for {{.PropertyName}}, unit {{.UnitLabel}}, will be adjusted in accordance with your lease agreement.</p>
<p>Your current rent is {{.RentAmount}} {{.Currency}}. The new amount will be communicated separately together with the effective date.</p>
<p>Kind regards,<br>{{.CompanyName}}</p>`,
			Variables: variables,
		},
		{
			UserID:  userID,
			Name:    "Lease renewal offer",
			Slug:    "lease-renewal-offer",
			Subject: "Your lease at {{.PropertyName}} is coming to an end",
			Body: `<p>Dear {{.TenantName}},</p>
<p>Your lease for {{.PropertyName}}, unit {{.UnitLabel}}, ends on {{.EndDate}}. We would be happy to offer you a renewal under the current conditions.</p>
<p>Please let us know before {{.EndDate}} whether you wish to continue.</p>
<p>Kind regards,<br>{{.CompanyName}}</p>`,
			Variables: variables,
		},
		{
			UserID:  userID,
			Name:    "Inspection appointment",
			Slug:    "inspection-appointment",
			Subject: "Scheduled inspection at {{.PropertyName}} {{.UnitLabel}}",
			Body: `<p>Dear {{.TenantName}},</p>
<p>We would like to schedule a routine inspection of {{.PropertyName}}, unit {{.UnitLabel}}. We will contact you shortly to agree on a convenient date.</p>
<p>Kind regards,<br>{{.CompanyName}}</p>`,
			Variables: variables,
		},
	}

	for _, tmpl := range templates {
		result := db.FirstOrCreate(&tmpl, model.CorrespondenceTemplate{UserID: userID, Slug: tmpl.Slug})
		if result.Error != nil {
			log.Printf("Error seeding template %s: %v", tmpl.Slug, result.Error)
		}
	}
}
