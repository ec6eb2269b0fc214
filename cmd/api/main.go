package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"arrenda_backend/internal/controller"
	"arrenda_backend/internal/middleware"
	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/config"
	"arrenda_backend/pkg/cron"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
	"arrenda_backend/pkg/utils/location"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/request-reset", controller.RequestPasswordReset)
	auth.Post("/reset-password", controller.ResetPassword)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Property Routes
	properties := protected.Group("/properties")
	properties.Get("/my", controller.ListMyProperties)
	properties.Post("/", controller.CreateProperty)
	properties.Get("/:id", middleware.CheckPropertyOwnership(), controller.GetProperty)
	properties.Put("/:id", middleware.CheckPropertyOwnership(), controller.UpdateProperty)
	properties.Delete("/:id", middleware.CheckPropertyOwnership(), controller.DeleteProperty)
	properties.Post("/:id/photos", middleware.CheckPropertyOwnership(), controller.UploadPropertyPhoto)
	properties.Delete("/photos/:photo_id", controller.DeletePropertyPhoto)

	// Units nested under a property
	properties.Post("/:id/units", middleware.CheckPropertyOwnership(), controller.CreateUnit)
	properties.Get("/:id/units", middleware.CheckPropertyOwnership(), controller.ListUnits)
	units := protected.Group("/units")
	units.Put("/:unit_id", controller.UpdateUnit)
	units.Delete("/:unit_id", controller.DeleteUnit)

	// Ownership shares and income distributions per property
	properties.Put("/:id/ownership", middleware.CheckPropertyOwnership(), controller.SetPropertyOwnership)
	properties.Get("/:id/ownership", middleware.CheckPropertyOwnership(), controller.GetPropertyOwnership)
	properties.Post("/:id/distributions", middleware.CheckPropertyOwnership(), controller.ComputeDistribution)
	properties.Get("/:id/distributions", middleware.CheckPropertyOwnership(), controller.ListDistributions)

	distributions := protected.Group("/distributions")
	distributions.Get("/:id", controller.GetDistribution)

	// Owner Routes
	owners := protected.Group("/owners")
	owners.Post("/", controller.CreateOwner)
	owners.Get("/", controller.ListMyOwners)
	owners.Put("/:id", controller.UpdateOwner)

	// Tenant Routes
	tenants := protected.Group("/tenants")
	tenants.Post("/", controller.CreateTenant)
	tenants.Get("/", controller.ListMyTenants)
	tenants.Get("/:id", controller.GetTenant)
	tenants.Put("/:id", controller.UpdateTenant)
	tenants.Delete("/:id", controller.DeleteTenant)

	// Lease Routes
	leases := protected.Group("/leases")
	leases.Post("/", controller.CreateLease)
	leases.Get("/", controller.ListMyLeases)
	leases.Get("/:id", middleware.CheckLeaseOwnership(), controller.GetLease)
	leases.Post("/:id/activate", middleware.CheckLeaseOwnership(), controller.ActivateLease)
	leases.Post("/:id/terminate", middleware.CheckLeaseOwnership(), controller.TerminateLease)
	leases.Post("/:id/documents", middleware.CheckLeaseOwnership(), controller.UploadLeaseDocument)

	// Invoice Routes
	invoices := protected.Group("/invoices")
	invoices.Post("/", controller.CreateInvoice)
	invoices.Get("/", controller.ListMyInvoices)
	invoices.Get("/:id", middleware.CheckInvoiceOwnership(), controller.GetInvoice)
	invoices.Post("/:id/issue", middleware.CheckInvoiceOwnership(), controller.IssueInvoice)
	invoices.Post("/:id/void", middleware.CheckInvoiceOwnership(), controller.VoidInvoice)
	invoices.Post("/:id/mark-paid", middleware.CheckInvoiceOwnership(), controller.MarkInvoicePaid)

	// Public payment endpoint, tenants pay from the emailed link
	api.Post("/invoices/:id/pay", controller.CreatePaymentIntent)

	// Maintenance Routes
	tickets := protected.Group("/tickets")
	tickets.Post("/", controller.CreateTicket)
	tickets.Get("/", controller.ListMyTickets)
	tickets.Get("/:id", middleware.CheckTicketOwnership(), controller.GetTicket)
	tickets.Put("/:id/status", middleware.CheckTicketOwnership(), controller.UpdateTicketStatus)
	tickets.Post("/:id/comments", middleware.CheckTicketOwnership(), controller.AddTicketComment)

	// Correspondence Routes
	correspondence := protected.Group("/correspondence")
	correspondence.Post("/templates", controller.CreateTemplate)
	correspondence.Get("/templates", controller.ListMyTemplates)
	correspondence.Put("/templates/:id", controller.UpdateTemplate)
	correspondence.Delete("/templates/:id", controller.DeleteTemplate)
	correspondence.Post("/templates/:id/send", controller.SendCorrespondence)
	correspondence.Get("/log", controller.ListCorrespondenceLog)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/stats", controller.GetDashboardStats)

	// Settings routes
	settings := api.Group("/settings", middleware.AuthMiddleware())
	settings.Get("/profile", controller.GetProfile)
	settings.Put("/profile", controller.UpdateProfile)
	settings.Post("/avatar", controller.UploadAvatar)
	settings.Get("/login-history", controller.GetLoginHistory)

	// Location routes
	api.Get("/locations/countries", controller.GetLocationData)
	api.Get("/locations/regions/:countryCode", controller.GetRegionsByCountry)

	// Stripe webhook
	api.Post("/webhook", controller.HandleStripeWebhook)
}

func main() {
	cfg := config.Load()

	if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress); err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	controller.InitAuthController()
	controller.InitPaymentController()

	if err := location.Init(); err != nil {
		log.Fatal("Could not initialize location data:", err)
	}

	if cfg.Server.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Server.DatabaseURL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.LoginHistory{},
		&model.Property{},
		&model.PropertyPhoto{},
		&model.Unit{},
		&model.Tenant{},
		&model.Lease{},
		&model.LeaseDocument{},
		&model.Invoice{},
		&model.InvoiceLine{},
		&model.PaymentTransaction{},
		&model.WebhookEvent{},
		&model.MaintenanceTicket{},
		&model.TicketComment{},
		&model.CorrespondenceTemplate{},
		&model.CorrespondenceLog{},
		&model.Owner{},
		&model.PropertyOwnership{},
		&model.IncomeDistribution{},
		&model.DistributionShare{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	cron.InitInvoiceGenerationCron()
	cron.InitInvoiceOverdueCron()
	cron.InitLeaseExpiryCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
