package controller

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"arrenda_backend/internal/model"
	"arrenda_backend/pkg/database"
	"arrenda_backend/pkg/email"
)

type PaymentInput struct {
	Method model.PaymentMethod `json:"method" validate:"required"`
}

func InitPaymentController() {}

var hundredCents = decimal.NewFromInt(100)

// stripeMethodTypes maps our method families onto provider payment method
// types. MB WAY rides on the provider's Portuguese wallet integration.
var stripeMethodTypes = map[model.PaymentMethod]string{
	model.PaymentMethodCard:       "card",
	model.PaymentMethodMultibanco: "multibanco",
	model.PaymentMethodMBWay:      "mb_way",
	model.PaymentMethodSEPADebit:  "sepa_debit",
}

// CreatePaymentIntent starts an online payment for an issued invoice. The
// tenant reaches this from the pay link in the invoice email.
func CreatePaymentIntent(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(PaymentInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	methodType, ok := stripeMethodTypes[input.Method]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported payment method",
		})
	}

	var invoice model.Invoice
	if err := database.GetDB().Preload("Lease.Tenant").First(&invoice, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	if !invoice.IsPayable() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Invoice is not awaiting payment",
		})
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	amountCents := invoice.Total.Mul(hundredCents).IntPart()
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currencyCode(invoice.Currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{methodType}),
		ReceiptEmail:       stripe.String(invoice.Lease.Tenant.Email),
		Description:        stripe.String("Invoice " + invoice.Number),
	}
	params.AddMetadata("invoice_id", id)

	intent, err := paymentintent.New(params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not start payment",
		})
	}

	txn := model.PaymentTransaction{
		InvoiceID:      invoice.ID,
		Method:         input.Method,
		Status:         model.TransactionStatusPending,
		Amount:         invoice.Total,
		Currency:       invoice.Currency,
		StripeIntentID: intent.ID,
	}
	if err := database.GetDB().Create(&txn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record payment attempt",
		})
	}

	return c.JSON(fiber.Map{
		"client_secret":  intent.ClientSecret,
		"transaction_id": txn.ID,
	})
}

// HandleStripeWebhook applies provider events to payment transactions.
// Replayed deliveries are dropped via the webhook_events table.
func HandleStripeWebhook(c *fiber.Ctx) error {
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signatureHeader, webhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	// Idempotency: the unique index on event_id rejects replays.
	record := model.WebhookEvent{EventID: event.ID, EventType: string(event.Type)}
	if err := database.GetDB().Create(&record).Error; err != nil {
		log.Printf("Skipping already-processed webhook event %s", event.ID)
		return c.SendStatus(fiber.StatusOK)
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	switch event.Type {
	case "payment_intent.succeeded":
		var intentData struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &intentData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		if err := applyPaymentSuccess(intentData.ID); err != nil {
			log.Printf("Could not apply payment success for %s: %v", intentData.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not process payment",
			})
		}

	case "payment_intent.processing":
		// Multibanco and SEPA confirm asynchronously, sometimes days later.
		var intentData struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &intentData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		database.GetDB().Model(&model.PaymentTransaction{}).
			Where("stripe_intent_id = ?", intentData.ID).
			Update("status", model.TransactionStatusProcessing)

	case "payment_intent.payment_failed":
		var intentData struct {
			ID               string `json:"id"`
			LastPaymentError struct {
				Message string `json:"message"`
			} `json:"last_payment_error"`
		}
		if err := json.Unmarshal(event.Data.Raw, &intentData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		database.GetDB().Model(&model.PaymentTransaction{}).
			Where("stripe_intent_id = ?", intentData.ID).
			Updates(map[string]interface{}{
				"status":         model.TransactionStatusFailed,
				"failure_reason": intentData.LastPaymentError.Message,
			})

	case "payment_intent.canceled":
		var intentData struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &intentData); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		database.GetDB().Model(&model.PaymentTransaction{}).
			Where("stripe_intent_id = ?", intentData.ID).
			Update("status", model.TransactionStatusCancelled)
	}

	return c.SendStatus(fiber.StatusOK)
}

// applyPaymentSuccess completes the transaction and settles its invoice.
func applyPaymentSuccess(intentID string) error {
	var txn model.PaymentTransaction
	if err := database.GetDB().Where("stripe_intent_id = ?", intentID).First(&txn).Error; err != nil {
		return err
	}

	now := time.Now()
	txn.Status = model.TransactionStatusSucceeded
	txn.CompletedAt = &now

	var invoice model.Invoice
	if err := database.GetDB().Preload("Lease.Tenant").First(&invoice, txn.InvoiceID).Error; err != nil {
		return err
	}

	return settleInvoice(&invoice, txn)
}

// settleInvoice stores the successful transaction, flips the invoice to paid
// and emails a receipt.
func settleInvoice(invoice *model.Invoice, txn model.PaymentTransaction) error {
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if txn.ID == 0 {
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&txn).Error; err != nil {
				return err
			}
		}

		paidAt := time.Now()
		if txn.CompletedAt != nil {
			paidAt = *txn.CompletedAt
		}
		return tx.Model(invoice).Updates(map[string]interface{}{
			"status":  model.InvoiceStatusPaid,
			"paid_at": paidAt,
		}).Error
	})
	if err != nil {
		return err
	}

	if email.GlobalEmailService != nil && invoice.Lease.Tenant.Email != "" {
		paidAt := time.Now()
		if txn.CompletedAt != nil {
			paidAt = *txn.CompletedAt
		}
		err := email.GlobalEmailService.SendPaymentReceiptEmail(invoice.Lease.Tenant.Email, email.PaymentReceiptData{
			TenantName:    invoice.Lease.Tenant.GetFullName(),
			InvoiceNumber: invoice.Number,
			Amount:        txn.Amount.StringFixed(2),
			Currency:      string(txn.Currency),
			Method:        string(txn.Method),
			PaidAt:        paidAt,
		})
		if err != nil {
			log.Printf("Could not send payment receipt email: %v", err)
		}
	}

	return nil
}

func currencyCode(c model.Currency) string {
	switch c {
	case model.CurrencyUSD:
		return "usd"
	case model.CurrencyGBP:
		return "gbp"
	default:
		return "eur"
	}
}
