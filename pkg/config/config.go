package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	JWT     JWTConfig
	Stripe  StripeConfig
	Email   EmailConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port        string
	DatabaseURL string
	AppBaseURL  string
}

type JWTConfig struct {
	Secret string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
}

type StorageConfig struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("EMAIL_FROM", "Arrenda <noreply@arrenda.app>"),
		},
		Storage: StorageConfig{
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
			Bucket:    getEnv("R2_BUCKET", "arrenda-files"),
			PublicURL: getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
