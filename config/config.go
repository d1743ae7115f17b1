package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	UploadDir string // local blob store directory
	PublicURL string // base URL under which uploaded blobs are served

	EmailSender string
	Password    string // SMTP Password

	GatewayApiURL        string // payment gateway base URL
	GatewayKeyID         string
	GatewayKeySecret     string
	GatewayWebhookSecret string // secret used to verify payment confirmation signatures
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		PublicURL: getEnv("PUBLIC_URL", "/uploads"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		GatewayApiURL:        getEnv("GATEWAY_API_URL", "https://api.razorpay.com/v1/"),
		GatewayKeyID:         getEnv("GATEWAY_KEY_ID", "defaultSecret"),
		GatewayKeySecret:     getEnv("GATEWAY_KEY_SECRET", "defaultSecret"),
		GatewayWebhookSecret: getEnv("GATEWAY_WEBHOOK_SECRET", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GatewayWebhookSecret == "defaultSecret" {
		log.Println("Warning: Using default GATEWAY_WEBHOOK_SECRET. Payment confirmations are not verified securely.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
