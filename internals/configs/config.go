package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string

	// Flutterwave gateway
	FlutterwaveClientID     string
	FlutterwaveClientSecret string
	FlutterwaveTokenURL     string
	FlutterwaveBaseURL      string

	// SMTP (receipts & reminders)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// SMS provider
	SMSAPIURL   string
	SMSAPIKey   string
	SMSSenderID string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file found, using system ENV")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")

	FlutterwaveClientID = GetEnv("FLW_CLIENT_ID")
	FlutterwaveClientSecret = GetEnv("FLW_CLIENT_SECRET")
	FlutterwaveTokenURL = getenv("FLW_TOKEN_URL", "https://idp.flutterwave.com/realms/flutterwave/protocol/openid-connect/token")
	FlutterwaveBaseURL = getenv("FLW_BASE_URL", "https://api.flutterwave.cloud/developersandbox")

	SMTPHost = GetEnv("SMTP_HOST")
	SMTPPort = getenvInt("SMTP_PORT", 587)
	SMTPUser = GetEnv("SMTP_USER")
	SMTPPassword = GetEnv("SMTP_PASSWORD")
	SMTPFrom = getenv("SMTP_FROM", SMTPUser)

	SMSAPIURL = GetEnv("SMS_API_URL")
	SMSAPIKey = GetEnv("SMS_API_KEY")
	SMSSenderID = getenv("SMS_SENDER_ID", "AKADEMIKU")

	if JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set")
	}
	if FlutterwaveClientID == "" || FlutterwaveClientSecret == "" {
		log.Println("[WARN] FLW_CLIENT_ID / FLW_CLIENT_SECRET not set, gateway calls will fail")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
