package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every environment-driven setting of the server
type Config struct {
	Port           string
	Env            string
	RequestTimeout time.Duration

	MongoURI string
	DBName   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthProvider              string // "firebase" or "jwt"
	JWTSecret                 string
	FirebaseProjectID         string
	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string
	AdminEmails               []string

	ClientURL          string
	CORSAllowedOrigins []string
	TrustedProxies     []string // CIDR ranges allowed to set X-Forwarded-For

	PaymentProvider    string // "stripe" or "whish"
	StripeSecretKey    string
	WhishBaseURL       string
	WhishChannel       string
	WhishSecret        string
	WhishWebsiteURL    string
	PremiumPriceLocal  float64
	ExchangeRate       float64
	SettlementCurrency string
}

// Load reads the configuration from the environment, applying defaults
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),

		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   getEnv("DB_NAME", "lifelessons"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		AuthProvider:              strings.ToLower(getEnv("AUTH_PROVIDER", "firebase")),
		JWTSecret:                 os.Getenv("JWT_SECRET"),
		FirebaseProjectID:         os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsBase64: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		FirebaseCredentialsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		AdminEmails:               splitList(os.Getenv("ADMIN_EMAILS")),

		ClientURL:          strings.TrimRight(getEnv("CLIENT_URL", "http://localhost:5173"), "/"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     splitList(os.Getenv("TRUSTED_PROXIES")),

		PaymentProvider:    strings.ToLower(getEnv("PAYMENT_PROVIDER", "stripe")),
		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		WhishBaseURL:       getEnv("WHISH_BASE_URL", "https://api.sandbox.whish.money/itel-service/api/"),
		WhishChannel:       os.Getenv("WHISH_CHANNEL"),
		WhishSecret:        os.Getenv("WHISH_SECRET"),
		WhishWebsiteURL:    os.Getenv("WHISH_WEBSITE_URL"),
		PremiumPriceLocal:  getFloat("PREMIUM_PRICE_LOCAL", 1500),
		ExchangeRate:       getFloat("EXCHANGE_RATE", 120),
		SettlementCurrency: strings.ToLower(getEnv("SETTLEMENT_CURRENCY", "usd")),
	}

	// Check both MONGO_URI and MONGODB_URI
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGODB_URI")
	}

	return cfg
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// IsAdmin reports whether the email belongs to a configured administrator
func (c *Config) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if strings.ToLower(admin) == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
