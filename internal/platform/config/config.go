// internal/platform/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every environment-driven setting. It is built once at
// startup and passed down explicitly; nothing reads os.Getenv past this
// package.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	GCSBucket string

	// SendGridAPIKey wins when set; otherwise SendGridAPIKeySecret names
	// a Secret Manager secret holding the key.
	SendGridAPIKey       string
	SendGridAPIKeySecret string
	MailFrom             string

	// Pricing, in cents.
	ShippingFlatFee int
	FreeShippingMin int

	CORSAllowedOrigins []string
}

// Load reads the environment and returns the resolved Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: firstNonEmpty(os.Getenv("FIRESTORE_CREDENTIALS_FILE"), os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridAPIKeySecret: os.Getenv("SENDGRID_API_KEY_SECRET"),
		MailFrom:             getenvDefault("MAIL_FROM", "no-reply@storefront.example.com"),

		ShippingFlatFee: getenvIntDefault("SHIPPING_FLAT_FEE", 500),
		FreeShippingMin: getenvIntDefault("FREE_SHIPPING_MIN", 10000),

		CORSAllowedOrigins: splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
