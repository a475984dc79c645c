package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs, resolved once at start.
// All secrets come from the environment; none are checked into source.
type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	RazorpayKeyID  string
	RazorpaySecret string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	AdminEmail string
	FromName   string

	JWTSecret string

	// HostingBaseURL is where the static SPA entry document lives; the social
	// preview renderer fetches <base>/index.html from here.
	HostingBaseURL string
	SiteName       string
}

func Load() Config {
	// Local development convenience; real deployments inject env directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		DBDSN:          getenv("DB_DSN", "pahnawa.db"),
		LogFile:        os.Getenv("LOG_FILE"),
		RazorpayKeyID:  os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		SMTPHost:       getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getint("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		AdminEmail:     getenv("ADMIN_EMAIL", os.Getenv("SMTP_USER")),
		FromName:       getenv("FROM_NAME", "Pahnawa Banaras"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		HostingBaseURL: getenv("HOSTING_BASE_URL", "https://pahnawabanaras.com"),
		SiteName:       getenv("SITE_NAME", "Pahnawa Banaras"),
	}

	if cfg.RazorpaySecret == "" {
		log.Println("[config] RAZORPAY_KEY_SECRET is empty; payment verification will reject everything")
	}
	if cfg.JWTSecret == "" {
		log.Println("[config] JWT_SECRET is empty; admin and favorites endpoints are unusable")
	}
	log.Printf("[config] PORT=%s DB_DSN=%s HOSTING_BASE_URL=%s", cfg.Port, cfg.DBDSN, cfg.HostingBaseURL)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
