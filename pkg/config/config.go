package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	FrontendURL string

	MongoURI string
	MongoDB  string

	JWTSecret  string
	JWTTTL     time.Duration
	CookieName string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	VisitDebounceWindow time.Duration
	ViewDebounceWindow  time.Duration
}

// Load reads configuration from the environment, after sourcing a local
// .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "kulinarya"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTTTL:     getDurationEnv("JWT_TTL", 72*time.Hour),
		CookieName: getEnv("AUTH_COOKIE_NAME", "kulinarya-auth-token"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("EMAIL_USER", ""),
		SMTPPass: getEnv("EMAIL_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@kulinarya.app"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "kulinarya-media"),
		MinioUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		VisitDebounceWindow: getDurationEnv("VISIT_DEBOUNCE_WINDOW", time.Hour),
		ViewDebounceWindow:  getDurationEnv("VIEW_DEBOUNCE_WINDOW", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
