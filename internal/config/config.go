package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends understood by DBDriver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var defaultAllowedOrigins = []string{
	"https://roomshift.netlify.app",
	"https://room-3t00.onrender.com",
	"http://127.0.0.1:5000",
	"http://localhost:5000",
	"http://127.0.0.1:5500",
	"http://localhost:5500",
}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	MongoURI    string
	MongoDB     string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret    string
	AuthRequired bool

	AllowedOrigins []string
	PublicBaseURL  string
	SwaggerHost    string

	Esewa          EsewaConfig
	Khalti         KhaltiConfig
	GatewayTimeout time.Duration
}

// EsewaConfig holds eSewa merchant settings.
type EsewaConfig struct {
	MerchantCode string
	PaymentURL   string
	VerifyURL    string
}

// KhaltiConfig holds Khalti merchant keys.
type KhaltiConfig struct {
	PublicKey string
	SecretKey string
	VerifyURL string
}

// Load builds Config from environment with test-mode defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	return &Config{
		ServerPort:  getEnv("PORT", getEnv("SERVER_PORT", "5000")),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DatabaseDSN: getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/roomshift?charset=utf8mb4&parseTime=True&loc=Local")),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "roomshift"),
		ResetDB:     getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		AuthRequired: getEnvBool("AUTH_REQUIRED", false),

		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "https://room-3t00.onrender.com"), "/"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),

		Esewa: EsewaConfig{
			MerchantCode: getEnv("ESEWA_MERCHANT_CODE", "EPAYTEST"),
			PaymentURL:   getEnv("ESEWA_PAYMENT_URL", "https://uat.esewa.com.np/epay/main"),
			VerifyURL:    getEnv("ESEWA_VERIFY_URL", "https://uat.esewa.com.np/epay/transrec"),
		},
		Khalti: KhaltiConfig{
			PublicKey: getEnv("KHALTI_PUBLIC_KEY", "test_public_key_dc74e0fd57cb46cd93832aee0a390234"),
			SecretKey: getEnv("KHALTI_SECRET_KEY", "test_secret_key_f59e8b7d18b4499ca40f68195a846e9b"),
			VerifyURL: getEnv("KHALTI_VERIFY_URL", "https://khalti.com/api/v2/payment/verify/"),
		},
		GatewayTimeout: getEnvDuration("GATEWAY_TIMEOUT", 15*time.Second),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
