package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	AppEnv      string `mapstructure:"APP_ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// StoreDriver selects the document store: "mongo" or "memory".
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDB     string `mapstructure:"MONGO_DB"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ProfileCacheTTL time.Duration `mapstructure:"PROFILE_CACHE_TTL"`

	JWTSecret      string `mapstructure:"JWT_SECRET"`
	JWTExpireHours int    `mapstructure:"JWT_EXPIRE_HOURS"`

	FirebaseProjectID          string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseServiceAccountPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	FirebaseAPIKey             string `mapstructure:"FIREBASE_API_KEY"`
	GoogleClientID             string `mapstructure:"GOOGLE_CLIENT_ID"`

	CloudinaryCloudName    string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey       string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret    string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadFolder string `mapstructure:"CLOUDINARY_UPLOAD_FOLDER"`

	// Requests per second allowed per client on write endpoints.
	WriteRateLimit float64 `mapstructure:"WRITE_RATE_LIMIT"`
	WriteRateBurst int     `mapstructure:"WRITE_RATE_BURST"`
}

var defaults = map[string]interface{}{
	"PORT":                          "8080",
	"APP_ENV":                       "development",
	"LOG_LEVEL":                     "info",
	"FRONTEND_URL":                  "http://localhost:3000",
	"STORE_DRIVER":                  "mongo",
	"MONGO_URI":                     "mongodb://localhost:27017",
	"MONGO_DB":                      "safetrip",
	"REDIS_ADDR":                    "",
	"REDIS_PASSWORD":                "",
	"REDIS_DB":                      0,
	"PROFILE_CACHE_TTL":             "5m",
	"JWT_SECRET":                    "secret",
	"JWT_EXPIRE_HOURS":              24,
	"FIREBASE_PROJECT_ID":           "",
	"FIREBASE_SERVICE_ACCOUNT_PATH": "",
	"FIREBASE_API_KEY":              "",
	"GOOGLE_CLIENT_ID":              "",
	"CLOUDINARY_CLOUD_NAME":         "",
	"CLOUDINARY_API_KEY":            "",
	"CLOUDINARY_API_SECRET":         "",
	"CLOUDINARY_UPLOAD_FOLDER":      "safetrip",
	"WRITE_RATE_LIMIT":              2.0,
	"WRITE_RATE_BURST":              10,
}

// Load reads .env (if present) and the process environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	return &cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
