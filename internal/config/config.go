package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	StoreDriver string // "mongo" or "memory"

	MongoURI      string
	MongoDatabase string
	MongoTimeout  time.Duration

	RedisURL string // empty disables the cache
	CacheTTL time.Duration

	FrontendURL    string // base URL used for event share links and QR codes
	AllowedOrigins []string
	BcryptCost     int

	RateLimitRPS       float64 // requests per second for /api
	RateLimitBurst     int
	RateLimitAuthRPS   float64 // stricter limit for /api/auth
	RateLimitAuthBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Port:               v.GetString("PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		StoreDriver:        strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:           mongoURI(v),
		MongoDatabase:      v.GetString("MONGODB_DATABASE"),
		MongoTimeout:       time.Duration(v.GetInt("MONGO_TIMEOUT_SECONDS")) * time.Second,
		RedisURL:           v.GetString("REDIS_URL"),
		CacheTTL:           time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		FrontendURL:        strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		AllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		RateLimitAuthRPS:   v.GetFloat64("RATE_LIMIT_AUTH_RPS"),
		RateLimitAuthBurst: v.GetInt("RATE_LIMIT_AUTH_BURST"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("MONGO_HOST", "nextauthdb.4uukzvs.mongodb.net")
	v.SetDefault("MONGODB_DATABASE", "eventDB")
	v.SetDefault("MONGO_TIMEOUT_SECONDS", 10)
	v.SetDefault("CACHE_TTL_SECONDS", 300)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_AUTH_RPS", 5)
	v.SetDefault("RATE_LIMIT_AUTH_BURST", 10)
}

// mongoURI prefers MONGODB_URI and otherwise assembles an Atlas SRV URI
// from EVENT_USER / EVENT_PASS.
func mongoURI(v *viper.Viper) string {
	if uri := v.GetString("MONGODB_URI"); uri != "" {
		return uri
	}
	user, pass := v.GetString("EVENT_USER"), v.GetString("EVENT_PASS")
	if user == "" || pass == "" {
		return ""
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), v.GetString("MONGO_HOST"))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI (or EVENT_USER and EVENT_PASS) must be set when STORE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}
