package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/utils"
)

const EnvProduction = "production"

var (
	ErrMissingSecret   = errors.New("config: SECRET_KEY is required in production")
	ErrUnknownScale    = errors.New("config: PRICE_SCALE must be legacy or standard")
	ErrInvalidDuration = errors.New("config: durations must be positive")
)

type Config struct {
	AppEnv    string
	AppPort   string
	APIPrefix string
	LogLevel  string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SecretKey string
	TokenTTL  time.Duration

	RapidAPIKey     string
	RapidAPIHost    string
	RapidAPIBaseURL string
	UpstreamTimeout time.Duration
	PropertyTTL     time.Duration

	StripeKey          string
	CheckoutTTL        time.Duration
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	CheckoutCurrency   string
	PriceScale         string
}

// Production reports whether cookies must carry the Secure flag.
func (c Config) Production() bool {
	return c.AppEnv == EnvProduction
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "zenrooms")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("TOKEN_TTL", time.Hour)

	v.SetDefault("RAPIDAPI_KEY", "")
	v.SetDefault("RAPIDAPI_HOST", "booking-com15.p.rapidapi.com")
	v.SetDefault("RAPIDAPI_BASE_URL", "https://booking-com15.p.rapidapi.com/api/v1/hotels")
	v.SetDefault("UPSTREAM_TIMEOUT", 30*time.Second)
	v.SetDefault("PROPERTY_CACHE_TTL", time.Hour)

	v.SetDefault("STRIPE_KEY", "")
	v.SetDefault("CHECKOUT_CACHE_TTL", 10*time.Minute)
	v.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:5173/success")
	v.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/cancel")
	v.SetDefault("CHECKOUT_CURRENCY", "inr")
	v.SetDefault("PRICE_SCALE", "legacy")
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppEnv:    strings.ToLower(v.GetString("APP_ENV")),
		AppPort:   v.GetString("APP_PORT"),
		APIPrefix: v.GetString("API_PREFIX"),
		LogLevel:  v.GetString("LOG_LEVEL"),

		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		SecretKey: v.GetString("SECRET_KEY"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),

		RapidAPIKey:     v.GetString("RAPIDAPI_KEY"),
		RapidAPIHost:    v.GetString("RAPIDAPI_HOST"),
		RapidAPIBaseURL: strings.TrimRight(v.GetString("RAPIDAPI_BASE_URL"), "/"),
		UpstreamTimeout: v.GetDuration("UPSTREAM_TIMEOUT"),
		PropertyTTL:     v.GetDuration("PROPERTY_CACHE_TTL"),

		StripeKey:          v.GetString("STRIPE_KEY"),
		CheckoutTTL:        v.GetDuration("CHECKOUT_CACHE_TTL"),
		CheckoutSuccessURL: v.GetString("CHECKOUT_SUCCESS_URL"),
		CheckoutCancelURL:  v.GetString("CHECKOUT_CANCEL_URL"),
		CheckoutCurrency:   strings.ToLower(v.GetString("CHECKOUT_CURRENCY")),
		PriceScale:         strings.ToLower(v.GetString("PRICE_SCALE")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		if c.Production() {
			return ErrMissingSecret
		}
		// tokens from a previous process stop verifying after a restart
		c.SecretKey = utils.RandomString(32)
	}

	switch c.PriceScale {
	case "legacy", "standard":
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownScale, c.PriceScale)
	}

	if c.TokenTTL <= 0 || c.PropertyTTL <= 0 || c.CheckoutTTL <= 0 {
		return ErrInvalidDuration
	}

	return nil
}
