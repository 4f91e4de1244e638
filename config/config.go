package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TrustedProxies    []string `mapstructure:"TRUSTED_PROXIES"`

	// Storage.
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling. LockTTL must outlast the store calls made under one lock.
	LockBackend       string        `mapstructure:"LOCK_BACKEND"`
	LockTTL           time.Duration `mapstructure:"LOCK_TTL"`
	WorkingHoursOpen  string        `mapstructure:"WORKING_HOURS_OPEN"`
	WorkingHoursClose string        `mapstructure:"WORKING_HOURS_CLOSE"`
	SlotStepMinutes   int           `mapstructure:"SLOT_STEP_MINUTES"`
	ReminderCron      string        `mapstructure:"REMINDER_CRON"`
	ExpiryCron        string        `mapstructure:"EXPIRY_CRON"`

	// Pricing and catalog.
	PricingAddonQuantity bool          `mapstructure:"PRICING_ADDON_QUANTITY"`
	CatalogCacheTTL      time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	// Notifications.
	NotifierBackend   string `mapstructure:"NOTIFIER_BACKEND"`
	QueueConcurrency  int    `mapstructure:"QUEUE_CONCURRENCY"`
	NotifyMaxAttempts int    `mapstructure:"NOTIFY_MAX_ATTEMPTS"`
}

var AppConfig Config

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load reads config.yaml (from "." or "./config") and the environment into a Config.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("TRUSTED_PROXIES", []string{})

	v.SetDefault("STORE_BACKEND", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "servicebook")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_LOCK_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)

	v.SetDefault("LOCK_BACKEND", "redis")
	v.SetDefault("LOCK_TTL", "30s")
	v.SetDefault("WORKING_HOURS_OPEN", "09:00")
	v.SetDefault("WORKING_HOURS_CLOSE", "17:00")
	v.SetDefault("SLOT_STEP_MINUTES", 30)
	v.SetDefault("REMINDER_CRON", "0 9 * * *")
	v.SetDefault("EXPIRY_CRON", "*/15 * * * *")

	v.SetDefault("PRICING_ADDON_QUANTITY", true)
	v.SetDefault("CATALOG_CACHE_TTL", "5m")

	v.SetDefault("NOTIFIER_BACKEND", "queue")
	v.SetDefault("QUEUE_CONCURRENCY", 10)
	v.SetDefault("NOTIFY_MAX_ATTEMPTS", 5)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
