package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

// Supported material storage drivers.
const (
	StorageDriverCloudinary = "cloudinary"
	StorageDriverLocal      = "local"
)

// Config holds runtime configuration values for the academy service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	Location               *time.Location
	DatabaseDriver         string
	DatabaseURL            string
	RedisURL               string
	SessionTTL             time.Duration
	SessionCookieSecure    bool
	DashboardCacheTTL      time.Duration
	UploadMaxMB            int
	StorageDriver          string
	StorageLocalRoot       string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	SendGridAPIKey         string
	MailFromAddress        string
	MailFromName           string
	ContactInbox           string
	NATSURL                string
	NATSSubject            string
	PromotionSchedule      string
	LoginRateLimit         int
	CORSAllowOrigins       []string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ACADEMY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "JyS Academy")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.timezone", "America/Argentina/Buenos_Aires")
	v.SetDefault("database.driver", DatabaseDriverPostgres)
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("dashboard.cache_ttl", "1m")
	v.SetDefault("upload.max_mb", 50)
	v.SetDefault("storage.driver", StorageDriverLocal)
	v.SetDefault("storage.local_root", "media")
	v.SetDefault("cloudinary.folder", "academy")
	v.SetDefault("mail.from_name", "JyS Academy")
	v.SetDefault("nats.subject", "academy.notices")
	v.SetDefault("promotion.schedule", "@every 1m")
	v.SetDefault("login.rate_limit", 10)

	sessionTTL, err := parseDuration(v.GetString("session.ttl"), 12*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	dashboardTTL, err := parseDuration(v.GetString("dashboard.cache_ttl"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	location, err := time.LoadLocation(strings.TrimSpace(v.GetString("app.timezone")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		Location:               location,
		DatabaseDriver:         strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		SessionTTL:             sessionTTL,
		SessionCookieSecure:    v.GetBool("session.cookie_secure"),
		DashboardCacheTTL:      dashboardTTL,
		UploadMaxMB:            v.GetInt("upload.max_mb"),
		StorageDriver:          strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
		StorageLocalRoot:       v.GetString("storage.local_root"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		SendGridAPIKey:         v.GetString("sendgrid.api_key"),
		MailFromAddress:        v.GetString("mail.from_address"),
		MailFromName:           v.GetString("mail.from_name"),
		ContactInbox:           v.GetString("mail.contact_inbox"),
		NATSURL:                v.GetString("nats.url"),
		NATSSubject:            v.GetString("nats.subject"),
		PromotionSchedule:      strings.TrimSpace(v.GetString("promotion.schedule")),
		LoginRateLimit:         v.GetInt("login.rate_limit"),
		CORSAllowOrigins:       splitList(v.GetString("cors.allow_origins")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 50
	}

	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 10
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case DatabaseDriverPostgres, DatabaseDriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("database url must be provided")
	}

	switch c.StorageDriver {
	case StorageDriverLocal:
		if strings.TrimSpace(c.StorageLocalRoot) == "" {
			return fmt.Errorf("storage local root must be provided")
		}
	case StorageDriverCloudinary:
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary credentials must be provided")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.StorageDriver)
	}

	if c.SendGridAPIKey != "" && (c.MailFromAddress == "" || c.ContactInbox == "") {
		return fmt.Errorf("mail from address and contact inbox are required when sendgrid is enabled")
	}

	return nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

// splitList parses a comma separated setting, dropping blanks.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
