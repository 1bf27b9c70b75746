package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	CMS        CMSConfig
	Accounting AccountingConfig
	Email      EmailConfig
	Delivery   DeliveryConfig
	Export     ExportConfig
	PDF        PDFConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// CMSConfig points at the headless CMS that owns the product and drink
// catalogs.
type CMSConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// AccountingConfig points at the external bookkeeping API that receives
// sales invoices for paid quotes.
type AccountingConfig struct {
	BaseURL          string
	APIKey           string
	AdministrationID string
	Timeout          time.Duration
}

type EmailConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	FromName      string
	FromEmail     string
	OperatorEmail string
}

// DeliveryConfig drives the flat-rate delivery quoter. Amounts are
// VAT-exclusive euros; Prefixes restricts service to postal-code prefixes
// (empty means everywhere).
type DeliveryConfig struct {
	Fee       float64
	FreeAbove float64
	Prefixes  []string
}

// ExportConfig sizes the background export queue.
type ExportConfig struct {
	QueueCapacity int
	Workers       int
}

// PDFConfig configures the headless-Chrome quote renderer.
type PDFConfig struct {
	ChromePath string
	Timeout    time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "catering-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "catering")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/Amsterdam")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("CMS_BASE_URL", "http://localhost:1337")
	viper.SetDefault("CMS_API_TOKEN", "")
	viper.SetDefault("CMS_TIMEOUT_SECONDS", 10)
	viper.SetDefault("ACCOUNTING_BASE_URL", "")
	viper.SetDefault("ACCOUNTING_API_KEY", "")
	viper.SetDefault("ACCOUNTING_ADMINISTRATION_ID", "")
	viper.SetDefault("ACCOUNTING_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM_NAME", "Lunch Lokaal")
	viper.SetDefault("SMTP_FROM_EMAIL", "noreply@lunchlokaal.nl")
	viper.SetDefault("OPERATOR_EMAIL", "office@lunchlokaal.nl")
	viper.SetDefault("DELIVERY_FEE", 15.00)
	viper.SetDefault("DELIVERY_FREE_ABOVE", 250.00)
	viper.SetDefault("DELIVERY_POSTAL_PREFIXES", []string{})
	viper.SetDefault("EXPORT_QUEUE_CAPACITY", 64)
	viper.SetDefault("EXPORT_WORKERS", 2)
	viper.SetDefault("PDF_CHROME_PATH", "")
	viper.SetDefault("PDF_TIMEOUT_SECONDS", 30)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		CMS: CMSConfig{
			BaseURL:  viper.GetString("CMS_BASE_URL"),
			APIToken: viper.GetString("CMS_API_TOKEN"),
			Timeout:  time.Duration(viper.GetInt("CMS_TIMEOUT_SECONDS")) * time.Second,
		},
		Accounting: AccountingConfig{
			BaseURL:          viper.GetString("ACCOUNTING_BASE_URL"),
			APIKey:           viper.GetString("ACCOUNTING_API_KEY"),
			AdministrationID: viper.GetString("ACCOUNTING_ADMINISTRATION_ID"),
			Timeout:          time.Duration(viper.GetInt("ACCOUNTING_TIMEOUT_SECONDS")) * time.Second,
		},
		Email: EmailConfig{
			SMTPHost:      viper.GetString("SMTP_HOST"),
			SMTPPort:      viper.GetInt("SMTP_PORT"),
			SMTPUsername:  viper.GetString("SMTP_USERNAME"),
			SMTPPassword:  viper.GetString("SMTP_PASSWORD"),
			FromName:      viper.GetString("SMTP_FROM_NAME"),
			FromEmail:     viper.GetString("SMTP_FROM_EMAIL"),
			OperatorEmail: viper.GetString("OPERATOR_EMAIL"),
		},
		Delivery: DeliveryConfig{
			Fee:       viper.GetFloat64("DELIVERY_FEE"),
			FreeAbove: viper.GetFloat64("DELIVERY_FREE_ABOVE"),
			Prefixes:  viper.GetStringSlice("DELIVERY_POSTAL_PREFIXES"),
		},
		Export: ExportConfig{
			QueueCapacity: viper.GetInt("EXPORT_QUEUE_CAPACITY"),
			Workers:       viper.GetInt("EXPORT_WORKERS"),
		},
		PDF: PDFConfig{
			ChromePath: viper.GetString("PDF_CHROME_PATH"),
			Timeout:    time.Duration(viper.GetInt("PDF_TIMEOUT_SECONDS")) * time.Second,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
