// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Skins supported by the storefront seed data and branding
const (
	SkinRestaurant = "restaurant"
	SkinPharmacy   = "pharmacy"
)

// Config holds all configuration for our application
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Security   SecurityConfig
	External   ExternalConfig
	Storefront StorefrontConfig
	Logging    LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Storefront Backend"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Debug       bool   `env:"APP_DEBUG" envDefault:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            string        `env:"APP_PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
	MaxRequestBytes int64         `env:"SERVER_MAX_REQUEST_BYTES" envDefault:"1048576"`
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string        `env:"DB_HOST" envDefault:"localhost"`
	Port         string        `env:"DB_PORT" envDefault:"5432"`
	Name         string        `env:"DB_NAME" envDefault:"storefront_db"`
	User         string        `env:"DB_USER" envDefault:"storefront_user"`
	Password     string        `env:"DB_PASSWORD" envDefault:"storefront_password"`
	SSLMode      string        `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxLifetime  time.Duration `env:"DB_MAX_LIFETIME" envDefault:"300s"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string `env:"REDIS_HOST" envDefault:"localhost"`
	Port         string `env:"REDIS_PORT" envDefault:"6379"`
	Password     string `env:"REDIS_PASSWORD"`
	DB           int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize     int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"5"`
}

// JWTConfig contains admin token configuration
type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET" envDefault:"your-super-secret-jwt-key-change-in-production"`
	AccessTokenExpiry time.Duration `env:"JWT_ACCESS_EXPIRE" envDefault:"24h"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int      `env:"BCRYPT_COST" envDefault:"10"`
	AdminTokenRequired bool     `env:"ADMIN_TOKEN_REQUIRED" envDefault:"false"`
	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000" envSeparator:","`
	CORSAllowedMethods []string `env:"CORS_ALLOWED_METHODS" envDefault:"GET,POST,PUT,DELETE,OPTIONS" envSeparator:","`
	CORSAllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envDefault:"Origin,Content-Type,Accept,Authorization" envSeparator:","`
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Stripe StripeConfig
	Kafka  KafkaConfig
	Email  EmailConfig
	PDF    PDFConfig
}

// StripeConfig contains Stripe payment configuration
type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	// BaseURL overrides the Stripe API host; empty means api.stripe.com
	BaseURL    string `env:"STRIPE_BASE_URL"`
	Currency   string `env:"STRIPE_CURRENCY" envDefault:"usd"`
	MaxRetries int64  `env:"STRIPE_MAX_RETRIES" envDefault:"2"`
	// Simulate approves payments locally when no secret key is set.
	Simulate bool `env:"PAYMENT_SIMULATE" envDefault:"false"`
}

// KafkaConfig contains order event publishing configuration
type KafkaConfig struct {
	Brokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	OrderTopic string   `env:"KAFKA_ORDER_TOPIC" envDefault:"storefront.orders"`
}

// EmailConfig contains order confirmation email configuration
type EmailConfig struct {
	Provider     string `env:"EMAIL_PROVIDER" envDefault:"log"`
	FromEmail    string `env:"FROM_EMAIL" envDefault:"noreply@example.com"`
	FromName     string `env:"FROM_NAME" envDefault:"Storefront"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	ReplyTo      string `env:"REPLY_TO_EMAIL"`
}

// PDFConfig contains receipt rendering configuration
type PDFConfig struct {
	WkhtmltopdfPath string `env:"PDF_WKHTMLTOPDF_PATH"`
}

// StorefrontConfig contains storefront behaviour configuration
type StorefrontConfig struct {
	Skin            string        `env:"STOREFRONT_SKIN" envDefault:"restaurant"`
	CompanyName     string        `env:"STOREFRONT_COMPANY_NAME" envDefault:"Storefront"`
	CompanyEmail    string        `env:"STOREFRONT_COMPANY_EMAIL" envDefault:"support@example.com"`
	CompanyPhone    string        `env:"STOREFRONT_COMPANY_PHONE"`
	KeyPrefix       string        `env:"STOREFRONT_KEY_PREFIX" envDefault:"storefront"`
	CustomerInfoTTL time.Duration `env:"STOREFRONT_CUSTOMER_INFO_TTL" envDefault:"30m"`
	SessionTTL      time.Duration `env:"STOREFRONT_SESSION_TTL" envDefault:"720h"`
	SeedData        bool          `env:"STOREFRONT_SEED_DATA" envDefault:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"debug"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.Storefront.Skin {
	case SkinRestaurant, SkinPharmacy:
	default:
		return fmt.Errorf("STOREFRONT_SKIN must be %q or %q, got %q", SkinRestaurant, SkinPharmacy, c.Storefront.Skin)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
