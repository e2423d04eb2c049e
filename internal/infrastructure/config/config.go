package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	ProjectName string `env:"PROJECT_NAME, default=Employee System"`

	// FrontendHost is the base URL embedded in password-reset links.
	FrontendHost string `env:"FRONTEND_HOST, default=http://localhost:5173"`

	JWTSecret          string `env:"JWT_SECRET"`
	AccessTokenMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES,    default=30"`
	ResetTokenHours    int    `env:"EMAIL_RESET_TOKEN_EXPIRE_HOURS, default=48"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Upload UploadConfig
	Seed   SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=employee_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host      string `env:"SMTP_HOST"`
	Port      int    `env:"SMTP_PORT, default=587"`
	Username  string `env:"SMTP_USER"`
	Password  string `env:"SMTP_PASSWORD"`
	FromEmail string `env:"EMAILS_FROM_EMAIL"`
	FromName  string `env:"EMAILS_FROM_NAME, default=Employee System"`
}

// Enabled reports whether enough settings are present to deliver email.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.FromEmail != ""
}

type UploadConfig struct {
	// Dir is the root directory profile images are stored under.
	Dir string `env:"UPLOAD_DIR, default=./uploads"`
}

// SeedConfig describes the first role and owner account created at startup
// when the database is empty.
type SeedConfig struct {
	RoleName      string `env:"FIRST_ROLE,             default=General Manager"`
	OwnerUsername string `env:"FIRST_OWNER_USERNAME,   default=owner"`
	OwnerPassword string `env:"FIRST_OWNER_PASSWORD"`
	OwnerEmail    string `env:"FIRST_OWNER_EMAIL,      default=owner@example.com"`
	OwnerFirst    string `env:"FIRST_OWNER_FIRST_NAME, default=System"`
	OwnerLast     string `env:"FIRST_OWNER_LAST_NAME,  default=Owner"`
	OwnerPhone    string `env:"FIRST_OWNER_PHONE,      default=+520000000000"`
}

// AccessTokenTTL returns the configured access-token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

// ResetTokenTTL returns the configured password-reset token lifetime.
func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.ResetTokenHours) * time.Hour
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
