package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	SSH       SSHConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Stats     StatsConfig
	Crush     CrushConfig
	Catalog   CatalogConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Timezone string
}

type LogConfig struct {
	Level    string
	SQLLevel string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// SSHConfig describes the tunnel used to reach the yard database.
// When disabled the database is dialled directly.
type SSHConfig struct {
	Enabled    bool
	Host       string
	Port       string
	User       string
	Password   string
	RemoteHost string
	RemotePort string
	HostKey    string // authorized_keys format; empty skips host key verification
	Timeout    time.Duration
}

type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
	CookieName    string
	CookieSecure  bool
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

type StatsConfig struct {
	OrderFile string
}

type CrushConfig struct {
	LocationID string
}

// CatalogConfig points at the parts catalog export, .csv or .xlsx
type CatalogConfig struct {
	File string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "yardops-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_TIMEZONE", "Europe/London")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_SQL_LEVEL", "warn")
	viper.SetDefault("DB_HOST", "127.0.0.1")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "silverlake")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/London")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("SSH_ENABLED", false)
	viper.SetDefault("SSH_PORT", "22")
	viper.SetDefault("SSH_REMOTE_HOST", "127.0.0.1")
	viper.SetDefault("SSH_REMOTE_PORT", "5432")
	viper.SetDefault("SSH_TIMEOUT_SECONDS", 10)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_COOKIE_NAME", "yardops_session")
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("STATS_ORDER_FILE", "./data/stats_order.json")
	viper.SetDefault("CRUSH_LOCATION_ID", "11045")
	viper.SetDefault("CATALOG_FILE", "./data/WebFleet.csv")

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Log: LogConfig{
			Level:    viper.GetString("LOG_LEVEL"),
			SQLLevel: viper.GetString("LOG_SQL_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			Timezone:     viper.GetString("DB_TIMEZONE"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		SSH: SSHConfig{
			Enabled:    viper.GetBool("SSH_ENABLED"),
			Host:       viper.GetString("SSH_HOST"),
			Port:       viper.GetString("SSH_PORT"),
			User:       viper.GetString("SSH_USER"),
			Password:   viper.GetString("SSH_PASSWORD"),
			RemoteHost: viper.GetString("SSH_REMOTE_HOST"),
			RemotePort: viper.GetString("SSH_REMOTE_PORT"),
			HostKey:    viper.GetString("SSH_HOST_KEY"),
			Timeout:    time.Duration(viper.GetInt("SSH_TIMEOUT_SECONDS")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			SessionExpiry: time.Duration(viper.GetInt("SESSION_EXPIRY_HOURS")) * time.Hour,
			CookieName:    viper.GetString("SESSION_COOKIE_NAME"),
			CookieSecure:  viper.GetBool("SESSION_COOKIE_SECURE"),
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
		Stats: StatsConfig{
			OrderFile: viper.GetString("STATS_ORDER_FILE"),
		},
		Crush: CrushConfig{
			LocationID: viper.GetString("CRUSH_LOCATION_ID"),
		},
		Catalog: CatalogConfig{
			File: viper.GetString("CATALOG_FILE"),
		},
	}
}

// Location returns the business timezone used to resolve "today"
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, falling back to UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

// DSN renders a keyword/value connection string. Empty values are left
// out so that an empty password does not swallow the next keyword.
func (c *DatabaseConfig) DSN() string {
	pairs := [][2]string{
		{"host", c.Host},
		{"user", c.User},
		{"password", c.Password},
		{"dbname", c.Name},
		{"port", c.Port},
		{"sslmode", c.SSLMode},
		{"TimeZone", c.Timezone},
	}

	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		if kv[1] == "" {
			continue
		}
		parts = append(parts, kv[0]+"="+quoteDSNValue(kv[1]))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
