package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"finance-tracker-go/pkg/logger"
)

type Config struct {
	HTTPPort       string
	Env            string
	AllowedOrigins []string
	DB             DBConfig
	Auth           AuthConfig
	Quotes         QuotesConfig
	AMQP           AMQPConfig
	Categories     CategoriesConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	SkipAuth   bool
	MockUserID string
}

type QuotesConfig struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	Delay            time.Duration
	SchedulerEnabled bool
	ScheduleInterval time.Duration
	RunAfterHour     int
	TimeZone         string
}

type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

type CategoriesConfig struct {
	CacheTTL time.Duration
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "finance_tracker"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
			BcryptCost: getEnvInt("AUTH_BCRYPT_COST", 10),
			SkipAuth:   getEnvBool("AUTH_SKIP", false),
			MockUserID: getEnv("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
		},
		Quotes: QuotesConfig{
			BaseURL:          getEnv("QUOTES_BASE_URL", "https://brapi.dev/api"),
			Token:            getEnv("QUOTES_TOKEN", ""),
			Timeout:          getEnvDuration("QUOTES_TIMEOUT", 10*time.Second),
			Delay:            getEnvDuration("QUOTES_DELAY", time.Second),
			SchedulerEnabled: getEnvBool("QUOTES_SCHEDULER_ENABLED", true),
			ScheduleInterval: getEnvDuration("QUOTES_SCHEDULE_INTERVAL", time.Hour),
			RunAfterHour:     getEnvInt("QUOTES_RUN_AFTER_HOUR", 19),
			TimeZone:         getEnv("QUOTES_TIMEZONE", "Local"),
		},
		AMQP: AMQPConfig{
			URL:        getEnv("AMQP_URL", ""),
			Exchange:   getEnv("AMQP_EXCHANGE", "finance"),
			RoutingKey: getEnv("AMQP_ROUTING_KEY", "quotes"),
		},
		Categories: CategoriesConfig{
			CacheTTL: getEnvDuration("CATEGORIES_CACHE_TTL", time.Minute),
		},
	}, nil
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid HTTP_PORT %q", c.HTTPPort))
	}
	if c.Auth.JWTSecret == "" && !c.IsDevelopment() && !c.Auth.SkipAuth {
		problems = append(problems, "AUTH_JWT_SECRET is required outside development")
	}
	if c.Quotes.RunAfterHour < 0 || c.Quotes.RunAfterHour > 23 {
		problems = append(problems, fmt.Sprintf("invalid QUOTES_RUN_AFTER_HOUR %d", c.Quotes.RunAfterHour))
	}
	if _, err := time.LoadLocation(c.Quotes.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid QUOTES_TIMEZONE %q", c.Quotes.TimeZone))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
