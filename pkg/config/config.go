package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const minSecretLength = 32

type Config struct {
	ServiceName string `env:"SERVICE_NAME" env-default:"dietcoach-api"`
	ServerPort  int    `env:"SERVER_PORT"  env-default:"8080"`
	LogLevel    string `env:"LOG_LEVEL"    env-default:"info"`

	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" env-default:"true"`

	JWTSecret    string        `env:"JWT_SECRET_KEY" env-required:"true"`
	JWTAccessTTL time.Duration `env:"JWT_ACCESS_TTL" env-default:"1h"`
	BcryptCost   int           `env:"BCRYPT_COST"    env-default:"10"`

	RedisURL       string   `env:"REDIS_URL"`
	KafkaBrokers   []string `env:"KAFKA_BROKERS"    env-separator:","`
	EventQueueSize int      `env:"EVENT_QUEUE_SIZE" env-default:"256"`

	ESURL       string `env:"ES_URL"`
	ESUser      string `env:"ES_USER"`
	ESPassword  string `env:"ES_PASSWORD"`
	ESUserIndex string `env:"ES_USER_INDEX" env-default:"users"`

	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	AITimeout    time.Duration `env:"AI_TIMEOUT"   env-default:"60s"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:3000,http://localhost:5174"`
	PhoneRegion string   `env:"PHONE_REGION" env-default:"US"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	cfg.KafkaBrokers = CSV(strings.Join(cfg.KafkaBrokers, ","))
	cfg.CORSOrigins = CSV(strings.Join(cfg.CORSOrigins, ","))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY must be at least %d characters long", minSecretLength))
	}
	if c.JWTAccessTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL must be positive"))
	}
	if c.AITimeout <= 0 {
		errs = append(errs, errors.New("AI_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
