package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"ChainSync"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"chainsync"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	}

	Redis struct {
		URL string        `envconfig:"REDIS_URL" default:""`
		TTL time.Duration `envconfig:"ANALYTICS_CACHE_TTL" default:"5m"`
	}

	Kafka struct {
		Brokers []string `envconfig:"KAFKA_BROKERS" default:""`
		Topic   string   `envconfig:"KAFKA_TOPIC" default:"chainsync.events"`
	}

	Paystack struct {
		SecretKey string `envconfig:"PAYSTACK_SECRET_KEY" default:""`
	}

	Flutterwave struct {
		SecretKey  string `envconfig:"FLUTTERWAVE_SECRET_KEY" default:""`
		SecretHash string `envconfig:"FLUTTERWAVE_SECRET_HASH" default:""`
	}

	Affiliate struct {
		CommissionPct int64  `envconfig:"AFFILIATE_COMMISSION_PCT" default:"10"`
		MinPayout     string `envconfig:"AFFILIATE_MIN_PAYOUT" default:"10.00"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
