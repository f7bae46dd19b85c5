package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/currency"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`

	KafkaBrokers    string `env:"KAFKA_BROKERS"`
	KafkaOrderTopic string `env:"KAFKA_ORDER_TOPIC" envDefault:"shop.orders"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	StoreCurrency string `env:"STORE_CURRENCY" envDefault:"EGP"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	CartMaxAttempts      int `env:"CART_MAX_ATTEMPTS" envDefault:"3"`
	CartExpandConcurrent int `env:"CART_EXPAND_CONCURRENCY" envDefault:"10"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("env.ParseAs: %w", err)
	}

	if _, err := cfg.Currency(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Currency() (currency.Unit, error) {
	cur, err := currency.ParseISO(c.StoreCurrency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("STORE_CURRENCY[%s] is not valid: %w", c.StoreCurrency, err)
	}
	return cur, nil
}

func (c Config) CheckoutSuccessURL() string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/checkout/success"
}

func (c Config) CheckoutCancelURL() string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/checkout/cancel"
}
