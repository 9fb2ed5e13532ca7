package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		PaymentReconciliationInterval time.Duration
		PaymentReconciliationWindow   time.Duration
		PaymentReconciliationLimit    int
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Gateway struct {
		BaseURL       string
		SecretKey     string
		WebhookSecret string
		RedirectURL   string
	}

	Inventory struct {
		BaseURL string
	}

	Kafka struct {
		Brokers            string
		NotificationsTopic string
		AuditTopic         string
		Sarama             Sarama
	}

	Sarama struct {
		Version string
	}

	Config struct {
		Tasks     Tasks
		Server    HTTPServer
		Database  Database
		Gateway   Gateway
		Inventory Inventory
		Kafka     Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	reconciliationInterval, err := osGetEnvDuration("BACKGROUND_PAYMENT_RECONCILIATION_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reconciliationWindow, err := osGetEnvDuration("BACKGROUND_PAYMENT_RECONCILIATION_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reconciliationLimit, err := osGetInt("BACKGROUND_PAYMENT_RECONCILIATION_LIMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			PaymentReconciliationInterval: reconciliationInterval,
			PaymentReconciliationWindow:   reconciliationWindow,
			PaymentReconciliationLimit:    reconciliationLimit,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Gateway: Gateway{
			BaseURL:       os.Getenv("PAYGATE_BASE_URL"),
			SecretKey:     os.Getenv("PAYGATE_SECRET_KEY"),
			WebhookSecret: os.Getenv("PAYGATE_WEBHOOK_SECRET"),
			RedirectURL:   os.Getenv("CHECKOUT_REDIRECT_URL"),
		},
		Inventory: Inventory{
			BaseURL: os.Getenv("INVENTORY_BASE_URL"),
		},
		Kafka: Kafka{
			Brokers:            os.Getenv("KAFKA_BROKERS"),
			NotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
			AuditTopic:         os.Getenv("KAFKA_AUDIT_TOPIC"),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.PaymentReconciliationInterval == time.Duration(0) {
		return errors.New("BACKGROUND_PAYMENT_RECONCILIATION_INTERVAL is required")
	}
	if cfg.Tasks.PaymentReconciliationWindow == time.Duration(0) {
		return errors.New("BACKGROUND_PAYMENT_RECONCILIATION_WINDOW is required")
	}
	if cfg.Tasks.PaymentReconciliationLimit == 0 {
		return errors.New("BACKGROUND_PAYMENT_RECONCILIATION_LIMIT is required")
	}

	if cfg.Gateway.BaseURL == "" {
		return errors.New("PAYGATE_BASE_URL is required")
	}
	if cfg.Gateway.SecretKey == "" {
		return errors.New("PAYGATE_SECRET_KEY is required")
	}
	if cfg.Gateway.WebhookSecret == "" {
		return errors.New("PAYGATE_WEBHOOK_SECRET is required")
	}
	if cfg.Gateway.RedirectURL == "" {
		return errors.New("CHECKOUT_REDIRECT_URL is required")
	}

	if cfg.Inventory.BaseURL == "" {
		return errors.New("INVENTORY_BASE_URL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.NotificationsTopic == "" {
		return errors.New("KAFKA_NOTIFICATIONS_TOPIC is required")
	}
	if cfg.Kafka.AuditTopic == "" {
		return errors.New("KAFKA_AUDIT_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
