package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"payments/internal/pkg/config"
	"payments/pkg/logger"
	retrierconfig "payments/pkg/retrier"
	"payments/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

func NewSaramaConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	return cfg, nil
}

// NewSyncProducer создает producer для событий уведомлений и аудита.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (sarama.SyncProducer, error) {
	saramaConfig, err := NewSaramaConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
	)

	var producer sarama.SyncProducer

	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil, // все ошибки ретраим
	}

	var attempt uint64
	err = backoff_adapter.New(retryConfig).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		kafkaLog.With(
			logger.NewField("attempt", attempt),
		).Info("attempting Kafka connection")

		producer, err = sarama.NewSyncProducer(brokers, saramaConfig)
		return err
	})
	if err != nil {
		kafkaLog.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Kafka connection failed after retries")
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	kafkaLog.With(
		logger.NewField("attempts", attempt),
	).Info("Kafka connection established")
	return producer, nil
}
