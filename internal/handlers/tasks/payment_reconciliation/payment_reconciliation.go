package payment_reconciliation

import (
	"context"
	"time"

	"payments/pkg/logger"
)

type Service interface {
	ReconcilePending(ctx context.Context, olderThan time.Duration, limit int64) (int64, error)
}

type PaymentReconciliation struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	window   time.Duration
	limit    int64
}

func NewPaymentReconciliation(log logger.Logger, service Service, interval, window time.Duration, limit int64) *PaymentReconciliation {
	return &PaymentReconciliation{
		log:      log,
		service:  service,
		interval: interval,
		window:   window,
		limit:    limit,
	}
}

func (p *PaymentReconciliation) TTL() time.Duration {
	return p.interval
}

func (p *PaymentReconciliation) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	processed, err := p.service.ReconcilePending(ctxWithTimeout, p.window, p.limit)

	if processed > 0 {
		p.log.With(
			logger.NewField("reconciled_orders", processed),
		).Info("payment reconciliation")
	}

	return err
}

func (p *PaymentReconciliation) Info() string {
	return "payment reconciliation"
}
