//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=refund_post_test
package refund_post

import (
	"context"

	"payments/internal/entities"
	"payments/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Refund(ctx context.Context, orderID, amount int64, reason string) (*entities.Order, error)
}
