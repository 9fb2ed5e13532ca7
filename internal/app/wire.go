//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"
	"time"

	auditGateway "payments/internal/gateway/kafka/audit"
	notificationGateway "payments/internal/gateway/kafka/notification"

	inventoryGateway "payments/internal/gateway/http/inventory"
	paygateGateway "payments/internal/gateway/http/paygate"
	checkout_post "payments/internal/handlers/rest/checkout_post"
	order_get "payments/internal/handlers/rest/order_get"
	order_status_put "payments/internal/handlers/rest/order_status_put"
	refund_post "payments/internal/handlers/rest/refund_post"
	webhook_post "payments/internal/handlers/rest/webhook_post"
	"payments/internal/handlers/tasks/payment_reconciliation"
	"payments/internal/pkg/config"

	orderRepo "payments/internal/repository/order"
	paymentRepo "payments/internal/repository/payment"
	webhookEventRepo "payments/internal/repository/webhookevent"
	orderService "payments/internal/service/order"
	refundService "payments/internal/service/refund"
	webhookService "payments/internal/service/webhook"

	"payments/pkg/background"
	"payments/pkg/breaker"
	"payments/pkg/logger"
	"payments/pkg/querier"
	"payments/pkg/resilience"
	"payments/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	breakerThreshold = 5
	breakerCooldown  = 30 * time.Second

	httpClientTimeout = 60 * time.Second
)

type Application struct {
	ServiceOrder   ServiceOrder
	ServiceWebhook ServiceWebhook
	ServiceRefund  ServiceRefund
}

type ServiceOrder interface {
	checkout_post.Service
	order_get.Service
	order_status_put.Service
}

type ServiceWebhook interface {
	webhook_post.Service
}

type ServiceRefund interface {
	refund_post.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideBreaker,
		provideInvoker,
		provideHTTPClient,

		providePaygateGateway,
		provideInventoryClient,
		provideNotifier,
		provideAuditRecorder,

		provideOrderRepository,
		providePaymentRepository,
		provideWebhookEventRepository,

		provideServiceOrder,
		provideServiceWebhook,
		provideServiceRefund,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceWebhook), new(*webhookService.Service)),
		wire.Bind(new(ServiceRefund), new(*refundService.Service)),

		wire.Bind(new(orderService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.PaymentRepository), new(*paymentRepo.Repository)),
		wire.Bind(new(orderService.PaymentGateway), new(*paygateGateway.Gateway)),
		wire.Bind(new(orderService.Inventory), new(*inventoryGateway.Client)),
		wire.Bind(new(orderService.Notifier), new(*notificationGateway.Notifier)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(webhookService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(webhookService.EventRepository), new(*webhookEventRepo.Repository)),
		wire.Bind(new(webhookService.OrderLedger), new(*orderService.Service)),
		wire.Bind(new(webhookService.TxManager), new(*tx.Manager)),

		wire.Bind(new(refundService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(refundService.PaymentRepository), new(*paymentRepo.Repository)),
		wire.Bind(new(refundService.RefundGateway), new(*paygateGateway.Gateway)),
		wire.Bind(new(refundService.Inventory), new(*inventoryGateway.Client)),
		wire.Bind(new(refundService.Auditor), new(*auditGateway.Recorder)),
		wire.Bind(new(refundService.TxManager), new(*tx.Manager)),
	)
	return &Application{}, nil
}

type ReconciliationWorkerApp struct {
	BackgroundWorkers *background.Worker
}

// InitializeReconciliationWorkerApp для воркера сверки платежей (cmd/worker-reconciliation)
func InitializeReconciliationWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*ReconciliationWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideBreaker,
		provideInvoker,
		provideHTTPClient,

		providePaygateGateway,
		provideInventoryClient,
		provideNotifier,

		provideOrderRepository,
		providePaymentRepository,

		provideServiceOrder,

		providePaymentReconciliationTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(ReconciliationWorkerApp), "*"),

		wire.Bind(new(orderService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.PaymentRepository), new(*paymentRepo.Repository)),
		wire.Bind(new(orderService.PaymentGateway), new(*paygateGateway.Gateway)),
		wire.Bind(new(orderService.Inventory), new(*inventoryGateway.Client)),
		wire.Bind(new(orderService.Notifier), new(*notificationGateway.Notifier)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(payment_reconciliation.Service), new(*orderService.Service)),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideBreaker() *breaker.Breaker {
	return breaker.New(breakerThreshold, breakerCooldown)
}

func provideInvoker(circuits *breaker.Breaker) *resilience.Invoker {
	return resilience.New(circuits)
}

func provideHTTPClient() *http.Client {
	return &http.Client{Timeout: httpClientTimeout}
}

func providePaygateGateway(client *http.Client, invoker *resilience.Invoker, cfg *config.Config) *paygateGateway.Gateway {
	return paygateGateway.New(client, invoker, cfg.Gateway.BaseURL, cfg.Gateway.SecretKey)
}

func provideInventoryClient(client *http.Client, invoker *resilience.Invoker, cfg *config.Config) *inventoryGateway.Client {
	return inventoryGateway.New(client, invoker, cfg.Inventory.BaseURL)
}

func provideNotifier(producer sarama.SyncProducer, cfg *config.Config) *notificationGateway.Notifier {
	return notificationGateway.New(producer, cfg.Kafka.NotificationsTopic)
}

func provideAuditRecorder(producer sarama.SyncProducer, cfg *config.Config) *auditGateway.Recorder {
	return auditGateway.New(producer, cfg.Kafka.AuditTopic)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func providePaymentRepository(querier *querier.Querier) *paymentRepo.Repository {
	return paymentRepo.New(querier)
}

func provideWebhookEventRepository(querier *querier.Querier) *webhookEventRepo.Repository {
	return webhookEventRepo.New(querier)
}

func provideServiceOrder(
	orders orderService.OrderRepository,
	payments orderService.PaymentRepository,
	gateway orderService.PaymentGateway,
	inventory orderService.Inventory,
	notifier orderService.Notifier,
	txManager orderService.TxManager,
	log logger.Logger,
	cfg *config.Config,
) *orderService.Service {
	return orderService.New(
		orders,
		payments,
		gateway,
		inventory,
		notifier,
		txManager,
		log,
		cfg.Gateway.RedirectURL,
	)
}

func provideServiceWebhook(
	orders webhookService.OrderRepository,
	events webhookService.EventRepository,
	ledger webhookService.OrderLedger,
	txManager webhookService.TxManager,
	log logger.Logger,
	cfg *config.Config,
) *webhookService.Service {
	return webhookService.New(
		orders,
		events,
		ledger,
		txManager,
		log,
		cfg.Gateway.WebhookSecret,
	)
}

func provideServiceRefund(
	orders refundService.OrderRepository,
	payments refundService.PaymentRepository,
	gateway refundService.RefundGateway,
	inventory refundService.Inventory,
	auditor refundService.Auditor,
	txManager refundService.TxManager,
	log logger.Logger,
) *refundService.Service {
	return refundService.New(
		orders,
		payments,
		gateway,
		inventory,
		auditor,
		txManager,
		log,
	)
}

func providePaymentReconciliationTask(
	log logger.Logger,
	reconciler payment_reconciliation.Service,
	cfg *config.Config,
) *payment_reconciliation.PaymentReconciliation {
	return payment_reconciliation.NewPaymentReconciliation(
		log,
		reconciler,
		cfg.Tasks.PaymentReconciliationInterval,
		cfg.Tasks.PaymentReconciliationWindow,
		int64(cfg.Tasks.PaymentReconciliationLimit),
	)
}

func provideTaskList(
	reconciliationTask *payment_reconciliation.PaymentReconciliation,
) []background.Task {
	return []background.Task{
		reconciliationTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
