package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"payments/internal/entities"
	"payments/internal/gateway/http/transport"
	"payments/pkg/breaker"
	retrierconfig "payments/pkg/retrier"
)

const (
	serviceName = "paygate"

	circuitKeyCard        = "gateway-card"
	circuitKeyMobileMoney = "gateway-mobile-money"
	circuitKeyVerify      = "gateway-verify"
	circuitKeyRefund      = "gateway-refund"

	createPaymentTimeout = 30 * time.Second
	verifyTimeout        = 15 * time.Second
	refundTimeout        = 30 * time.Second

	initialInterval = 1 * time.Second
	maxInterval     = 5 * time.Second
	randomization   = 0.3
	multiplier      = 2.0
	maxRetries      = 3
)

type Gateway struct {
	client    httpDoer
	invoker   invoker
	baseURL   string
	secretKey string
}

func New(client httpDoer, invoker invoker, baseURL, secretKey string) *Gateway {
	return &Gateway{
		client:    client,
		invoker:   invoker,
		baseURL:   baseURL,
		secretKey: secretKey,
	}
}

type chargeEndpoint struct {
	path    string
	payload func(req entities.ChargeRequest) any
}

// Сети мобильных денег различаются endpoint-ом и форматом charge-запроса,
// при этом разные сети могут делить один endpoint.
var mobileMoneyEndpoints = map[entities.MobileMoneyNetwork]chargeEndpoint{
	entities.NetworkMTN: {
		path:    "/charges?type=mobile_money_ghana",
		payload: ghanaMobileMoneyPayload,
	},
	entities.NetworkAirtel: {
		path:    "/charges?type=mobile_money_ghana",
		payload: ghanaMobileMoneyPayload,
	},
	entities.NetworkMpesa: {
		path:    "/charges?type=mpesa",
		payload: mpesaPayload,
	},
}

// CreatePayment инициирует платеж в шлюзе и возвращает нормализованный результат.
func (g *Gateway) CreatePayment(ctx context.Context, req entities.ChargeRequest) (*entities.PaymentInitiation, error) {
	var (
		circuitKey string
		path       string
		payload    any
	)

	switch req.Method {
	case entities.MethodCard:
		circuitKey = circuitKeyCard
		path = "/payments"
		payload = hostedCheckoutPayload(req)
	case entities.MethodMobileMoney:
		endpoint, ok := mobileMoneyEndpoints[req.Details.Network]
		if !ok {
			return nil, fmt.Errorf("%w: %w: %q", ErrPaymentInitiation, ErrUnsupportedNetwork, req.Details.Network)
		}
		circuitKey = circuitKeyMobileMoney
		path = endpoint.path
		payload = endpoint.payload(req)
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrPaymentInitiation, req.Method)
	}

	var resp gatewayResponse
	err := g.executeWithMetrics(ctx, circuitKey, "CreatePayment", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodPost, path, payload, createPaymentTimeout, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPaymentInitiation, err)
	}

	return &entities.PaymentInitiation{
		Status:       resp.Status,
		ExternalRef:  resp.Data.Ref,
		CheckoutLink: resp.Data.Link,
	}, nil
}

// VerifyTransaction запрашивает у шлюза фактическое состояние транзакции.
func (g *Gateway) VerifyTransaction(ctx context.Context, externalRef string) (*entities.GatewayVerification, error) {
	var resp verifyResponse
	path := fmt.Sprintf("/transactions/%s/verify", externalRef)

	err := g.executeWithMetrics(ctx, circuitKeyVerify, "VerifyTransaction", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodGet, path, nil, verifyTimeout, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrVerification, externalRef, err)
	}

	return &entities.GatewayVerification{
		TransactionID: resp.Data.ID,
		OrderNumber:   resp.Data.TxRef,
		Status:        resp.Data.Status,
		Amount:        resp.Data.Amount,
		Currency:      resp.Data.Currency,
	}, nil
}

// RefundTransaction проводит возврат в шлюзе. amount в минорных единицах.
func (g *Gateway) RefundTransaction(ctx context.Context, externalRef string, amount int64, reason string) (*entities.GatewayRefund, error) {
	payload := map[string]any{
		"amount":   amount,
		"comments": reason,
	}
	path := fmt.Sprintf("/transactions/%s/refund", externalRef)

	var resp refundResponse
	err := g.executeWithMetrics(ctx, circuitKeyRefund, "RefundTransaction", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodPost, path, payload, refundTimeout, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRefund, externalRef, err)
	}

	return &entities.GatewayRefund{
		RefundID: resp.Data.ID,
		Status:   resp.Data.Status,
		Amount:   resp.Data.Amount,
	}, nil
}

func (g *Gateway) executeWithMetrics(ctx context.Context, circuitKey, method string, fn func(context.Context) error) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     transport.IsRetryable,
	}

	var attempt uint64
	start := time.Now()

	err := g.invoker.Execute(ctx, circuitKey, retryConfig, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	outcome := errorOutcome(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, outcome).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, outcome).Inc()
	}
	if errors.Is(err, breaker.ErrCircuitOpen) {
		GatewayCircuitOpenTotal.WithLabelValues(serviceName, circuitKey).Inc()
	}

	return err
}

// doJSON выполняет один HTTP вызов шлюза со своим таймаутом на попытку.
func (g *Gateway) doJSON(ctx context.Context, method, path string, payload any, timeout time.Duration, out any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &transport.StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}

func errorOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, breaker.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Sprintf("http_%d", statusErr.Code)
		}
		return "error"
	}
}
