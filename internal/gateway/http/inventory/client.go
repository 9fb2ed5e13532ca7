package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"payments/internal/gateway/http/transport"
	retrierconfig "payments/pkg/retrier"
)

const (
	circuitKey = "inventory"

	requestTimeout = 5 * time.Second

	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	randomization   = 0.3
	multiplier      = 2.0
	maxRetries      = 3
)

// Client - клиент внешнего inventory-сервиса. Ядро только возвращает сток
// (отмена, возврат), списание при размещении заказа делает витрина.
type Client struct {
	client  httpDoer
	invoker invoker
	baseURL string
}

func New(client httpDoer, invoker invoker, baseURL string) *Client {
	return &Client{
		client:  client,
		invoker: invoker,
		baseURL: baseURL,
	}
}

type stockAdjustment struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (c *Client) Increment(ctx context.Context, productID, quantity int64) error {
	if err := c.post(ctx, "/stock/increment", stockAdjustment{ProductID: productID, Quantity: quantity}); err != nil {
		return fmt.Errorf("inventory increment product %d: %w", productID, err)
	}
	return nil
}

func (c *Client) Decrement(ctx context.Context, productID, quantity int64) error {
	if err := c.post(ctx, "/stock/decrement", stockAdjustment{ProductID: productID, Quantity: quantity}); err != nil {
		return fmt.Errorf("inventory decrement product %d: %w", productID, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload stockAdjustment) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     transport.IsRetryable,
	}

	return c.invoker.Execute(ctx, circuitKey, retryConfig, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal adjustment: %w", err)
		}

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("inventory call: %w", err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode >= http.StatusBadRequest {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return &transport.StatusError{Code: resp.StatusCode, Body: string(body)}
		}
		return nil
	})
}
