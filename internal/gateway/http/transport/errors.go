package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// StatusError - ответ внешнего сервиса с HTTP кодом >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("responded %d: %s", e.Code, e.Body)
}

// IsRetryable относит ошибку к временным: сетевые сбои, таймауты, 5xx и 429.
// Остальные 4xx - ошибки клиента, ретраить их бессмысленно.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError ||
			statusErr.Code == http.StatusTooManyRequests
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
