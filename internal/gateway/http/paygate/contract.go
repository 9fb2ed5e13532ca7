//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=paygate_test
package paygate

import (
	"context"
	"net/http"

	"payments/pkg/retrier"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type invoker interface {
	Execute(ctx context.Context, key string, config retrier.Config, fn func(context.Context) error) error
}
