package resilience

import (
	"context"

	"payments/pkg/breaker"
	"payments/pkg/retrier"
	"payments/pkg/retrier/backoff_adapter"
)

// Invoker выполняет операцию с ретраями внутри одного circuit-breaker вызова:
// полностью исчерпанная серия ретраев считается одним отказом, а не MaxRetries отказами.
type Invoker struct {
	circuits *breaker.Breaker
}

func New(circuits *breaker.Breaker) *Invoker {
	return &Invoker{circuits: circuits}
}

func (i *Invoker) Execute(ctx context.Context, key string, config retrier.Config, fn func(context.Context) error) error {
	if err := i.circuits.Acquire(key); err != nil {
		return err
	}

	err := backoff_adapter.New(config).ExecuteWithContext(ctx, fn)
	i.circuits.Report(key, err)
	return err
}
