package breaker

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit open")

// circuitState хранится по одному на каждый внешний dependency key.
type circuitState struct {
	failures    int
	lastFailure time.Time
	open        bool
	probing     bool
}

// Breaker - потокобезопасное хранилище circuit breaker состояний по ключам.
// Состояние живет только в памяти процесса, после рестарта все circuits закрыты.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	states    map[string]*circuitState
}

func New(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		states:    make(map[string]*circuitState),
	}
}

// Acquire проверяет можно ли выполнять вызов по данному ключу.
// Возвращает ErrCircuitOpen если circuit открыт и cooldown еще не прошел,
// либо half-open проба уже выдана другому вызову.
func (b *Breaker) Acquire(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.state(key)
	if !state.open {
		return nil
	}

	if time.Since(state.lastFailure) < b.cooldown {
		return ErrCircuitOpen
	}

	// cooldown прошел - выдаем ровно одну пробу
	if state.probing {
		return ErrCircuitOpen
	}
	state.probing = true
	return nil
}

// Report фиксирует результат вызова, ранее разрешенного через Acquire.
func (b *Breaker) Report(key string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.state(key)
	state.probing = false

	if err == nil {
		state.failures = 0
		state.open = false
		return
	}

	state.failures++
	state.lastFailure = time.Now()
	if state.failures >= b.threshold {
		state.open = true
	}
}

func (b *Breaker) state(key string) *circuitState {
	state, ok := b.states[key]
	if !ok {
		state = &circuitState{}
		b.states[key] = state
	}
	return state
}
