package breaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type Config struct {
	Enabled          bool          `env:"ENABLED" envDefault:"false"`
	MinRequests      uint32        `env:"MIN_REQUESTS" envDefault:"10"`
	FailureRatio     float64       `env:"FAILURE_RATIO" envDefault:"0.5"`
	OpenTimeout      time.Duration `env:"OPEN_TIMEOUT" envDefault:"30s"`
	HalfOpenMaxCalls uint32        `env:"HALF_OPEN_MAX_CALLS" envDefault:"2"`
}

// Breaker guards calls to an unreliable dependency. A nil or disabled Breaker calls through.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

// New builds a breaker named after the guarded operation. isFailure decides which
// errors count against the dependency; nil counts every error.
func New(name string, cfg Config, isFailure func(error) bool, logger *zap.Logger) *Breaker {
	if !cfg.Enabled {
		return &Breaker{}
	}
	if isFailure == nil {
		isFailure = func(error) bool { return true }
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isFailure(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("operation", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker[any](settings)}
}

func (b *Breaker) Execute(fn func() error) error {
	if b == nil || b.cb == nil {
		return fn()
	}
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

// IsOpen reports whether err was returned because the breaker rejected the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
