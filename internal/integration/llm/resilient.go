package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	pkgRetry "github.com/futig/wanderlust-backend/internal/pkg/retry"
	pkghttp "github.com/futig/wanderlust-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerName = "llm-provider"

var _ Connector = &ResilientConnector{}

// ResilientConnector retries transient provider failures inside a circuit breaker
type ResilientConnector struct {
	next     Connector
	breaker  *gobreaker.CircuitBreaker[any]
	retryCfg pkgRetry.RetryConfig
	logger   *zap.Logger
}

func NewResilientConnector(next Connector, cfg config.LLMConfig, logger *zap.Logger) *ResilientConnector {
	bc := cfg.Breaker
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bc.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
		// Malformed output and caller cancellation say nothing about provider health
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, entity.ErrModelOutput) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &ResilientConnector{
		next:     next,
		breaker:  breaker,
		retryCfg: cfg.Retry,
		logger:   logger,
	}
}

func (r *ResilientConnector) SuggestDestinations(ctx context.Context, req *entity.SuggestDestinationsRequest) (
	*entity.SuggestDestinationsResponse, error,
) {
	return execute(ctx, r, FlowSuggest, func(ctx context.Context) (*entity.SuggestDestinationsResponse, error) {
		return r.next.SuggestDestinations(ctx, req)
	})
}

func (r *ResilientConnector) DescribeDestination(ctx context.Context, req *entity.DestinationBriefRequest) (
	*entity.DestinationBriefResponse, error,
) {
	return execute(ctx, r, FlowBrief, func(ctx context.Context) (*entity.DestinationBriefResponse, error) {
		return r.next.DescribeDestination(ctx, req)
	})
}

// State exposes the breaker state for health reporting
func (r *ResilientConnector) State() gobreaker.State {
	return r.breaker.State()
}

func execute[T any](ctx context.Context, r *ResilientConnector, flow string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()

	opts := append(r.retryCfg.ToRetryOptions(IsTransient),
		retry.Context(ctx),
		retry.OnRetry(func(attempt uint, err error) {
			metrics.LLMRetriesTotal.WithLabelValues(flow).Inc()
			ctxzap.Warn(ctx, "retrying model call",
				zap.String("flow", flow),
				zap.Uint("attempt", attempt+1),
				zap.Error(err),
			)
		}),
	)

	result, err := r.breaker.Execute(func() (any, error) {
		return retry.DoWithData(func() (T, error) { return fn(ctx) }, opts...)
	})
	metrics.LLMCallDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.LLMCallsTotal.WithLabelValues(flow, "rejected").Inc()
			return zero, fmt.Errorf("%w: %v", entity.ErrModelUnavailable, err)
		}
		metrics.LLMCallsTotal.WithLabelValues(flow, "error").Inc()
		return zero, err
	}

	metrics.LLMCallsTotal.WithLabelValues(flow, "success").Inc()
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected model result type %T", result)
	}
	return typed, nil
}

// IsTransient reports whether a provider error is worth retrying
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, entity.ErrModelOutput) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}

	return pkghttp.IsTransient(err)
}
