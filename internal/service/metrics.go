package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	resultSuccess   = "success"
	resultRejected  = "rejected"
	resultForbidden = "forbidden"
	resultError     = "error"

	instrumentationName = "github.com/ajaymaurya90/ecompointer-backend/internal/service"
)

type authMetrics struct {
	loginAttempts   metric.Int64Counter
	refreshAttempts metric.Int64Counter
	registrations   metric.Int64Counter
}

func newAuthMetrics(provider metric.MeterProvider) (*authMetrics, error) {
	meter := provider.Meter(instrumentationName)

	loginAttempts, err := meter.Int64Counter("auth.login.attempts",
		metric.WithDescription("Login attempts by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create login counter: %w", err)
	}

	refreshAttempts, err := meter.Int64Counter("auth.refresh.attempts",
		metric.WithDescription("Refresh token rotations by result"))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh counter: %w", err)
	}

	registrations, err := meter.Int64Counter("auth.registrations",
		metric.WithDescription("Completed brand-owner registrations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create registration counter: %w", err)
	}

	return &authMetrics{
		loginAttempts:   loginAttempts,
		refreshAttempts: refreshAttempts,
		registrations:   registrations,
	}, nil
}

func (m *authMetrics) login(ctx context.Context, err error) {
	m.loginAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", resultOf(err))))
}

func (m *authMetrics) refresh(ctx context.Context, err error) {
	m.refreshAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", resultOf(err))))
}

func (m *authMetrics) registered(ctx context.Context) {
	m.registrations.Add(ctx, 1)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, ErrForbidden):
		return resultForbidden
	case errors.Is(err, ErrUnauthorized):
		return resultRejected
	default:
		return resultError
	}
}
