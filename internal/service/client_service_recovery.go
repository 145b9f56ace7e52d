// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// RecoverableKind classifies a failure that is worth retrying.
type RecoverableKind int

const (
	KindTimeout RecoverableKind = iota + 1
	KindUnavailable
	KindServerError
	KindRateLimited
	KindTemporary
)

func (k RecoverableKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindUnavailable:
		return "unavailable"
	case KindServerError:
		return "server error"
	case KindRateLimited:
		return "rate limited"
	case KindTemporary:
		return "temporary"
	default:
		return "unknown"
	}
}

// Recoverable is the result of classifying a failure. StatusCode is set for
// HTTP failures.
type Recoverable struct {
	Kind       RecoverableKind
	StatusCode int
}

// RetryPolicy bounds the retries of one failure kind.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

// Delay returns the wait before retry number attempt (1-based):
// min(BaseDelay * Multiplier^(attempt-1), MaxDelay).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if d >= float64(p.MaxDelay) || math.IsInf(d, 0) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// RetryPolicies assigns a policy to every kind: Aggressive to timeouts and
// unavailability, Default to server errors and temporary failures,
// Conservative to rate limiting.
type RetryPolicies struct {
	Aggressive   RetryPolicy
	Default      RetryPolicy
	Conservative RetryPolicy
}

// DefaultRetryPolicies returns the production policies.
func DefaultRetryPolicies() RetryPolicies {
	return RetryPolicies{
		Aggressive:   RetryPolicy{MaxRetries: 5, BaseDelay: 500 * time.Millisecond, MaxDelay: 60 * time.Second, Multiplier: 2.5},
		Default:      RetryPolicy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 30 * time.Second, Multiplier: 2},
		Conservative: RetryPolicy{MaxRetries: 2, BaseDelay: 5 * time.Second, MaxDelay: 120 * time.Second, Multiplier: 3},
	}
}

// For returns the policy applied to kind.
func (p RetryPolicies) For(kind RecoverableKind) RetryPolicy {
	switch kind {
	case KindTimeout, KindUnavailable:
		return p.Aggressive
	case KindRateLimited:
		return p.Conservative
	default:
		return p.Default
	}
}

// NetworkRecoveryManager retries remote operations according to the kind
// of their failures.
type NetworkRecoveryManager struct {
	policies RetryPolicies
}

// RecoveryOption configures a NetworkRecoveryManager.
type RecoveryOption func(*NetworkRecoveryManager)

// WithPolicies replaces the default retry policies.
func WithPolicies(p RetryPolicies) RecoveryOption {
	return func(m *NetworkRecoveryManager) {
		m.policies = p
	}
}

func NewNetworkRecoveryManager(opts ...RecoveryOption) *NetworkRecoveryManager {
	m := &NetworkRecoveryManager{policies: DefaultRetryPolicies()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policies returns the policies in use.
func (m *NetworkRecoveryManager) Policies() RetryPolicies {
	return m.policies
}

// Classify reports whether err is worth retrying and how. Auth, validation
// and client-side HTTP errors are not recoverable.
func (m *NetworkRecoveryManager) Classify(err error) (Recoverable, bool) {
	if err == nil || errors.Is(err, context.Canceled) {
		return Recoverable{}, false
	}

	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		return classifyStatus(httpErr.StatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Recoverable{Kind: KindTimeout}, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Recoverable{Kind: KindTimeout}, true
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, syscall.EHOSTUNREACH):
		return Recoverable{Kind: KindUnavailable}, true
	case errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF),
		errors.Is(err, syscall.EPIPE):
		return Recoverable{Kind: KindTemporary}, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return Recoverable{Kind: KindUnavailable}, true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Recoverable{Kind: KindUnavailable}, true
	}

	return Recoverable{}, false
}

func classifyStatus(code int) (Recoverable, bool) {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return Recoverable{Kind: KindTimeout, StatusCode: code}, true
	case code == http.StatusServiceUnavailable:
		return Recoverable{Kind: KindUnavailable, StatusCode: code}, true
	case code == http.StatusTooManyRequests:
		return Recoverable{Kind: KindRateLimited, StatusCode: code}, true
	case code >= http.StatusInternalServerError:
		return Recoverable{Kind: KindServerError, StatusCode: code}, true
	default:
		return Recoverable{}, false
	}
}

// ExecuteWithRetry runs op until it succeeds, fails with an error that is
// not recoverable, or exhausts the policy of its latest failure kind. The
// returned error is the last failure of op, or ctx.Err() when ctx ends
// during a backoff sleep.
func (m *NetworkRecoveryManager) ExecuteWithRetry(ctx context.Context, name string, op func(ctx context.Context) error) error {
	_, err := Retry(ctx, m, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Retry is ExecuteWithRetry for operations returning a value.
func Retry[T any](ctx context.Context, m *NetworkRecoveryManager, name string, op func(ctx context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)

	var (
		last     Recoverable
		lastErr  error
		attempts int
		retries  = make(map[RecoverableKind]int)
	)

	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		policy := m.policies.For(last.Kind)
		retries[last.Kind]++
		n := retries[last.Kind]
		if n > policy.MaxRetries {
			log.Warn().
				Err(lastErr).
				Str("op", name).
				Str("kind", last.Kind.String()).
				Int("attempts", attempts).
				Msg("retries exhausted")
			return 0, true
		}

		delay := policy.Delay(n)
		log.Debug().
			Err(lastErr).
			Str("op", name).
			Str("kind", last.Kind.String()).
			Int("attempt", attempts).
			Dur("delay", delay).
			Msg("retrying remote operation")
		return delay, false
	})

	return retry.DoValue(ctx, backoff, func(ctx context.Context) (T, error) {
		attempts++
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if ctx.Err() != nil {
			return v, err
		}

		rec, ok := m.Classify(err)
		if !ok {
			return v, err
		}
		last, lastErr = rec, err
		return v, retry.RetryableError(err)
	})
}

// describe wraps a recoverable failure that survived its retries in a
// *NetworkError. Other errors are returned unchanged.
func (m *NetworkRecoveryManager) describe(err error) error {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return err
	}
	if rec, ok := m.Classify(err); ok {
		return &NetworkError{Kind: rec.Kind, Err: err}
	}
	return err
}
