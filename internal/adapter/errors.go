package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned (wrapped in *HTTPError) for non-2xx responses.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRequestTimeout      = errors.New("request timeout")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrIntegrity is returned when a response body does not match its
	// HashSHA256 header.
	ErrIntegrity = errors.New("response integrity check failed")

	// ErrNoToken is returned by authenticated calls made before SetToken.
	ErrNoToken = errors.New("no bearer token set")
)

// HTTPError is a non-2xx response. It unwraps to the sentinel matching its
// status code, so callers can use errors.Is without looking at the code.
type HTTPError struct {
	StatusCode int
	Body       string
	Op         string
}

func (e *HTTPError) Error() string {
	msg := e.Body
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Op == "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, msg)
}

func (e *HTTPError) Unwrap() error {
	return sentinelForStatus(e.StatusCode)
}

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusRequestTimeout:      ErrRequestTimeout,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusGatewayTimeout:      ErrGatewayTimeout,
}

func sentinelForStatus(code int) error {
	if err, ok := statusSentinels[code]; ok {
		return err
	}
	return ErrUnexpectedStatus
}
