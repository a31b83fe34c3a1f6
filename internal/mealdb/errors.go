// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mealdb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrUpstreamUnavailable = errors.New("host unreachable or transport failure")
	ErrBadServerResponse   = errors.New("bad server response")
	ErrTimeout             = errors.New("request timed out")
	ErrDecode              = errors.New("response could not be decoded")
)

// APIError wraps one of the sentinels with request context.
type APIError struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error // lower-level cause (net.Error, json error, ...)
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("mealdb: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Err}
}

const maxErrorBody = 256

var secretPattern = regexp.MustCompile(`(?i)(api[_-]?key|token|password)=([^&\s"]+)`)

// wrapError maps a transport error or HTTP status to an APIError. A
// cancelled caller is not an upstream failure: it comes back as op plus
// context.Canceled, without the transport wrapper.
func wrapError(op string, err error, status int, body []byte) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("mealdb: %s: %w", op, context.Canceled)
	}
	e := &APIError{Operation: op, Status: status, Err: err}
	switch {
	case err != nil && isTimeout(err):
		e.Sentinel = ErrTimeout
	case err != nil:
		e.Sentinel = ErrUpstreamUnavailable
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		e.Sentinel = ErrBadServerResponse
	default:
		e.Sentinel = ErrUpstreamUnavailable
	}
	if len(body) > 0 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		e.Body = secretPattern.ReplaceAllString(string(body), "$1=[REDACTED]")
	}
	return e
}

func decodeError(op string, err error) error {
	return &APIError{Sentinel: ErrDecode, Operation: op, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
