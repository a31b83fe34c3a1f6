// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package validate accumulates configuration errors so a bad config file is
// reported in one pass instead of one field at a time.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// LogLevels lists the accepted log level names.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Error is one failed field.
type Error struct {
	Field   string // dotted path, e.g. "api.timeout"
	Value   any
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// ValidationError bundles every Error found by a Validator.
type ValidationError struct {
	errors []Error
}

// Errors returns the individual failures in the order they were found.
func (e ValidationError) Errors() []Error {
	return e.errors
}

func (e ValidationError) Error() string {
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validator collects failures. Section returns a child that prefixes field
// names and shares the parent's error list.
type Validator struct {
	prefix string
	errs   *[]Error
}

// New returns an empty validator.
func New() *Validator {
	return &Validator{errs: new([]Error)}
}

// Section scopes field names under name ("api" turns "timeout" into "api.timeout").
func (v *Validator) Section(name string) *Validator {
	return &Validator{prefix: v.field(name) + ".", errs: v.errs}
}

func (v *Validator) field(name string) string {
	return v.prefix + name
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string, value any) {
	*v.errs = append(*v.errs, Error{Field: v.field(field), Value: value, Message: message})
}

func (v *Validator) addf(field string, value any, format string, args ...any) {
	v.AddError(field, fmt.Sprintf(format, args...), value)
}

// IsValid reports whether nothing has failed so far.
func (v *Validator) IsValid() bool {
	return len(*v.errs) == 0
}

// Errors returns the failures recorded so far.
func (v *Validator) Errors() []Error {
	return *v.errs
}

// Err returns nil or a ValidationError holding a copy of the failures.
func (v *Validator) Err() error {
	if v.IsValid() {
		return nil
	}
	return ValidationError{errors: slices.Clone(*v.errs)}
}

// URL requires an absolute URL with a host and one of schemes.
func (v *Validator) URL(field, value string, schemes []string) {
	if value == "" {
		v.AddError(field, "URL cannot be empty", value)
		return
	}
	u, err := url.Parse(value)
	if err != nil {
		v.addf(field, value, "invalid URL: %v", err)
		return
	}
	if u.Host == "" {
		v.AddError(field, "URL must have a host", value)
		return
	}
	if len(schemes) > 0 && !slices.Contains(schemes, u.Scheme) {
		v.addf(field, value, "unsupported URL scheme %q (allowed: %v)", u.Scheme, schemes)
	}
}

// Port requires 1..65535.
func (v *Validator) Port(field string, port int) {
	if port < 1 || port > 65535 {
		v.addf(field, port, "port must be between 1 and 65535, got %d", port)
	}
}

// ListenAddr requires host:port with a numeric port. Empty means disabled.
func (v *Validator) ListenAddr(field, addr string) {
	if addr == "" {
		return
	}
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		v.addf(field, addr, "invalid listen address: %v", err)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.addf(field, addr, "invalid port %q", portStr)
		return
	}
	v.Port(field, port)
}

// Range requires minVal <= value <= maxVal.
func (v *Validator) Range(field string, value, minVal, maxVal int) {
	if value < minVal || value > maxVal {
		v.addf(field, value, "value must be between %d and %d, got %d", minVal, maxVal, value)
	}
}

// FloatRange requires minVal <= value <= maxVal.
func (v *Validator) FloatRange(field string, value, minVal, maxVal float64) {
	if value < minVal || value > maxVal {
		v.addf(field, value, "value must be between %g and %g, got %g", minVal, maxVal, value)
	}
}

// NotEmpty rejects empty and whitespace-only strings.
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

func (v *Validator) OneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.addf(field, value, "value must be one of %v, got %q", allowed, value)
	}
}

func (v *Validator) Positive(field string, value int) {
	if value <= 0 {
		v.addf(field, value, "value must be positive, got %d", value)
	}
}

func (v *Validator) PositiveFloat(field string, value float64) {
	if value <= 0 {
		v.addf(field, value, "value must be positive, got %g", value)
	}
}

func (v *Validator) PositiveDuration(field string, value time.Duration) {
	if value <= 0 {
		v.addf(field, value, "duration must be positive, got %s", value)
	}
}
