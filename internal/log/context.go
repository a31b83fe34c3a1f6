// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package log wraps zerolog for recipebox. Every load carries a request id in
// its context; a CLI command that starts several loads shares one
// correlation id across them.
package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	correlationIDKey
)

func withID(ctx context.Context, key ctxKey, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, id)
}

func idFrom(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(key).(string)
	return id
}

// ContextWithRequestID tags ctx with the id of a single load.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withID(ctx, requestIDKey, id)
}

// ContextWithCorrelationID tags ctx with an id shared by related loads.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withID(ctx, correlationIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	return idFrom(ctx, requestIDKey)
}

func CorrelationIDFromContext(ctx context.Context) string {
	return idFrom(ctx, correlationIDKey)
}

// WithContext adds the request and correlation ids found in ctx to logger.
// logger is returned unchanged when ctx carries neither.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	rid, cid := RequestIDFromContext(ctx), CorrelationIDFromContext(ctx)
	if rid == "" && cid == "" {
		return logger
	}
	c := logger.With()
	if rid != "" {
		c = c.Str(FieldRequestID, rid)
	}
	if cid != "" {
		c = c.Str(FieldCorrelationID, cid)
	}
	return c.Logger()
}

// WithComponentFromContext is WithComponent plus the ids in ctx.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	return WithContext(ctx, WithComponent(component))
}

// FromContext returns the logger attached to ctx with zerolog's WithContext,
// or the base logger, enriched with the ids in ctx.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := Base()
	if ctx != nil {
		if attached := zerolog.Ctx(ctx); attached.GetLevel() != zerolog.Disabled {
			l = *attached
		}
	}
	l = WithContext(ctx, l)
	return &l
}
