// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package mealdb fetches recipe listings and details from TheMealDB.
package mealdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/platform/httpx"
	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/ManuGH/recipebox/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Fetcher retrieves rawURL and decodes its JSON body into v.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, v any) error
}

// Get is the typed form of Fetcher.Fetch.
func Get[T any](ctx context.Context, f Fetcher, rawURL string) (T, error) {
	var out T
	if err := f.Fetch(ctx, rawURL, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ListResponse is the filter.php envelope. "meals": null decodes to an empty list.
type ListResponse struct {
	Meals []recipe.Summary `json:"meals"`
}

// DetailResponse is the lookup.php envelope.
type DetailResponse struct {
	Meals []recipe.Detail `json:"meals"`
}

// ListByCategory fetches the recipe summaries for a category.
func ListByCategory(ctx context.Context, f Fetcher, ep Endpoints, category string) ([]recipe.Summary, error) {
	res, err := Get[ListResponse](ctx, f, ep.RecipesList(category))
	if err != nil {
		return nil, err
	}
	return res.Meals, nil
}

// LookupDetail fetches the first detail record for id.
// An empty meals list is reported as ErrBadServerResponse.
func LookupDetail(ctx context.Context, f Fetcher, ep Endpoints, id string) (recipe.Detail, error) {
	res, err := Get[DetailResponse](ctx, f, ep.RecipeDetails(id))
	if err != nil {
		return recipe.Detail{}, err
	}
	if len(res.Meals) == 0 {
		return recipe.Detail{}, &APIError{Sentinel: ErrBadServerResponse, Operation: "lookup", Status: http.StatusOK}
	}
	return res.Meals[0], nil
}

// Client is the HTTP Fetcher. Requests are never retried.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	maxBody   int64
}

// Options configures NewClient.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	RateLimit  rate.Limit
	RateBurst  int
	MaxBody    int64
	HTTPClient *http.Client // overrides the httpx client, mainly for tests
}

const (
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 5
	defaultRateBurst = 10
	defaultMaxBody   = 4 << 20
	defaultUserAgent = "recipebox"
)

// NewClient creates a Client with an instrumented transport.
func NewClient(opts Options) *Client {
	opts = normalizeOptions(opts)
	hc := opts.HTTPClient
	if hc == nil {
		hc = httpx.NewClient(httpx.Options{
			Timeout:    opts.Timeout,
			UserAgent:  opts.UserAgent,
			Instrument: true,
		})
	}
	return &Client{
		http:      hc,
		limiter:   rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBody,
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = rate.Limit(defaultRateLimit)
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = defaultRateBurst
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = defaultMaxBody
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUserAgent
	}
	return opts
}

// Fetch performs one GET against rawURL and decodes the body into v.
func (c *Client) Fetch(ctx context.Context, rawURL string, v any) error {
	op, urlLabel := traceLabels(rawURL)
	logger := xglog.WithComponentFromContext(ctx, "mealdb")

	tracer := telemetry.Tracer("recipebox.mealdb")
	ctx, span := tracer.Start(ctx, "recipebox.mealdb.request", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		telemetry.HTTPMethodKey.String(http.MethodGet),
		telemetry.HTTPRouteKey.String(op),
		telemetry.HTTPURLKey.String(urlLabel),
	)
	defer span.End()

	fail := func(status int, err error) error {
		span.SetAttributes(telemetry.HTTPAttributes(http.MethodGet, op, urlLabel, status)...)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn().
			Err(err).
			Str(xglog.FieldOperation, op).
			Int(xglog.FieldStatus, status).
			Msg("meal api request failed")
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, wrapError(op, err, 0, nil))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fail(0, wrapError(op, err, 0, nil))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		wrapped := wrapError(op, err, 0, nil)
		recordRequest(op, 0, duration, wrapped)
		return fail(0, wrapped)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		wrapped := wrapError(op, nil, resp.StatusCode, body)
		recordRequest(op, resp.StatusCode, duration, wrapped)
		return fail(resp.StatusCode, wrapped)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBody)).Decode(v); err != nil {
		wrapped := decodeError(op, err)
		recordRequest(op, resp.StatusCode, duration, wrapped)
		return fail(resp.StatusCode, wrapped)
	}

	recordRequest(op, resp.StatusCode, duration, nil)
	span.SetAttributes(telemetry.HTTPAttributes(http.MethodGet, op, urlLabel, resp.StatusCode)...)
	span.SetStatus(codes.Ok, "")
	logger.Debug().
		Str(xglog.FieldOperation, op).
		Int(xglog.FieldStatus, resp.StatusCode).
		Dur("duration", duration).
		Msg("meal api request completed")
	return nil
}

// traceLabels returns the operation name (filter, lookup, ...) and a
// URL label without the query string.
func traceLabels(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown", "invalid"
	}
	op := strings.TrimSuffix(path.Base(u.Path), ".php")
	if op == "" || op == "." || op == "/" {
		op = "unknown"
	}
	u.RawQuery = ""
	u.User = nil
	return op, u.String()
}
