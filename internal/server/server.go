// Package server exposes the pricing engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/plan-pricing/internal/cache"
	"github.com/iwvelando/plan-pricing/internal/metrics"
	"github.com/iwvelando/plan-pricing/internal/tracing"
	"github.com/iwvelando/plan-pricing/pkg/constants"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
	"github.com/iwvelando/plan-pricing/pkg/schedule"
	"github.com/iwvelando/plan-pricing/pkg/words"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	cache          cache.Cache
	cacheTTL       time.Duration
}

// Option customises NewHandler.
type Option func(*handler)

// WithCache stores /api/calculate responses in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(h *handler) {
		if c != nil {
			h.cache = c
		}
		h.cacheTTL = ttl
	}
}

// NewHandler constructs the HTTP handler that serves the pricing API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		cache:          cache.Noop{},
		cacheTTL:       constants.DefaultCacheTTLSeconds * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()

	// Price a plan
	mux.HandleFunc("/api/calculate", h.instrument("/api/calculate", h.handleCalculate))

	// Price a plan and expand it into a written payment schedule
	mux.HandleFunc("/api/generate-plan", h.instrument("/api/generate-plan", h.handleGeneratePlan))

	mux.HandleFunc("/api/version", h.instrument("/api/version", h.handleVersion))
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type calculateResponse struct {
	OK   bool               `json:"ok"`
	Data pricing.PlanResult `json:"data"`
}

type generatePlanResponse struct {
	OK       bool             `json:"ok"`
	Schedule []schedule.Entry `json:"schedule"`
	Totals   schedule.Totals  `json:"totals"`
	Meta     pricing.PlanMeta `json:"meta"`
}

type errorResponse struct {
	Error     errorDetail `json:"error"`
	Timestamp string      `json:"timestamp"`
}

type errorDetail struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ctx, span := tracing.Tracer().Start(r.Context(), op)
	defer span.End()

	var req pricingRequest
	if apiErr := h.decode(w, r, &req); apiErr != nil {
		h.fail(ctx, w, apiErr, op)
		return
	}
	mode, std, inputs, apiErr := req.check()
	if apiErr != nil {
		h.fail(ctx, w, apiErr, op)
		return
	}
	span.SetAttributes(attribute.String("pricing.mode", mode.String()))

	key, canonical, keyErr := calculateKey(mode, std, inputs)
	if keyErr == nil {
		if entry, ok := h.cache.Get(ctx, key); ok {
			if cached, ok := cache.Open(entry, canonical); ok {
				metrics.CacheLookups.WithLabelValues("hit").Inc()
				span.SetAttributes(attribute.Bool("cache.hit", true))
				h.writeRaw(w, http.StatusOK, cached)
				return
			}
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	} else {
		h.logger.Warn("failed to derive cache key",
			zap.String("op", op),
			zap.Error(keyErr),
		)
	}

	result, err := h.calculate(ctx, mode, std, inputs)
	if err != nil {
		status, _ := engineError(err)
		h.fail(ctx, w, &apiError{status: status, message: err.Error()}, op)
		return
	}

	body, err := json.Marshal(calculateResponse{OK: true, Data: result})
	if err != nil {
		h.fail(ctx, w, &apiError{status: http.StatusInternalServerError, message: "Internal error during calculation"}, op)
		return
	}
	if keyErr == nil {
		h.cache.Set(ctx, key, cache.Seal(canonical, body), h.cacheTTL)
	}
	h.writeRaw(w, http.StatusOK, body)
}

func (h *handler) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGeneratePlan"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ctx, span := tracing.Tracer().Start(r.Context(), op)
	defer span.End()

	var req generatePlanRequest
	if apiErr := h.decode(w, r, &req); apiErr != nil {
		h.fail(ctx, w, apiErr, op)
		return
	}
	mode, std, inputs, apiErr := req.check()
	if apiErr != nil {
		h.fail(ctx, w, apiErr, op)
		return
	}
	contract, dated, apiErr := req.contractDate()
	if apiErr != nil {
		h.fail(ctx, w, apiErr, op)
		return
	}

	tag := words.Negotiate(req.Language, req.LanguageForWrittenAmounts, r.Header.Get("Accept-Language"))
	span.SetAttributes(
		attribute.String("pricing.mode", mode.String()),
		attribute.String("words.language", tag.String()),
	)

	result, err := h.calculate(ctx, mode, std, inputs)
	if err != nil {
		status, _ := engineError(err)
		h.fail(ctx, w, &apiError{status: status, message: err.Error()}, op)
		return
	}

	speller := spellerFor(tag, req.Currency)
	plan, err := schedule.Build(result, inputs, speller)
	if err != nil {
		status, _ := engineError(err)
		if status == http.StatusInternalServerError {
			h.fail(ctx, w, &apiError{status: status, message: "Internal error during plan generation"}, op)
			return
		}
		h.fail(ctx, w, &apiError{status: status, message: err.Error()}, op)
		return
	}

	if dated {
		plan.SetDueDates(contract)
	}

	entries := plan.Schedule
	if entries == nil {
		entries = []schedule.Entry{}
	}

	h.loggerFor(ctx).Info("plan generated",
		zap.String("op", op),
		zap.String("mode", mode.String()),
		zap.String("language", tag.String()),
		zap.Int("entries", plan.Totals.Count),
		zap.Float64("totalNominal", plan.Totals.TotalNominal),
	)

	w.Header().Set("Content-Language", speller.Tag().String())
	h.writeJSON(w, http.StatusOK, generatePlanResponse{
		OK:       true,
		Schedule: entries,
		Totals:   plan.Totals,
		Meta:     plan.Meta,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// calculate runs the engine inside a span and records metrics.
func (h *handler) calculate(ctx context.Context, mode pricing.Mode, std pricing.StandardPlan, in pricing.PlanInputs) (pricing.PlanResult, error) {
	const op = "server.calculate"
	ctx, span := tracing.Tracer().Start(ctx, "pricing.Calculate",
		trace.WithAttributes(attribute.String("pricing.mode", mode.String())),
	)
	defer span.End()

	start := time.Now()
	result, err := pricing.Calculate(mode, std, in)
	metrics.Calculations.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		_, errorType := engineError(err)
		metrics.CalculationErrors.WithLabelValues(mode.String(), errorType).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, errorType)
		return result, err
	}

	span.SetAttributes(
		attribute.Float64("pricing.total_nominal_price", result.TotalNominalPrice),
		attribute.Float64("pricing.calculated_pv", result.CalculatedPV),
		attribute.Bool("pricing.feasible", result.Meta.Feasible),
	)
	if !result.Meta.Feasible {
		for _, d := range result.Meta.Diagnostics {
			metrics.InfeasiblePlans.WithLabelValues(mode.String(), string(d)).Inc()
		}
		h.loggerFor(ctx).Warn("plan priced with clamped installments",
			zap.String("op", op),
			zap.String("mode", mode.String()),
			zap.Any("diagnostics", result.Meta.Diagnostics),
		)
	}
	return result, nil
}

// calculateKey returns the cache key of a pricing request and the canonical
// encoding stored alongside the cached response.
func calculateKey(mode pricing.Mode, std pricing.StandardPlan, in pricing.PlanInputs) (string, []byte, error) {
	canonical, err := json.Marshal(struct {
		Mode    pricing.Mode         `json:"mode"`
		StdPlan pricing.StandardPlan `json:"stdPlan"`
		Inputs  pricing.PlanInputs   `json:"inputs"`
	}{mode, std, in})
	if err != nil {
		return "", nil, err
	}
	return cache.Key("calculate", canonical), canonical, nil
}

// spellerFor appends the currency, when one is given, to English amounts.
// Arabic amounts already name their currency.
func spellerFor(tag language.Tag, currency string) words.Speller {
	speller := words.For(tag)
	currency = strings.TrimSpace(currency)
	if speller.Tag() == language.Arabic || currency == "" {
		return speller
	}
	return currencySpeller{Speller: speller, currency: currency}
}

type currencySpeller struct {
	words.Speller
	currency string
}

func (s currencySpeller) Spell(amount float64) (string, error) {
	written, err := s.Speller.Spell(amount)
	if err != nil || written == "" {
		return written, err
	}
	return written + " " + s.currency, nil
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) *apiError {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return &apiError{
				status:  http.StatusRequestEntityTooLarge,
				message: fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize),
			}
		}
		return &apiError{status: http.StatusBadRequest, message: fmt.Sprintf("failed to decode request: %v", err)}
	}
	return nil
}

func (h *handler) fail(ctx context.Context, w http.ResponseWriter, apiErr *apiError, op string) {
	span := trace.SpanFromContext(ctx)
	span.SetStatus(codes.Error, apiErr.message)
	span.SetAttributes(attribute.Int("http.status_code", apiErr.status))
	h.respondErrorWithOp(ctx, w, apiErr.status, apiErr.message, apiErr.details, op)
}

func (h *handler) respondErrorWithOp(ctx context.Context, w http.ResponseWriter, status int, msg string, details any, op string) {
	logger := h.loggerFor(ctx)
	if status >= http.StatusInternalServerError {
		logger.Error("pricing request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		logger.Info("pricing request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, errorResponse{
		Error:     errorDetail{Message: msg, Details: details},
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

type requestIDKey struct{}

// RequestID returns the ID assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (h *handler) loggerFor(ctx context.Context) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument assigns a request ID and counts the response status.
func (h *handler) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		metrics.Requests.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
		h.logger.Debug("request handled",
			zap.String("op", "server.instrument"),
			zap.String("endpoint", endpoint),
			zap.String("request_id", id),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
