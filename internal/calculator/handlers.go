package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"architect-calculators/internal/calc"
	"architect-calculators/internal/handlers"
	"architect-calculators/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

const defaultMaxBodyBytes = 1 << 20

// Handler serves the calculator API. It holds only immutable options.
type Handler struct {
	opts Options
}

func NewHandler(opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{opts: opts}
}

// List handles GET /api/calculators.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := calc.All()
	resp := ListResponse{Calculators: make([]calc.Schema, 0, len(all))}
	for _, c := range all {
		resp.Calculators = append(resp.Calculators, c.Describe())
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Evaluate returns the handler for POST /api/<c.Name>.
func (h *Handler) Evaluate(c calc.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.handleEvaluate(w, r, c)
	}
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request, c calc.Calculator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calc.%s", c.Name),
		trace.WithAttributes(
			attribute.String("calc.name", c.Name),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	in, err := decodeInput(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			observability.RecordError(ctx, span, logger, errorCounter, c.Name, "Request body too large", err, http.StatusRequestEntityTooLarge, w)
			return
		}
		observability.RecordError(ctx, span, logger, errorCounter, c.Name, "Invalid JSON: "+err.Error(), err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	out, err := c.Run(in)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		kind := calc.KindOf(err)
		attrs := metric.WithAttributes(
			attribute.String("calculator", c.Name),
			attribute.String("outcome", kind.String()),
		)
		evalCounter.Add(ctx, 1, attrs)
		evalHistogram.Record(ctx, elapsed, attrs)

		span.SetAttributes(attribute.String("calc.error_kind", kind.String()))
		span.SetStatus(codes.Error, err.Error())

		logger.Info("calculation rejected",
			zap.String("calculator", c.Name),
			zap.Stringer("kind", kind),
			zap.Error(err),
			zap.String("request_id", requestID),
		)

		status := http.StatusOK
		if h.opts.StrictStatus {
			status = http.StatusUnprocessableEntity
		}
		handlers.WriteJSON(w, status, calc.NewResult(nil, err))
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("calculator", c.Name),
		attribute.String("outcome", "success"),
	)
	evalCounter.Add(ctx, 1, attrs)
	evalHistogram.Record(ctx, elapsed, attrs)

	fields := make([]zap.Field, 0, len(out)+3)
	fields = append(fields, zap.String("calculator", c.Name))
	for _, name := range c.Outputs {
		f, ok := out[name].(float64)
		if !ok {
			continue
		}
		resultGauge.Record(ctx, f, metric.WithAttributes(
			attribute.String("calculator", c.Name),
			attribute.String("output", name),
		))
		span.SetAttributes(attribute.Float64("calc.result."+name, f))
		fields = append(fields, zap.Float64(name, f))
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	fields = append(fields,
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)
	logger.Info("calculation completed", fields...)

	handlers.WriteJSON(w, http.StatusOK, calc.NewResult(out, nil))
}

// decodeInput parses the whole body as one JSON value. A valid value that is
// not an object yields an empty Input, which then fails the presence check.
func decodeInput(body io.Reader) (calc.Input, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	obj, _ := v.(map[string]any)
	return calc.Input(obj), nil
}
