package obs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

const tracerName = "fleet-allocation-service"

// RequestID returns the request id stored by the HTTP middleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time starts a span named op and returns a closure that ends it and logs the duration.
// Pass the address of the caller's named error so failures are recorded on both.
//
//	ctx, done := obs.Time(ctx, "allocate fleet")
//	defer done(&err)
func Time(ctx context.Context, op string) (context.Context, func(errp *error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	reqID := RequestID(ctx)

	return ctx, func(errp *error) {
		dur := time.Since(start)
		fields := []zap.Field{
			zap.String("req_id", reqID),
			zap.String("op", op),
			zap.Int64("dur_ms", dur.Milliseconds()),
		}

		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
			span.End()
			zap.L().Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		span.End()
		zap.L().Debug("operation done", fields...)
	}
}
