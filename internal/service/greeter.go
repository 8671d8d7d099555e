package service

import (
	"context"
	"fmt"
	"time"

	"traced-greeter/internal/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// GreetingSpanName labels the span covering every ProduceGreeting call.
	GreetingSpanName = "My Custom Method"

	// TimeLayout is the wall-clock format embedded in greetings.
	TimeLayout = "15:04:05.000"
)

var nowFunc = time.Now

type GreeterService struct {
	tracer trace.Tracer
	logger *zap.Logger
}

func NewGreeterService(tracer trace.Tracer, logger *zap.Logger) *GreeterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GreeterService{tracer: tracer, logger: logger}
}

// ProduceGreeting returns "myCustomMethod <time>" for the current wall-clock
// time. The span is ended on every exit path; a panic is recorded on it
// before being re-raised.
func (s *GreeterService) ProduceGreeting(ctx context.Context) string {
	ctx, span := s.tracer.Start(ctx, GreetingSpanName)
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("panic: %v", r), trace.WithStackTrace(true))
			span.SetStatus(codes.Error, "panic in greeting")
			span.End()
			panic(r)
		}
		span.End()
	}()

	now := nowFunc().Format(TimeLayout)
	span.SetAttributes(attribute.String("greeting.time", now))

	logging.WithTrace(ctx, s.logger).Info(fmt.Sprintf("inside myCustomMethod [%s]", now))

	return "myCustomMethod " + now
}
