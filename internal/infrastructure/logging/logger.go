package logging

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Field names shared by every component that logs checkout activity.
const (
	FieldCorrelationID  = "correlation_id"
	FieldOrderReference = "order_reference"
	FieldRequestID      = "request_id"
	FieldComponent      = "component"
)

// NewLogger builds the service logger.
//
// Supported env vars:
//   - LOG_LEVEL (default: info)
//   - LOG_FORMAT (json | text, default: json)
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Component returns an entry tagged with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithField(FieldComponent, name)
}

type correlationKey struct{}

// WithCorrelationID stores the call correlation id so downstream clients can
// tag their own log lines with it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored by WithCorrelationID, if any.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// FromContext adds the context correlation id to entry.
func FromContext(ctx context.Context, entry *logrus.Entry) *logrus.Entry {
	if id := CorrelationID(ctx); id != "" {
		return entry.WithField(FieldCorrelationID, id)
	}
	return entry
}
