package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRequestID identifies one upstream call across its log entries.
	FieldRequestID = "request_id"
	// FieldEndpoint is the upstream service call identifier.
	FieldEndpoint = "endpoint"
	// FieldTool is the name of the tool being invoked.
	FieldTool = "tool"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger
// when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CallFields returns the fields shared by every log entry of one upstream call.
func CallFields(requestID, endpoint string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRequestID, Value: requestID},
		StringField{Key: FieldEndpoint, Value: endpoint},
	)
}

// WithCallFields attaches CallFields to the logger.
func WithCallFields(logger *zap.Logger, requestID, endpoint string) *zap.Logger {
	return WithFields(logger, CallFields(requestID, endpoint)...)
}
