package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the scoring run identifier.
	FieldRunID = "run_id"
	// FieldRoleType is the structured log field key for the targeted role type.
	FieldRoleType = "role_type"
	// FieldRoleLevel is the structured log field key for the targeted role level.
	FieldRoleLevel = "role_level"
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

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RunFields describes one scoring run. Role fields are empty, and therefore
// omitted, when enhancements are off.
func RunFields(runID, roleType, roleLevel string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldRoleType, Value: roleType},
		StringField{Key: FieldRoleLevel, Value: roleLevel},
	)
}

// WithRunFields attaches the run fields to logger.
func WithRunFields(logger *zap.Logger, runID, roleType, roleLevel string) *zap.Logger {
	return WithFields(logger, RunFields(runID, roleType, roleLevel)...)
}
