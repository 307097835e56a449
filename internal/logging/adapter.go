// Package logging adapts the structured field logger to the loose
// keysAndValues interface used by the processor package.
package logging

import (
	"github.com/papertrail/classifier/internal/logger"
)

// KV wraps a field logger behind a keysAndValues-style interface.
type KV struct {
	log logger.Logger
}

// NewKV creates an adapter over the given logger.
func NewKV(log logger.Logger) *KV {
	return &KV{log: log}
}

// Debug logs a debug message with alternating key/value pairs.
func (k *KV) Debug(msg string, keysAndValues ...interface{}) {
	k.log.Debug(msg, toFields(keysAndValues)...)
}

// Info logs an info message with alternating key/value pairs.
func (k *KV) Info(msg string, keysAndValues ...interface{}) {
	k.log.Info(msg, toFields(keysAndValues)...)
}

// Warn logs a warning with alternating key/value pairs.
func (k *KV) Warn(msg string, keysAndValues ...interface{}) {
	k.log.Warn(msg, toFields(keysAndValues)...)
}

// Error logs an error with alternating key/value pairs.
func (k *KV) Error(msg string, keysAndValues ...interface{}) {
	k.log.Error(msg, toFields(keysAndValues)...)
}

// toFields pairs up keysAndValues; a trailing unpaired key is logged under
// "dangling" rather than dropped.
func toFields(keysAndValues []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "unknown"
		}
		fields = append(fields, logger.Any(key, keysAndValues[i+1]))
	}
	if len(keysAndValues)%2 == 1 {
		fields = append(fields, logger.Any("dangling", keysAndValues[len(keysAndValues)-1]))
	}
	return fields
}
