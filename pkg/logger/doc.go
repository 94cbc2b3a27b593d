// Package logger builds configured log/slog loggers for the validation
// library: JSON output for production log aggregation, text for
// development, with static attributes applied to every record.
//
// The zero-option New() returns a text logger at info level on stderr.
// Misconfigured formats panic at construction: a bad logging setup should
// prevent startup rather than surface as runtime errors.
package logger
