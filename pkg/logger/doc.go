// Package logger builds configured *slog.Logger instances.
//
// The factory supports JSON output for production aggregation and text output
// for development, with the level and format driven by LOG_LEVEL and
// LOG_FORMAT environment variables through Config. Components receive the
// logger in their constructors; nothing in this package keeps global state.
package logger
