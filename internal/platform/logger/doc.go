// Package logger provides structured logging functionality for the
// application, built on log/slog with a JSON handler. It also carries a
// request-scoped logger through context so downstream components log with
// the request's trace attributes attached.
package logger
