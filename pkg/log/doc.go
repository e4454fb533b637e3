// Package log provides structured logging for flexbuf components.
//
// It is a thin Field-based facade over log/slog: components depend on the
// Logger interface and attach typed fields, while the process chooses the
// level and output format (text or JSON) once at startup.
//
//	logger := log.New(log.WithLevel(log.InfoLevel), log.WithFormat(log.FormatText))
//	logger = logger.With(log.Component("capture"))
//	logger.Info("line captured", log.Uint32("id", id), log.Int("bytes", n))
//
// RedirectStdLog routes standard-library log output (Pebble uses it)
// through a Logger so the process emits one stream in one format.
package log
