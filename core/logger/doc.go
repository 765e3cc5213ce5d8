// Package logger provides a structured logging facility based on Zap.
//
// The debug level selects Zap's development config (ISO8601 timestamps, stack traces on
// warnings); every other level uses the production config at that level. Format picks
// json or colored console encoding. An optional file receives a copy of every entry.
//
// WithRayID extracts the ray id set by the rayid middleware from a Fiber context and
// attaches it to the logger, so all entries of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Reconciliation finished", zap.Int("accepted", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
