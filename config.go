package pgfrag

import (
	"context"
	"time"

	"go.uber.org/zap"
)

/*
Config is the process-wide configuration record consulted by `Run` at
query time: listeners, auto-cast flags, and the transaction-id slot. It is
read, not written, during query execution; initializing it before the
first query is the caller's responsibility, matching the "read-only at
query time" contract spec'd for the engine.

A `Config` may also be attached to a `context.Context` via `WithConfig` and
read back with `ConfigFrom`, for callers who want an explicit per-call
override instead of mutating the package-level default.
*/
type Config struct {
	QueryListener    func(ctx context.Context, query Query, txID string)
	ResultListener   func(ctx context.Context, query Query, elapsed time.Duration, err error)
	ProgressListener func(msg string)
	DebugListener    func(msg string)
	WarningListener  func(msg string)

	// CastMapParamsToJSON/CastSliceParamsToJSON control the implicit
	// auto-cast decision in `Param` compilation when `JSONCast` is
	// `jsonAuto`: a bare `map[string]any`/`[]any` value is JSON-serialized
	// and cast as `json` rather than pushed as a raw driver value.
	CastMapParamsToJSON   bool
	CastSliceParamsToJSON bool
}

// DefaultConfig is the process-wide configuration consulted by `Run` when
// no context override is present. Safe to reassign at program startup,
// before the first query; see `Config` for the concurrency contract.
var DefaultConfig = NewConfig(nil)

// NewConfig builds a Config with zap-backed listeners logging at debug
// (queries) and error (driver failures) level, following the same
// logger-as-listener pattern `qbloq-graphjin-agentico` and `pthm-melange`
// use for their own query telemetry. Pass nil to use `zap.NewNop()`.
func NewConfig(logger *zap.Logger) Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Config{
		QueryListener: func(_ context.Context, query Query, txID string) {
			fields := []zap.Field{
				zap.String(`query`, query.Text),
				zap.Int(`args`, len(query.Values)),
			}
			if txID != "" {
				fields = append(fields, zap.String(`tx`, txID))
			}
			logger.Debug(`pgfrag query`, fields...)
		},
		ResultListener: func(_ context.Context, query Query, elapsed time.Duration, err error) {
			if err != nil {
				logger.Error(`pgfrag result`, zap.String(`query`, query.Text), zap.Error(err), zap.Duration(`elapsed`, elapsed))
				return
			}
			logger.Debug(`pgfrag result`, zap.Duration(`elapsed`, elapsed))
		},
		ProgressListener: func(msg string) { logger.Info(msg) },
		DebugListener:    func(msg string) { logger.Debug(msg) },
		WarningListener:  func(msg string) { logger.Warn(msg) },
	}
}

type configCtxKey struct{}

// WithConfig attaches a `Config` override to the context, consulted by
// `Run` in preference to `DefaultConfig`. Realizes the "explicit context"
// redesign note without removing the documented global default; see
// DESIGN.md.
func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configCtxKey{}, cfg)
}

// ConfigFrom returns the context's `Config` override, or `DefaultConfig` if
// none was attached.
func ConfigFrom(ctx context.Context) Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configCtxKey{}).(Config); ok {
			return cfg
		}
	}
	return DefaultConfig
}
