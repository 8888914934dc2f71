package middleware

import (
	"context"
	"time"

	"github.com/agentcore-dev/agentcore/logging"
)

// Config controls which default stages a runtime installs. It is resolved
// once when the default stage list is built, never consulted per call.
type Config struct {
	// EnableTelemetry installs a timing/outcome stage around every
	// invocation. When false, runs get a bare identity stage instead.
	EnableTelemetry bool

	// Logger receives telemetry output. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Defaults resolves cfg into the default stage list for a runtime. The list
// always contains at least one stage so pipelines built from it have a
// uniform shape.
func Defaults(cfg Config) []Stage {
	if !cfg.EnableTelemetry {
		return []Stage{Identity}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return []Stage{Telemetry(logger)}
}

// Telemetry returns a stage that records wall time and outcome of the
// wrapped invocation. It observes only; errors and outputs pass through
// untouched.
func Telemetry(logger logging.Logger) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context) (any, error) {
			start := time.Now()
			logger.Debug("invocation.start")

			out, err := next(ctx)

			if err != nil {
				logger.Error("invocation.error", "duration_ms", time.Since(start).Milliseconds(), "error", err.Error())
			} else {
				logger.Info("invocation.success", "duration_ms", time.Since(start).Milliseconds())
			}
			return out, err
		}
	}
}
