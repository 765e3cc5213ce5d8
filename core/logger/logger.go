package logger

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger from cfg.
func New(cfg *Config) (*zap.Logger, error) {
	zc, err := levelConfig(cfg.Level)
	if err != nil {
		return nil, err
	}

	switch cfg.Format {
	case "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	default:
		zc.Encoding = "json"
	}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.MessageKey = "message"

	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
		zc.ErrorOutputPaths = append(zc.ErrorOutputPaths, cfg.File)
	}
	return zc.Build()
}

func levelConfig(level string) (zap.Config, error) {
	switch level {
	case "debug":
		return zap.NewDevelopmentConfig(), nil
	case "":
		return zap.NewProductionConfig(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc, nil
}

// CLI returns the console logger used for command errors, or a no-op logger when it
// cannot be built.
func CLI() *zap.Logger {
	l, err := New(&Config{Level: "debug", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// WithRun tags l with the run id and the source that triggered the run.
func WithRun(l *zap.Logger, runID, source string) *zap.Logger {
	return l.With(zap.String("run_id", runID), zap.String("source", source))
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
