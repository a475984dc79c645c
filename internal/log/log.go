package log

import (
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = newLogger("")
)

// Init replaces the process logger, optionally teeing to a file sink.
// Safe to call once from main before serving.
func Init(logFile string) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(logFile)
}

func newLogger(logFile string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	if logFile != "" {
		if f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			_ = f.Close()
			cfg.OutputPaths = append(cfg.OutputPaths, logFile)
			cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, logFile)
		}
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.MessageKey = "action"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	l, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		panic(err)
	}
	return l
}

// Sync flushes buffered entries. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	mu.RLock()
	l := base
	mu.RUnlock()

	zf := make([]zap.Field, 0, len(fields)+6)
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
	}
	if err != nil {
		zf = append(zf, zap.String("err", err.Error()))
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}

	switch level {
	case zapcore.WarnLevel:
		l.Warn(action, zf...)
	case zapcore.ErrorLevel:
		l.Error(action, zf...)
	default:
		l.Info(action, zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["audit"] = true
	write(zapcore.InfoLevel, c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, c, action, err, fields)
}
