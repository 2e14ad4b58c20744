package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Payphone-Digital/storefront/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
	files  []io.Closer
)

// InitLogger initializes Zap logger with configuration
func InitLogger(cfg *config.Config) error {
	var zapLevel zapcore.Level
	switch cfg.App.Environment {
	case "production":
		zapLevel = zapcore.InfoLevel
	default:
		zapLevel = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if cfg.IsProduction() {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	infoSinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	errorSinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	var opened []io.Closer

	if cfg.Log.ToFile {
		if err := os.MkdirAll(cfg.Log.Path, 0o755); err != nil {
			return err
		}
		infoFile, err := openLogFile(cfg.Log.Path, "info.log")
		if err != nil {
			return err
		}
		errorFile, err := openLogFile(cfg.Log.Path, "error.log")
		if err != nil {
			infoFile.Close()
			return err
		}
		infoSinks = append(infoSinks, zapcore.AddSync(infoFile))
		errorSinks = append(errorSinks, zapcore.AddSync(errorFile))
		opened = append(opened, infoFile, errorFile)
	}

	infoCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(infoSinks...),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapLevel && l < zapcore.ErrorLevel
		}),
	)
	errorCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(errorSinks...),
		zapcore.ErrorLevel,
	)

	l := zap.New(zapcore.NewTee(infoCore, errorCore), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", cfg.App.Name))
	SetLogger(l)

	mu.Lock()
	files = opened
	mu.Unlock()
	return nil
}

func openLogFile(dir, name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// SetLogger replaces the global logger. Tests use it to capture output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	Logger = l
	Sugar = l.Sugar()
}

// GetLogger returns the structured logger, or a no-op logger before InitLogger.
func GetLogger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// GetSugarLogger returns the sugared logger
func GetSugarLogger() *zap.SugaredLogger {
	return GetLogger().Sugar()
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if Logger != nil {
		_ = Logger.Sync()
	}
	for _, f := range files {
		_ = f.Close()
	}
	files = nil
}

// WithFields adds structured fields to the logger
func WithFields(fields ...zap.Field) *zap.Logger {
	return GetLogger().With(fields...)
}

// Named returns a child logger for one component.
func Named(name string) *zap.Logger {
	return GetLogger().Named(name)
}

// LogRequest logs HTTP request information
func LogRequest(method, path string, statusCode int, duration int64, clientIP string, userAgent string) {
	GetLogger().Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", duration),
		zap.String("client_ip", clientIP),
		zap.String("user_agent", userAgent),
	)
}

// LogError logs error with stack trace
func LogError(err error, message string, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Error(err),
	}, fields...)

	GetLogger().Error(message, allFields...)
}

// LogPanic logs panic and recovers
func LogPanic(recovered any) {
	GetLogger().Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}

// LogSession logs shopper session lifecycle events
func LogSession(sessionID, action string, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("session_id", sessionID),
		zap.String("action", action),
	}, fields...)

	GetLogger().Info("Session event", allFields...)
}
