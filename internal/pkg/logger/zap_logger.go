package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger *zap.Logger
}

func jsonEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// fileCore writes JSON lines to a rotated file
func fileCore(logFilePath string) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,   // Megabytes
		MaxBackups: 5,    // Files
		MaxAge:     30,   // Days
		Compress:   true, // gzip
	}
	return zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator), zap.InfoLevel)
}

func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	var consoleEncoder zapcore.Encoder
	if isProd {
		consoleEncoder = jsonEncoder()
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	consoleCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)

	core := zapcore.NewTee(fileCore(logFilePath), consoleCore)

	// Skip 1 to point to caller of wrapper
	return &ZapLogger{logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewIsolatedLogger writes only to its own file. Used for the websocket and
// flash traffic so it stays out of the main log.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return &ZapLogger{logger: zap.New(fileCore(logFilePath), zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewNopLogger discards everything
func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

func fields(module string, details map[string]interface{}) []zap.Field {
	if details == nil {
		details = make(map[string]interface{})
	}
	return []zap.Field{zap.String("module", module), zap.Any("details", details)}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.logger.Debug(message, fields(module, details)...)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.logger.Info(message, fields(module, details)...)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.logger.Warn(message, fields(module, details)...)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	fs := fields(module, details)
	if err, ok := details["error"]; ok {
		fs = append(fs, zap.Any("error_ref", err))
	}
	l.logger.Error(message, fs...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
