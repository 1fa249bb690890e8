package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init configures the global logger. Level is one of debug/info/warn/error;
// anything else falls back to info.
func Init(level string) error {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	sugar = built.Sugar()
	return nil
}

// ensure lazily initializes a default logger so library callers that skip
// Init still get output.
func ensure() {
	if sugar == nil {
		built, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
		sugar = built.Sugar()
	}
}

func Debugf(format string, v ...interface{}) {
	ensure()
	sugar.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	ensure()
	sugar.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	ensure()
	sugar.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	ensure()
	sugar.Errorf(format, v...)
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
