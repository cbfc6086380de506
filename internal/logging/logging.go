package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"insecticide/internal/config"
)

const (
	DebugFileName = "debug.log"
	InfoFileName  = "info.log"
)

// NewLogger builds a zap logger writing to the console and to the debug and info files in cfg.LogDir.
// The returned func flushes and closes the files.
func NewLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, nil, errors.Wrap(err, "create log dir")
	}
	debugOut, closeDebug, err := zap.Open(filepath.Join(cfg.LogDir, DebugFileName))
	if err != nil {
		return nil, nil, errors.Wrap(err, "open debug log")
	}
	infoOut, closeInfo, err := zap.Open(filepath.Join(cfg.LogDir, InfoFileName))
	if err != nil {
		closeDebug()
		return nil, nil, errors.Wrap(err, "open info log")
	}

	enc := zapcore.NewConsoleEncoder(EncoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(enc, debugOut, zap.DebugLevel),
		zapcore.NewCore(enc, infoOut, zap.InfoLevel),
	)

	logger := zap.New(core)
	cleanup := func() {
		_ = logger.Sync()
		closeInfo()
		closeDebug()
	}
	return logger, cleanup, nil
}

// EncoderConfig renders entries as "[time] [LEVEL]: message fields"
func EncoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("[2006-01-02 15:04:05]")
	encCfg.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + l.CapitalString() + "]:")
	}
	encCfg.CallerKey = zapcore.OmitKey
	encCfg.StacktraceKey = zapcore.OmitKey
	encCfg.ConsoleSeparator = " "
	return encCfg
}

// ParseLevel maps a config value to a zap level. Empty means info.
func ParseLevel(value string) (zap.AtomicLevel, error) {
	switch strings.ToLower(value) {
	case "", "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel), nil
	case "warn", "warning":
		return zap.NewAtomicLevelAt(zap.WarnLevel), nil
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel), nil
	default:
		return zap.AtomicLevel{}, &config.ConfigurationError{
			Key: config.KeyLogLevel,
			Err: errors.Errorf("unknown log level %q", value),
		}
	}
}
