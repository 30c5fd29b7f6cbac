package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DeRuina/timberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/config"
)

func levelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch level {
	case zapcore.DebugLevel:
		color = "\x1b[35m"
	case zapcore.InfoLevel:
		color = "\x1b[32m"
	case zapcore.WarnLevel:
		color = "\x1b[33m"
	default:
		color = "\x1b[31m"
	}
	enc.AppendString(color + "[" + level.CapitalString() + "]\x1b[0m")
}

// New builds the application logger: a colored console core teed with a
// JSON core written to a rotating file. An empty cfg.File disables the file
// core. The returned func flushes and closes the file writer.
func New(cfg config.LogConfig) (*zap.Logger, func(), error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] invalid log level %q, defaulting to info\n", cfg.Level)
		level = zapcore.InfoLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = colorLevelEncoder
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCfg.EncodeCaller = zapcore.ShortCallerEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
	}

	closeFn := func() {}
	if cfg.File != "" {
		if dir := filepath.Dir(cfg.File); dir != "." && dir != "/" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log directory %s: %w", dir, err)
			}
		}
		rotator := &timberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeLevel = levelEncoder
		fileCfg.TimeKey = "timestamp"
		fileCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		fileCfg.EncodeCaller = zapcore.ShortCallerEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), level))
		closeFn = func() { _ = rotator.Close() }
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}
