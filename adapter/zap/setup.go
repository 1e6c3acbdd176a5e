package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/dappkitty"
)

// Config is an explicit, code-first configuration for a zap-backed sink.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	MinLevel           dappkitty.Level
	Console            bool                  // pretty console-like output via zapcore.NewConsoleEncoder
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	TimestampFieldName string                // default "ts"
}

// Use builds a zap-backed sink from cfg and a host option installing it.
func Use(cfg Config) (*Sink, dappkitty.HostOption) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}
	if cfg.MinLevel == dappkitty.LevelUnset {
		cfg.MinLevel = dappkitty.LevelDebug
	}

	// The sink injects the timestamp; zap must not add its own.
	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" {
		encCfg = zapcore.EncoderConfig{
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	}
	encCfg.TimeKey = ""

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	al := zap.NewAtomicLevelAt(toZapLevel(cfg.MinLevel))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)
	zl := zap.New(core, zap.AddStacktrace(zapcore.FatalLevel+1))

	s := NewWithTimestampKey(zl, &al, cfg.TimestampFieldName)
	return s, dappkitty.WithSink(s)
}
