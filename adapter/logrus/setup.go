package logrusadapter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/dappkitty"
)

// Config is an explicit, code-first configuration for a logrus-backed sink.
type Config struct {
	Writer   io.Writer // default: os.Stdout
	MinLevel dappkitty.Level
	JSON     bool // JSONFormatter instead of TextFormatter
	Hooks    []logrus.Hook
}

// Use builds a logrus-backed sink from cfg and a host option installing it.
func Use(cfg Config) (*Sink, dappkitty.HostOption) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.MinLevel == dappkitty.LevelUnset {
		cfg.MinLevel = dappkitty.LevelDebug
	}

	l := logrus.New()
	l.SetOutput(w)
	if cfg.JSON {
		l.Formatter = &logrus.JSONFormatter{}
	} else {
		l.Formatter = &logrus.TextFormatter{
			FullTimestamp: true,
		}
	}
	for _, h := range cfg.Hooks {
		l.AddHook(h)
	}

	s := New(l)
	s.SetMinLevel(cfg.MinLevel)
	return s, dappkitty.WithSink(s)
}
