package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trickstertwo/dappkitty"
	logrusadapter "github.com/trickstertwo/dappkitty/adapter/logrus"
	slogadapter "github.com/trickstertwo/dappkitty/adapter/slog"
	"github.com/trickstertwo/dappkitty/adapter/writer"
	zapadapter "github.com/trickstertwo/dappkitty/adapter/zap"
	zerologadapter "github.com/trickstertwo/dappkitty/adapter/zerolog"
	"github.com/trickstertwo/dappkitty/overridefile"
)

// overrides reads the override file, if any, and layers the level flag on top.
func (c *command) overrides() (dappkitty.Overrides, error) {
	var o dappkitty.Overrides
	if path := c.config.GetString(optionNameOverrides); path != "" {
		loaded, err := overridefile.Load(c.fs, path)
		switch {
		case err == nil:
			o = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			return o, err
		}
	}
	if raw := c.config.GetString(optionNameLevel); raw != "" {
		l, ok := dappkitty.ParseLevel(raw)
		if !ok {
			return o, fmt.Errorf("unknown log level %q", raw)
		}
		o.LogLevel = l
	}
	return o, nil
}

func newSink(kind string, w io.Writer) (dappkitty.Sink, error) {
	switch strings.ToLower(kind) {
	case "", "text":
		return writer.New(w, writer.Options{Format: writer.FormatText}), nil
	case "json":
		return writer.New(w, writer.Options{Format: writer.FormatJSON}), nil
	case "zap":
		s, _ := zapadapter.Use(zapadapter.Config{Writer: w})
		return s, nil
	case "zap-console":
		s, _ := zapadapter.Use(zapadapter.Config{Writer: w, Console: true})
		return s, nil
	case "zerolog":
		s, _ := zerologadapter.Use(zerologadapter.Config{Writer: w})
		return s, nil
	case "slog":
		s, _ := slogadapter.Use(slogadapter.Config{Writer: w})
		return s, nil
	case "logrus":
		s, _ := logrusadapter.Use(logrusadapter.Config{Writer: w})
		return s, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", kind)
	}
}

func (c *command) newHost(cmd *cobra.Command, sink dappkitty.Sink) *dappkitty.Host {
	return dappkitty.NewHost(c.config.GetString(optionNameURL),
		dappkitty.WithSink(sink),
		dappkitty.WithConsole(dappkitty.NewWriterConsole(cmd.ErrOrStderr())),
	)
}
