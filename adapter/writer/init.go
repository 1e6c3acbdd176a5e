package writer

import (
	"io"
	"os"
	"strings"

	"github.com/trickstertwo/dappkitty"
)

// Register this sink as the default for hosts without one.
// Format can be controlled with DAPPKITTY_SINK_FORMAT=JSON|TEXT (case-insensitive).
func init() {
	dappkitty.RegisterDefaultSinkFactory(func(w io.Writer) dappkitty.Sink {
		format := FormatText
		if strings.EqualFold(os.Getenv("DAPPKITTY_SINK_FORMAT"), "json") {
			format = FormatJSON
		}
		return New(w, Options{Format: format})
	})
}
