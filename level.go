package dappkitty

import "strings"

// Level is both a message severity and a configured verbosity ceiling.
// The zero value means "not configured" and lets precedence fall through.
type Level int8

const (
	LevelUnset Level = iota
	LevelOff
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	// LevelKitty shows only direct calls, whatever their severity.
	LevelKitty
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelKitty:
		return "kitty"
	default:
		return ""
	}
}

// ParseLevel parses a level name (case-insensitive). The second result is
// false for names it does not recognize.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return LevelOff, true
	case "error":
		return LevelError, true
	case "warn", "warning":
		return LevelWarn, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	case "kitty":
		return LevelKitty, true
	default:
		return LevelUnset, false
	}
}

// priority ranks message severities: error < warn < info < debug.
// Everything that is not one of the four buckets ranks as info.
func (l Level) priority() int {
	switch l {
	case LevelError:
		return 1
	case LevelWarn:
		return 2
	case LevelDebug:
		return 4
	default:
		return 3
	}
}

// bucket collapses a severity into one of error, warn, info, debug.
func (l Level) bucket() Level {
	switch l {
	case LevelError, LevelWarn, LevelDebug:
		return l
	default:
		return LevelInfo
	}
}

// Prefix is the bracketed tag rendered in front of a message.
func (l Level) Prefix() string {
	switch l.bucket() {
	case LevelError:
		return "[ERROR]"
	case LevelWarn:
		return "[WARN]"
	case LevelDebug:
		return "[DEBUG]"
	default:
		return "[INFO]"
	}
}

const classBase = "logKitty-line"

// Class is the CSS class list handed to the render sink.
func (l Level) Class() string {
	return classBase + " logKitty-" + l.bucket().String()
}

// ClassLevel recovers the severity bucket from a class list produced by
// Level.Class. Unknown classes map to info.
func ClassLevel(class string) Level {
	for _, c := range strings.Fields(class) {
		switch c {
		case "logKitty-error":
			return LevelError
		case "logKitty-warn":
			return LevelWarn
		case "logKitty-debug":
			return LevelDebug
		case "logKitty-info":
			return LevelInfo
		}
	}
	return LevelInfo
}

// levelOf maps a console method name to a severity. Methods without a
// dedicated bucket (log, trace, ...) fall into info.
func levelOf(method string) Level {
	if l, ok := ParseLevel(method); ok {
		return l.bucket()
	}
	return LevelInfo
}
