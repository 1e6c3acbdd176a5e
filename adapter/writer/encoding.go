package writer

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/trickstertwo/dappkitty"
)

// buffer wraps a byte slice with efficient write operations
type buffer struct{ b []byte }

func (buf *buffer) writeString(s string) { buf.b = append(buf.b, s...) }
func (buf *buffer) writeByte(c byte)     { buf.b = append(buf.b, c) }
func (buf *buffer) writeBytes(p []byte)  { buf.b = append(buf.b, p...) }

var bufPool = sync.Pool{
	New: func() any { return &buffer{b: make([]byte, 0, 1024)} },
}

func getBuf() *buffer {
	buf := bufPool.Get().(*buffer)
	buf.b = buf.b[:0]
	return buf
}

func putBuf(buf *buffer) {
	// Keep pool bounded; drop extremely large buffers
	if cap(buf.b) <= 64*1024 {
		bufPool.Put(buf)
	}
}

var (
	textTsPrefix    = []byte("ts=")
	textLevelPrefix = []byte(" level=")
	textClassPrefix = []byte(" class=")
	textMsgPrefix   = []byte(" msg=")
)

func writeTextLine(buf *buffer, level dappkitty.Level, ln line, layout string) {
	buf.writeBytes(textTsPrefix)
	appendTime(buf, ln.at, layout)

	buf.writeBytes(textLevelPrefix)
	buf.writeString(level.String())

	buf.writeBytes(textClassPrefix)
	appendTextString(buf, ln.class)

	buf.writeBytes(textMsgPrefix)
	appendTextString(buf, ln.text)
}

func writeJSONLine(buf *buffer, level dappkitty.Level, ln line, layout string) {
	buf.writeString(`{"ts":"`)
	appendTime(buf, ln.at, layout)
	buf.writeByte('"')

	buf.writeString(`,"level":`)
	appendQuoted(buf, level.String())

	buf.writeString(`,"class":`)
	appendQuoted(buf, ln.class)

	buf.writeString(`,"msg":`)
	appendQuoted(buf, ln.text)

	buf.writeByte('}')
}

func appendTime(buf *buffer, t time.Time, layout string) {
	if layout == "" {
		layout = time.RFC3339Nano
	}
	var tmp [64]byte
	buf.writeBytes(t.UTC().AppendFormat(tmp[:0], layout))
}

func appendTextString(buf *buffer, s string) {
	// Quote if control, space, or double-quote is present.
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x1F || c == ' ' || c == '"' {
			appendQuoted(buf, s)
			return
		}
	}
	buf.writeString(s)
}

const digits = "0123456789abcdef"

func appendQuoted(buf *buffer, s string) {
	buf.writeByte('"')
	appendQuotedContent(buf, s)
	buf.writeByte('"')
}

// JSON-safe string quoter with a single scan and no intermediate allocations.
func appendQuotedContent(buf *buffer, s string) {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '\\' && c != '"' && c < 0x80 {
			i++
			continue
		}
		if start < i {
			buf.writeString(s[start:i])
		}
		if c < 0x80 {
			switch c {
			case '\\', '"':
				buf.writeByte('\\')
				buf.writeByte(c)
			case '\n':
				buf.writeString(`\n`)
			case '\r':
				buf.writeString(`\r`)
			case '\t':
				buf.writeString(`\t`)
			default:
				buf.writeString(`\u00`)
				buf.writeByte(digits[c>>4])
				buf.writeByte(digits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			buf.writeString(`\uFFFD`)
		case r == '\u2028':
			buf.writeString(`\u2028`)
		case r == '\u2029':
			buf.writeString(`\u2029`)
		default:
			// Keep as-is, continue scan
			i += size
			continue
		}
		i += size
		start = i
	}
	if start < len(s) {
		buf.writeString(s[start:])
	}
}
