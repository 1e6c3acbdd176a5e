// Package panel is an in-memory render surface: the collapsible log panel
// with its theme, toggle icons and a bounded list of lines.
package panel

import (
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/trickstertwo/dappkitty"
)

// ID is the element id of the panel container.
const ID = "logKitty"

const defaultMaxLines = 1000

// ErrRemoved is returned by EnsurePanel once the panel was removed.
var ErrRemoved = errors.New("panel: removed")

// Line is one rendered entry of the panel content.
type Line struct {
	Text  string
	Class string
}

type Options struct {
	Theme        string // default "puzzl-light"
	ExpandIcon   string // default "&#9660;"
	CollapseIcon string // default "&#9650;"
	// MaxLines caps the retained lines; oldest are evicted first.
	MaxLines int
}

// Panel is safe for concurrent use.
type Panel struct {
	mu        sync.Mutex
	opts      Options
	lines     []Line
	start     int // ring head once len(lines) == MaxLines
	dropped   uint64
	created   bool
	removed   bool
	collapsed bool
}

func New(opts Options) *Panel {
	if opts.Theme == "" {
		opts.Theme = "puzzl-light"
	}
	if opts.ExpandIcon == "" {
		opts.ExpandIcon = "&#9660;"
	}
	if opts.CollapseIcon == "" {
		opts.CollapseIcon = "&#9650;"
	}
	if opts.MaxLines <= 0 {
		opts.MaxLines = defaultMaxLines
	}
	return &Panel{opts: opts}
}

// ApplyTheme implements dappkitty.Themed. Empty values keep the current ones.
func (p *Panel) ApplyTheme(theme, expandIcon, collapseIcon string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if theme != "" {
		p.opts.Theme = theme
	}
	if expandIcon != "" {
		p.opts.ExpandIcon = expandIcon
	}
	if collapseIcon != "" {
		p.opts.CollapseIcon = collapseIcon
	}
}

// EnsurePanel creates the panel once; later calls reuse it.
func (p *Panel) EnsurePanel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.removed {
		return ErrRemoved
	}
	p.created = true
	return nil
}

// AppendLine adds a line. Without a panel (never created or removed) the
// line is dropped silently.
func (p *Panel) AppendLine(text, class string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.created || p.removed {
		return nil
	}
	ln := Line{Text: text, Class: class}
	if len(p.lines) < p.opts.MaxLines {
		p.lines = append(p.lines, ln)
		return nil
	}
	p.lines[p.start] = ln
	p.start = (p.start + 1) % len(p.lines)
	p.dropped++
	return nil
}

// Lines returns the retained lines, oldest first.
func (p *Panel) Lines() []Line {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Line, 0, len(p.lines))
	out = append(out, p.lines[p.start:]...)
	out = append(out, p.lines[:p.start]...)
	return out
}

// Dropped counts lines evicted by the MaxLines cap.
func (p *Panel) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

func (p *Panel) Theme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Theme
}

// Toggle flips the collapsed state and returns the icon now shown.
func (p *Panel) Toggle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collapsed = !p.collapsed
	return p.iconLocked()
}

func (p *Panel) Collapsed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collapsed
}

// ToggleIcon is the collapse icon while collapsed, the expand icon otherwise.
func (p *Panel) ToggleIcon() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.iconLocked()
}

func (p *Panel) iconLocked() string {
	if p.collapsed {
		return p.opts.CollapseIcon
	}
	return p.opts.ExpandIcon
}

// Remove tears the panel down. Appends afterwards are no-ops.
func (p *Panel) Remove() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removed = true
	p.lines = nil
	p.start = 0
}

// Exists reports whether the panel was created and not removed.
func (p *Panel) Exists() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created && !p.removed
}

// HTML renders the panel markup. Line text is escaped; icons are entities
// and are written as is.
func (p *Panel) HTML() string {
	lines := p.Lines()

	p.mu.Lock()
	theme, icon, collapsed := p.opts.Theme, p.iconLocked(), p.collapsed
	p.mu.Unlock()

	var b strings.Builder
	b.WriteString(`<div id="` + ID + `" class="` + html.EscapeString(theme))
	if collapsed {
		b.WriteString(" collapsed")
	}
	b.WriteString(`"><div class="logKitty-content">`)
	for _, ln := range lines {
		if ln.Class == dappkitty.IntroClass {
			b.WriteString(`<div id="` + dappkitty.IntroClass + `"><pre>` + html.EscapeString(ln.Text) + `</pre></div>`)
			continue
		}
		b.WriteString(`<div class="` + html.EscapeString(ln.Class) + `">` + html.EscapeString(ln.Text) + `</div>`)
	}
	b.WriteString(`</div><button id="logKitty-toggle" type="button" title="Expand/collapse log">`)
	b.WriteString(icon)
	b.WriteString(`</button></div>`)
	return b.String()
}

var (
	_ dappkitty.Sink   = (*Panel)(nil)
	_ dappkitty.Themed = (*Panel)(nil)
)
