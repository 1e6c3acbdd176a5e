package logrusadapter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/dappkitty"
)

type recordHook struct{ entries []*logrus.Entry }

func (h *recordHook) Levels() []logrus.Level     { return logrus.AllLevels }
func (h *recordHook) Fire(e *logrus.Entry) error { h.entries = append(h.entries, e); return nil }

func TestLogrusSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	hook := &recordHook{}
	s, _ := Use(Config{Writer: &buf, JSON: true, Hooks: []logrus.Hook{hook}})
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.WithClock(xclock.NewFrozen(at))

	if err := s.AppendLine("[WARN] slow block", dappkitty.LevelWarn.Class()); err != nil {
		t.Fatalf("append: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, buf.String())
	}
	if m["level"] != "warning" {
		t.Fatalf("level mismatch: %v", m["level"])
	}
	if m["msg"] != "[WARN] slow block" {
		t.Fatalf("msg mismatch: %v", m["msg"])
	}
	if m["class"] != "logKitty-line logKitty-warn" {
		t.Fatalf("class mismatch: %v", m["class"])
	}
	if len(hook.entries) != 1 || !hook.entries[0].Time.Equal(at) {
		t.Fatalf("hook did not see the clock timestamp: %+v", hook.entries)
	}
}

func TestLogrusSink_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	s, _ := Use(Config{Writer: &buf, MinLevel: dappkitty.LevelError})

	_ = s.AppendLine("[WARN] dropped", dappkitty.LevelWarn.Class())
	if buf.Len() != 0 {
		t.Fatalf("warn should be filtered: %s", buf.String())
	}

	s.SetMinLevel(dappkitty.LevelOff)
	_ = s.AppendLine("[ERROR] dropped", dappkitty.LevelError.Class())
	if buf.Len() != 0 {
		t.Fatalf("off should drop errors: %s", buf.String())
	}
}
