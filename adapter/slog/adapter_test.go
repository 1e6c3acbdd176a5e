package slogadapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/dappkitty"
)

func TestSlogSink_JSONHandler_EmitsTSAndClass(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	at := time.Date(2024, 12, 31, 23, 59, 59, 123456789, time.UTC)
	s := New(slog.New(h)).WithClock(xclock.NewFrozen(at))

	if err := s.AppendLine("[DEBUG] cache miss", dappkitty.LevelDebug.Class()); err != nil {
		t.Fatalf("append: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("json unmarshal: %v; line=%s", err, buf.String())
	}
	gotTS, _ := m["ts"].(string)
	if gotTS != at.Format(time.RFC3339Nano) {
		t.Fatalf("ts mismatch: got %q", gotTS)
	}
	if m["level"] != "DEBUG" {
		t.Fatalf("level mismatch: got %v", m["level"])
	}
	if m["msg"] != "[DEBUG] cache miss" {
		t.Fatalf("msg mismatch: got %v", m["msg"])
	}
	if m["class"] != "logKitty-line logKitty-debug" {
		t.Fatalf("class mismatch: got %v", m["class"])
	}
}

func TestUse_TextFormatAndMinLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s, _ := Use(Config{Writer: &buf, Format: FormatText, MinLevel: dappkitty.LevelWarn})

	_ = s.AppendLine("[INFO] skipped", dappkitty.LevelInfo.Class())
	_ = s.AppendLine("[WARN] shown", dappkitty.LevelWarn.Class())

	out := buf.String()
	if strings.Contains(out, "skipped") {
		t.Fatalf("info should be filtered: %s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, `msg="[WARN] shown"`) {
		t.Fatalf("unexpected text output: %s", out)
	}
}
