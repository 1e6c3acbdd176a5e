package wspanel

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/trickstertwo/dappkitty"
)

func newTestHub(t *testing.T, opts Options) (*Hub, string) {
	t.Helper()
	h := New(opts)
	ts := httptest.NewServer(h)
	t.Cleanup(func() {
		_ = h.Close()
		ts.Close()
	})
	return h, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func waitSubscribers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Subscribers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("subscribers = %d, want %d", h.Subscribers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BacklogThenLive(t *testing.T) {
	h, url := newTestHub(t, Options{Backlog: 2})

	_ = h.AppendLine("[INFO] one", dappkitty.LevelInfo.Class())
	_ = h.AppendLine("[WARN] two", dappkitty.LevelWarn.Class())
	_ = h.AppendLine("[ERROR] three", dappkitty.LevelError.Class())

	conn := dial(t, url)
	want := []Message{
		{Text: "[WARN] two", Class: "logKitty-line logKitty-warn", Level: "warn"},
		{Text: "[ERROR] three", Class: "logKitty-line logKitty-error", Level: "error"},
	}
	got := []Message{readMessage(t, conn), readMessage(t, conn)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("backlog mismatch (-want +got):\n%s", diff)
	}

	waitSubscribers(t, h, 1)
	_ = h.AppendLine("[DEBUG] live", dappkitty.LevelDebug.Class())
	if m := readMessage(t, conn); m.Text != "[DEBUG] live" || m.Level != "debug" {
		t.Fatalf("live message = %+v", m)
	}
}

func TestHub_CloseDisconnects(t *testing.T) {
	h, url := newTestHub(t, Options{})
	conn := dial(t, url)
	waitSubscribers(t, h, 1)

	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("read after close = %v, want going-away close", err)
	}
	if err := h.AppendLine("late", "c"); err != nil {
		t.Fatalf("append after close: %v", err)
	}
}
