package dappkitty

import (
	"bytes"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConsoleIntercept_OriginalCalledFirst(t *testing.T) {
	t.Parallel()

	h, _, sink, con := startSession(t, LevelDebug)
	h.Console().Warn("low balance", 3)
	h.Console().Log("plain")

	if len(con.calls) != 2 || con.calls[0].Method != "warn" || con.calls[1].Method != "log" {
		t.Fatalf("original console calls = %+v", con.calls)
	}
	want := []string{"[WARN] low balance 3", "[INFO] plain"}
	if diff := cmp.Diff(want, sink.texts()); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}
}

func TestConsoleIntercept_LevelsAndKitty(t *testing.T) {
	t.Parallel()

	h, _, sink, con := startSession(t, LevelWarn)
	h.Console().Info("hidden")
	h.Console().Error("shown")
	if diff := cmp.Diff([]string{"[ERROR] shown"}, sink.texts()); diff != "" {
		t.Fatalf("warn ceiling (-want +got):\n%s", diff)
	}

	hk, sk, sinkK, conK := startSession(t, LevelKitty)
	hk.Console().Error("console error")
	sk.Info("direct")
	if diff := cmp.Diff([]string{"[INFO] direct"}, sinkK.texts()); diff != "" {
		t.Fatalf("kitty mode (-want +got):\n%s", diff)
	}
	if len(con.calls) != 2 || len(conK.calls) != 1 {
		t.Fatal("original console must see every call")
	}
}

func TestInstallConsoleIntercept_Idempotent(t *testing.T) {
	t.Parallel()

	h, _, sink, con := startSession(t, LevelDebug)
	if InstallConsoleIntercept(h) {
		t.Fatal("second install reported success")
	}
	if _, err := NewBuilder(h).WithLevel(LevelDebug).Build(); err != nil {
		t.Fatal(err)
	}
	sink.reset()

	h.Console().Info("once")
	if diff := cmp.Diff([]string{"[INFO] once"}, sink.texts()); diff != "" {
		t.Fatalf("lines (-want +got):\n%s", diff)
	}
	if len(con.calls) != 1 {
		t.Fatalf("original console called %d times", len(con.calls))
	}
	if h.OriginalConsole() != Console(con) {
		t.Fatal("original console binding lost")
	}
}

func TestConsoleIntercept_InactiveHostPassesThrough(t *testing.T) {
	t.Parallel()

	con := &stubConsole{}
	h := NewHost("http://localhost:3000/", WithConsole(con), WithSink(&stubSink{}))
	InstallConsoleIntercept(h)
	h.Console().Error("still printed")
	if len(con.calls) != 1 {
		t.Fatal("call did not reach the original console")
	}
}

func TestWriterConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewWriterConsole(&buf)
	c.Warn("a", 1)
	c.Log("b")
	if got := buf.String(); got != "warn: a 1\nb\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestConsoleIntercept_NilPointerArgument(t *testing.T) {
	t.Parallel()

	h, s, sink, con := startSession(t, LevelDebug)
	var u *url.URL
	var err *url.Error
	h.Console().Log("u", u)
	h.Console().Error("rpc", err)
	h.Console().Info("still here")

	want := []string{"[INFO] u null", "[ERROR] rpc null", "[INFO] still here"}
	if diff := cmp.Diff(want, sink.texts()); diff != "" {
		t.Fatalf("lines (-want +got):
%s", diff)
	}
	if s.Level() != LevelDebug || con.failures() != 0 {
		t.Fatalf("level %v failures %d", s.Level(), con.failures())
	}
}

type brokenStringer struct{}

func (brokenStringer) String() string { panic("no string for you") }

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestFormatArgs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		args []any
		want string
	}{
		{[]any{"a", "b"}, "a b"},
		{[]any{nil}, "null"},
		{[]any{42, true, 1.5}, "42 true 1.5"},
		{[]any{errors.New("bad")}, "bad"},
		{[]any{LevelWarn}, "warn"},
		{[]any{map[string]int{"n": 1}}, `{"n":1}`},
		{[]any{[]string{"x", "y"}}, `["x","y"]`},
		{[]any{point{1, 2}}, `{"x":1,"y":2}`},
		{[]any{func() {}}, "func()"},
		{[]any{[]byte("raw")}, "raw"},
		{[]any{(*url.URL)(nil)}, "null"},
		{[]any{error((*url.Error)(nil))}, "null"},
		{[]any{"ok", brokenStringer{}}, "ok %!v(PANIC=String method: no string for you)"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := formatArgs(tc.args); got != tc.want {
			t.Fatalf("formatArgs(%v) = %q, want %q", tc.args, got, tc.want)
		}
	}
}
