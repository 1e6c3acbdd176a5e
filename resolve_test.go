package dappkitty

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_RootOnlyKeysIgnoredInEnvBlock(t *testing.T) {
	t.Parallel()

	o := ParseOverrides(map[string]any{
		"expandIcon": "ROOT",
		"dev": map[string]any{
			"expandIcon":    "ENV",
			"collapseIcon":  "ENV",
			"productionUrl": "http://localhost:3000",
		},
	})
	cfg := Resolve(StandardDefaults(nil), o, EnvDev)

	if cfg.ExpandIcon != "ROOT" {
		t.Fatalf("expandIcon = %q, want ROOT", cfg.ExpandIcon)
	}
	if cfg.CollapseIcon != "&#9650;" {
		t.Fatalf("collapseIcon = %q, want default", cfg.CollapseIcon)
	}
	if cfg.ProductionURL != "" {
		t.Fatalf("productionUrl = %q, env block must not set it", cfg.ProductionURL)
	}
}

func TestResolve_LogLevelPrecedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		overrides map[string]any
		defaults  Defaults
		env       Env
		want      Level
		source    string
	}{
		{
			name:      "env scoped wins over top level",
			overrides: map[string]any{"logLevel": "warn", "dev": map[string]any{"logLevel": "error"}},
			defaults:  StandardDefaults(nil),
			env:       EnvDev,
			want:      LevelError,
			source:    "user env override",
		},
		{
			name:      "top level only",
			overrides: map[string]any{"logLevel": "warn"},
			defaults:  StandardDefaults(nil),
			env:       EnvDev,
			want:      LevelWarn,
			source:    "user override",
		},
		{
			name:     "env default",
			defaults: Defaults{LogLevel: LevelInfo, Envs: map[Env]Layer{EnvLocal: {LogLevel: LevelError}}},
			env:      EnvLocal,
			want:     LevelError,
			source:   "env default",
		},
		{
			name:     "top level default",
			defaults: Defaults{LogLevel: LevelInfo},
			env:      EnvLocal,
			want:     LevelInfo,
			source:   "default",
		},
		{
			name:      "legacy user env app level",
			overrides: map[string]any{"dev": map[string]any{"dapp": map[string]any{"logLevel": "warn"}}},
			defaults:  StandardDefaults(nil),
			env:       EnvDev,
			want:      LevelWarn,
			source:    "user env app.logLevel",
		},
		{
			name:     "standard dev default via app payload",
			defaults: StandardDefaults(nil),
			env:      EnvDev,
			want:     LevelKitty,
			source:   "env default app.logLevel",
		},
		{
			name:     "standard local default via app payload",
			defaults: StandardDefaults(nil),
			env:      EnvLocal,
			want:     LevelDebug,
			source:   "env default app.logLevel",
		},
		{
			name:   "nothing configured",
			env:    EnvDev,
			want:   LevelDebug,
			source: "fallback",
		},
		{
			name:      "unparseable levels fall through",
			overrides: map[string]any{"logLevel": "loud", "dev": map[string]any{"logLevel": 3}},
			env:       EnvDev,
			want:      LevelDebug,
			source:    "fallback",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Resolve(tc.defaults, ParseOverrides(tc.overrides), tc.env)
			if cfg.LogLevel != tc.want || cfg.LevelSource != tc.source {
				t.Fatalf("level = %v (%s), want %v (%s)", cfg.LogLevel, cfg.LevelSource, tc.want, tc.source)
			}
		})
	}
}

func TestResolve_UnknownKeysDropped(t *testing.T) {
	t.Parallel()

	o := ParseOverrides(map[string]any{
		"foo":   map[string]any{"bar": 1},
		"baz":   "scalar",
		"theme": map[string]any{"color": "puzzl-dark"},
		"dev":   map[string]any{"foo": map[string]any{"x": true}},
	})
	cfg := Resolve(StandardDefaults(nil), o, EnvDev)

	if _, ok := cfg.Payloads["foo"]; ok {
		t.Fatal("unknown key foo leaked into the configuration")
	}
	if _, ok := cfg.Payloads["baz"]; ok {
		t.Fatal("unknown key baz leaked into the configuration")
	}
	if cfg.Theme() != "puzzl-dark" {
		t.Fatalf("theme = %q, want puzzl-dark", cfg.Theme())
	}
}

func TestResolve_PayloadLayering(t *testing.T) {
	t.Parallel()

	h := NewHost("http://localhost:3000/?envkitty=local")
	o := ParseOverrides(map[string]any{
		"window": map[string]any{"API_URL": "http://top"},
		"local": map[string]any{
			"window": map[string]any{"API_URL": "http://env", "CHAIN": 5},
		},
		"dev": map[string]any{"theme": map[string]any{"color": "ignored"}},
	})
	cfg := Resolve(StandardDefaults(h), o, EnvLocal)

	want := map[string]Payload{
		TargetWindow: {"API_URL": "http://env", "CHAIN": 5},
		TargetTheme:  {"color": "puzzl-dark"},
		TargetApp:    {"logLevel": "debug"},
	}
	if diff := cmp.Diff(want, cfg.Payloads); diff != "" {
		t.Fatalf("payloads mismatch (-want +got):\n%s", diff)
	}
	if cfg.Env != EnvLocal {
		t.Fatalf("env = %q", cfg.Env)
	}
}

func TestResolve_NonObjectOverridesAreEmpty(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, "debug", 42, []any{"x"}} {
		o := ParseOverrides(v)
		if diff := cmp.Diff(Overrides{}, o); diff != "" {
			t.Fatalf("ParseOverrides(%v) not empty:\n%s", v, diff)
		}
	}
}

func TestResolve_EnvStampedLast(t *testing.T) {
	t.Parallel()

	o := ParseOverrides(map[string]any{"env": "dev"})
	cfg := Resolve(StandardDefaults(nil), o, EnvProd)
	if cfg.Env != EnvProd {
		t.Fatalf("env = %q, want prod", cfg.Env)
	}
	if cfg := Resolve(Defaults{}, Overrides{}, Env("bogus")); cfg.Env != EnvProd {
		t.Fatalf("invalid env = %q, want prod", cfg.Env)
	}
}

func TestApplyTargets(t *testing.T) {
	t.Parallel()

	theme := NewValues(map[string]any{"font": "mono"})
	var got Payload
	d := Defaults{
		Targets: map[string]Target{
			TargetTheme: theme,
			"wallet":    TargetFunc(func(p Payload) { got = p }),
			"empty":     NewValues(nil),
		},
		Payloads: map[string]Payload{
			TargetTheme: {"color": "puzzl-dark"},
			"wallet":    {"chainId": 1},
		},
	}
	cfg := Resolve(d, Overrides{}, EnvDev)

	var reports []string
	cfg.ApplyTargets(func(msg string) { reports = append(reports, msg) })

	if diff := cmp.Diff(map[string]any{"font": "mono", "color": "puzzl-dark"}, theme.Snapshot()); diff != "" {
		t.Fatalf("theme target (-want +got):\n%s", diff)
	}
	if got["chainId"] != 1 {
		t.Fatalf("wallet target payload = %v", got)
	}
	if diff := cmp.Diff([]string{"No override found for target: empty"}, reports); diff != "" {
		t.Fatalf("reports (-want +got):\n%s", diff)
	}
}

func TestOverrides_Merge(t *testing.T) {
	t.Parallel()

	a := ParseOverrides(map[string]any{"logLevel": "info", "dev": map[string]any{"logLevel": "warn"}})
	b := ParseOverrides(map[string]any{"dev": map[string]any{"theme": map[string]any{"color": "x"}}})
	m := a.Merge(b)

	if m.LogLevel != LevelInfo {
		t.Fatalf("merged level = %v", m.LogLevel)
	}
	if m.Envs[EnvDev].LogLevel != LevelWarn || m.Envs[EnvDev].Payloads["theme"]["color"] != "x" {
		t.Fatalf("merged dev block = %+v", m.Envs[EnvDev])
	}
}
