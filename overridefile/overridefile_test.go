package overridefile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/trickstertwo/dappkitty"
)

const sample = `
logLevel: warn
productionUrl: https://app.example.org
theme:
  color: puzzl-dark
dev:
  logLevel: kitty
  window:
    API_URL: http://localhost:8080
    retries: [1, 2]
`

func TestLoad_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cfg/dappkitty.yaml", []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := Load(fs, "/cfg/dappkitty.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := dappkitty.Overrides{
		LogLevel:      dappkitty.LevelWarn,
		ProductionURL: "https://app.example.org",
		Payloads: map[string]dappkitty.Payload{
			"theme": {"color": "puzzl-dark"},
		},
		Envs: map[dappkitty.Env]dappkitty.Overrides{
			dappkitty.EnvDev: {
				LogLevel: dappkitty.LevelKitty,
				Payloads: map[string]dappkitty.Payload{
					"window": {"API_URL": "http://localhost:8080", "retries": []any{1, 2}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONAndNonObject(t *testing.T) {
	o, err := Parse([]byte(`{"logLevel": "error", "dapp": {"name": "demo"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.LogLevel != dappkitty.LevelError || o.Payloads["dapp"]["name"] != "demo" {
		t.Fatalf("unexpected overrides: %+v", o)
	}

	if _, err := Parse([]byte("just a string")); err == nil {
		t.Fatal("expected decode error for scalar document")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(afero.NewMemMapFs(), "/nope.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFind(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Find(fs, "/app"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("find in empty dir = %v, want ErrNotFound", err)
	}
	_ = afero.WriteFile(fs, "/app/dappkitty.json", []byte(`{}`), 0o644)
	_ = afero.WriteFile(fs, "/app/dappkitty.yml", []byte(``), 0o644)
	p, err := Find(fs, "/app")
	if err != nil || p != "/app/dappkitty.yml" {
		t.Fatalf("find = %q, %v", p, err)
	}
}
