package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Editor.UndoLimit != 1000 || !cfg.Editor.MagicLinks {
		t.Errorf("unexpected defaults: %+v", cfg.Editor)
	}
	if len(cfg.Editor.LinkSchemes) != 4 {
		t.Errorf("LinkSchemes = %v", cfg.Editor.LinkSchemes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"undo limit", func(c *Config) { c.Editor.UndoLimit = 0 }},
		{"empty scheme", func(c *Config) { c.Editor.LinkSchemes = []string{"http://", " "} }},
		{"min length", func(c *Config) { c.Spell.MinLength = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrValidationFailed) {
				t.Errorf("Validate() = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[editor]
undoLimit = 50
magicLinks = false

[spell]
words = ["folio", "splice"]

[log]
level = "debug"
`)
	cfg, err := Parse(FormatTOML, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Editor.UndoLimit != 50 || cfg.Editor.MagicLinks {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if len(cfg.Spell.Words) != 2 || cfg.Spell.Words[1] != "splice" {
		t.Errorf("spell.words = %v", cfg.Spell.Words)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
	// Untouched settings keep their defaults.
	if !cfg.Spell.Enabled || cfg.Editor.LinkTriggers != " )>" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
editor:
  undoLimit: 20
  linkSchemes: ["https://"]
spell:
  enabled: false
`)
	cfg, err := Parse(FormatYAML, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Editor.UndoLimit != 20 || cfg.Spell.Enabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Editor.LinkSchemes) != 1 || cfg.Editor.LinkSchemes[0] != "https://" {
		t.Errorf("linkSchemes = %v", cfg.Editor.LinkSchemes)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(FormatTOML, []byte("[editor\nundoLimit = "))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("err = %v, want *ParseError", err)
	}
	if _, err := Parse(FormatYAML, []byte("editor:\n  undoLimit: -3\n")); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
	if _, err := Parse(Format("ini"), nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"folio.toml", FormatTOML, true},
		{"folio.YAML", FormatYAML, true},
		{"conf/folio.yml", FormatYAML, true},
		{"folio.json", "", false},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatOf(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	m := LoadEnv([]string{
		"FOLIO_EDITOR_UNDO_LIMIT=50",
		"FOLIO_LOG_LEVEL=debug",
		`FOLIO_EDITOR_LINK_SCHEMES=["gopher://"]`,
		"FOLIO_SPELL_ENABLED=off",
		"HOME=/root",
	})
	editor, ok := m["editor"].(map[string]any)
	if !ok {
		t.Fatalf("editor section missing: %v", m)
	}
	if editor["undoLimit"] != int64(50) {
		t.Errorf("undoLimit = %#v", editor["undoLimit"])
	}
	if _, ok := editor["linkSchemes"].([]any); !ok {
		t.Errorf("linkSchemes = %#v", editor["linkSchemes"])
	}
	if m["spell"].(map[string]any)["enabled"] != false {
		t.Errorf("spell.enabled = %#v", m["spell"])
	}
	if _, ok := m["home"]; ok {
		t.Error("unprefixed variable loaded")
	}
}

func TestEnvToPath(t *testing.T) {
	tests := map[string]string{
		"FOLIO_EDITOR_UNDO_LIMIT":    "editor.undoLimit",
		"FOLIO_LOG_LEVEL":            "log.level",
		"FOLIO_EDITOR_LINK_TRIGGERS": "editor.linkTriggers",
		"FOLIO_SPELL":                "spell",
	}
	for env, want := range tests {
		if got := envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	if err := os.WriteFile(path, []byte("[editor]\nundoLimit = 10\n[log]\nlevel = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.UndoLimit != 10 {
		t.Errorf("undoLimit = %d, want 10", cfg.Editor.UndoLimit)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log.level = %q, want the environment value", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.UndoLimit != Default().Editor.UndoLimit {
		t.Error("missing file should leave defaults")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{"editor": map[string]any{"a": 1, "b": 2}, "x": 1}
	src := map[string]any{"editor": map[string]any{"b": 3}, "x": map[string]any{"y": 1}}
	out := DeepMerge(dst, src)
	ed := out["editor"].(map[string]any)
	if ed["a"] != 1 || ed["b"] != 3 {
		t.Errorf("editor = %v", ed)
	}
	if _, ok := out["x"].(map[string]any); !ok {
		t.Errorf("x = %v, want replaced by map", out["x"])
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  undoLimit: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config, err error) {
			if err == nil {
				got <- cfg
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(path, []byte("editor:\n  undoLimit: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Editor.UndoLimit != 7 {
			t.Errorf("reloaded undoLimit = %d, want 7", cfg.Editor.UndoLimit)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after file change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not stop after cancel")
	}
}
