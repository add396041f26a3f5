package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"pyfix/internal/project"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "pyfix.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write pyfix.toml: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	cfg, err := project.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Style.MaxLineLength != 79 {
		t.Errorf("max_line_length: want 79, got %d", cfg.Style.MaxLineLength)
	}
	if cfg.Style.IndentSize != 4 {
		t.Errorf("indent_size: want 4, got %d", cfg.Style.IndentSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[style]
max_line_length = 99
indent_size = 2
hang_closing = true

[fix]
select = ["E2", "E501"]
ignore = ["E226"]
`)
	cfg, err := project.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Style.MaxLineLength != 99 || cfg.Style.IndentSize != 2 || !cfg.Style.HangClosing {
		t.Errorf("style config mismatch: %+v", cfg.Style)
	}
	if len(cfg.Fix.Select) != 2 || cfg.Fix.Select[0] != "E2" {
		t.Errorf("fix select mismatch: %+v", cfg.Fix)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[style]\nmax_width = 80\n")
	if _, err := project.Load(path); err == nil {
		t.Fatal("want error for unknown key, got nil")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[style]\nmax_line_length = 0\n")
	if _, err := project.Load(path); err == nil {
		t.Fatal("want error for zero max_line_length, got nil")
	}
}

func TestFindPyfixTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := project.FindPyfixToml(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !ok {
		t.Fatal("want manifest found")
	}
	if filepath.Dir(path) != root {
		t.Errorf("manifest dir: want %q, got %q", root, filepath.Dir(path))
	}
}

func TestFixConfigAllowed(t *testing.T) {
	cases := []struct {
		cfg  project.FixConfig
		code string
		want bool
	}{
		{project.FixConfig{}, "E225", true},
		{project.FixConfig{Select: []string{"E2"}}, "E225", true},
		{project.FixConfig{Select: []string{"E2"}}, "E501", false},
		{project.FixConfig{Select: []string{"E2"}, Ignore: []string{"E22"}}, "E225", false},
		{project.FixConfig{Ignore: []string{"W"}}, "W291", false},
	}
	for _, tc := range cases {
		if got := tc.cfg.Allowed(tc.code); got != tc.want {
			t.Errorf("Allowed(%q) with %+v: want %v, got %v", tc.code, tc.cfg, tc.want, got)
		}
	}
}
