package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll error = %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
}

func TestDefaultSettingsAreUsableWithNoFiles(t *testing.T) {
	c := New(WithUserConfigPath(filepath.Join(t.TempDir(), "missing.toml")))
	if err := c.Load(); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	s := c.Snapshot()
	if s.Editor.TabSize != 4 {
		t.Errorf("expected default TabSize 4, got %d", s.Editor.TabSize)
	}
	if s.UI.Theme != "default-dark" {
		t.Errorf("expected default theme, got %q", s.UI.Theme)
	}
}

func TestUserConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "config.toml")
	writeFile(t, userPath, `
[editor]
tabSize = 2
wordWrap = "on"

[ui]
theme = "solarized-light"
`)

	c := New(WithUserConfigPath(userPath))
	if err := c.Load(); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	s := c.Snapshot()
	if s.Editor.TabSize != 2 {
		t.Errorf("expected TabSize 2, got %d", s.Editor.TabSize)
	}
	if s.Editor.WordWrap != "on" {
		t.Errorf("expected wordWrap on, got %q", s.Editor.WordWrap)
	}
	if s.UI.Theme != "solarized-light" {
		t.Errorf("expected overridden theme, got %q", s.UI.Theme)
	}
	if s.Editor.InsertSpaces != true {
		t.Error("expected untouched field to keep its default")
	}
}

func TestProjectConfigOverridesUserConfig(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "user.toml")
	projectPath := filepath.Join(dir, "project.toml")
	writeFile(t, userPath, "[editor]\ntabSize = 2\n")
	writeFile(t, projectPath, "[editor]\ntabSize = 8\n")

	c := New(WithUserConfigPath(userPath), WithProjectConfigPath(projectPath))
	if err := c.Load(); err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if got := c.Snapshot().Editor.TabSize; got != 8 {
		t.Errorf("expected project config to win with TabSize 8, got %d", got)
	}
}

func TestLoadMalformedTOMLReturnsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "editor = [this is not valid toml")

	c := New(WithUserConfigPath(path))
	err := c.Load()
	if err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
	var perr *ParseError
	if !asParseError(err, &perr) {
		t.Errorf("expected a *ParseError, got %T: %v", err, err)
	}
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}

func TestApplyEnvOverridesFileSettings(t *testing.T) {
	s := Default()
	env := map[string]string{
		"FORGE_TAB_SIZE":  "3",
		"FORGE_THEME":     "midnight",
		"FORGE_AI_ENABLED": "true",
	}
	applyEnv(&s, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	if s.Editor.TabSize != 3 {
		t.Errorf("expected env TabSize 3, got %d", s.Editor.TabSize)
	}
	if s.UI.Theme != "midnight" {
		t.Errorf("expected env theme, got %q", s.UI.Theme)
	}
	if !s.AI.Enabled {
		t.Error("expected AI.Enabled true from env")
	}
}

func TestDeepMergeReplacesSlicesWholesale(t *testing.T) {
	dst := map[string]any{"files": map[string]any{"exclude": []any{"*.log"}}}
	src := map[string]any{"files": map[string]any{"exclude": []any{"*.tmp", "*.bak"}}}

	merged := DeepMerge(dst, src)
	excl := merged["files"].(map[string]any)["exclude"].([]any)
	if len(excl) != 2 {
		t.Errorf("expected src slice to replace dst slice wholesale, got %v", excl)
	}
}
