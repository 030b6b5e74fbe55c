package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p.Theme != defaultTheme || p.Language != "" {
		t.Fatalf("Load = %+v, want theme %q and no language", p, defaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "matchday")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writePrefs(t, dir, "theme = \"Slate\"\nlanguage = \" de \"\n")

	p := Load("")
	if p.Theme != "Slate" || p.Language != "de" {
		t.Fatalf("Load = %+v", p)
	}
}

func TestLoad_FallsBackOnBadContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty theme", body: "theme = \"  \"\n"},
		{name: "invalid toml", body: "not valid toml {{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Load(writePrefs(t, t.TempDir(), tt.body))
			if p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
		})
	}
}

func TestSave_RoundTripsAndCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Kanagawa", Language: "de"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind: %v", err)
	}

	p := Load(path)
	if p.Theme != "Kanagawa" || p.Language != "de" {
		t.Fatalf("Load after Save = %+v", p)
	}
}
