package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("SUBTRACK_TEST_DIR", "/tmp/subtrack")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "plain path untouched", path: "/var/lib/subtrack.db", want: "/var/lib/subtrack.db"},
		{name: "tilde", path: "~", want: home},
		{name: "tilde prefix", path: "~/data/subtrack.db", want: filepath.Join(home, "data", "subtrack.db")},
		{name: "env var", path: "$SUBTRACK_TEST_DIR/subtrack.db", want: "/tmp/subtrack/subtrack.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	if p := DefaultDatabasePath(); !strings.HasSuffix(p, filepath.Join("subtrack", "subtrack.db")) {
		t.Errorf("DefaultDatabasePath() = %q", p)
	}
	if d := DefaultConfigDir(); !strings.HasSuffix(d, filepath.Join(".config", "subtrack")) {
		t.Errorf("DefaultConfigDir() = %q", d)
	}
}
