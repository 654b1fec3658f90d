package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// complete runs cobra's hidden completion command and returns the offered
// values without descriptions or the trailing directive line.
func complete(t *testing.T, args ...string) []string {
	t.Helper()
	var stdout bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs(append([]string{"__complete"}, args...))
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("complete %v: %v", args, err)
	}
	var values []string
	for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		value, _, _ := strings.Cut(line, "\t")
		values = append(values, value)
	}
	return values
}

func TestCompleteFormat(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"pdf", "png", "svg"}},
		{"p", []string{"pdf", "png"}},
		{"S", []string{"svg"}},
		{"gif", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := complete(t, "draw", "--format", tt.prefix)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompleteFixup(t *testing.T) {
	got := complete(t, "draw", "--fixup", "stu")
	if strings.Join(got, ",") != "stuttgart,stuttgart@1" {
		t.Errorf("builtin: got %v", got)
	}

	file := filepath.Join(t.TempDir(), "fixups.toml")
	doc := "[[fixup]]\nname = \"ulm\"\nversion = 2\nnum_vertices = 3\nnum_edges = 2\n"
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	got = complete(t, "draw", "--fixups", file, "--fixup", "")
	for _, want := range []string{"stuttgart@1", "ulm", "ulm@2"} {
		if !slices.Contains(got, want) {
			t.Errorf("with --fixups: %v missing %s", got, want)
		}
	}
}

func TestCompletionScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var stdout bytes.Buffer
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&stdout)
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(stdout.String(), "netdraw") {
				t.Errorf("%s script does not mention netdraw", shell)
			}
		})
	}
}
