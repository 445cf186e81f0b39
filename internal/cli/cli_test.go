package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the CLI:
// - Root command summarizes a file to stdout in text format
// - --format json emits the model as JSON
// - A skipped file exits cleanly
// - A malformed file surfaces the syntax error
// - watch rejects directories
//
// These tests share the package-level rootCmd, so they do not run in
// parallel.

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_Text(t *testing.T) {
	path := writeFixture(t, "sample.py", `"""Sample."""

class Greeter:
    def greet(self, name):
        if name:
            return name
        return "stranger"

def main():
    return 0

if __name__ == "__main__":
    main()
`)

	out, err := execute(t, "--format", "text", path)
	require.NoError(t, err)

	assert.Contains(t, out, "class Greeter")
	assert.Contains(t, out, "* greet(self, name)")
	assert.Contains(t, out, "Entry point:")
	assert.Contains(t, out, "Executable: yes")
}

func TestRootCommand_VerboseConditions(t *testing.T) {
	path := writeFixture(t, "cond.py", `def f(x):
    if x:
        return 1
`)

	out, err := execute(t, "--format", "text", "--verbose", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[when: x]")
}

func TestRootCommand_JSON(t *testing.T) {
	path := writeFixture(t, "sample.py", "def f():\n    return 1\n")

	out, err := execute(t, "--format", "json", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
	assert.Contains(t, out, `"top_level_functions"`)
	assert.Contains(t, out, `"f"`)
}

func TestRootCommand_SkippedFile(t *testing.T) {
	path := writeFixture(t, "notes.txt", "not python\n")

	_, err := execute(t, "--format", "text", path)
	assert.NoError(t, err)
}

func TestRootCommand_SyntaxError(t *testing.T) {
	path := writeFixture(t, "broken.py", "def broken(:\n    pass\n")

	_, err := execute(t, "--format", "text", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestWatch_RejectsDirectory(t *testing.T) {
	err := runWatch(watchCmd, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}
