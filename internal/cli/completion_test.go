package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command with args and returns its stdout
func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCompletion_FlagValues(t *testing.T) {
	tests := []struct {
		flag string
		want []string
	}{
		{"--backend", []string{"bolt", "sqlite"}},
		{"--log-level", []string{"debug", "info", "warn", "error"}},
		{"--log-format", []string{"text", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			out := executeRoot(t, "__complete", "list", tt.flag, "")

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.NotEmpty(t, lines)
			assert.Equal(t, tt.want, lines[:len(lines)-1])
			assert.Equal(t, ":4", lines[len(lines)-1], "file completion must be disabled")
		})
	}
}

func TestCompletion_ListCollection(t *testing.T) {
	out := executeRoot(t, "__complete", "list", "--collection", "")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"active", "archive", "pin", ":4"}, lines)
}

func TestCompletion_Script(t *testing.T) {
	out := executeRoot(t, "completion", "bash")

	assert.Contains(t, out, "abook")
	assert.Contains(t, out, "__start_abook")
}
