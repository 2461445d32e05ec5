package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "arbor version "+strings.TrimSpace(arbor.Version)+"\n", out)
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph", "--log-level", "error", "2", "1")
	assert.Equal(t, "graph TD\n    n2((\"2\"))\n    n2 -- L --> n1\n    n1[\"1\"]\n", out)
}

func TestGraphCommand_QuotedValues(t *testing.T) {
	out := execute(t, "graph", "2 1")
	assert.Equal(t, "graph TD\n    n2((\"2\"))\n    n2 -- L --> n1\n    n1[\"1\"]\n", out)
}

func TestGraphCommand_RejectsBadLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"graph", "--log-level", "loud", "1"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
