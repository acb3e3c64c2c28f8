package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"check", "list", "version"} {
		assert.Truef(t, names[want], "expected subcommand %q", want)
	}
}

func TestRootCmd_ShowsHelpWithoutArgs(t *testing.T) {
	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "test.log"))
	t.Cleanup(func() { viper.Set(logFilenameKey, defaultLogFilename) })

	cmd := baseRootCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "docsleuth")
}

func TestParsePaths(t *testing.T) {
	paths := parsePaths([]string{"a", "b/c.py"})

	require.Len(t, paths, 2)
	assert.Equal(t, m.Path("a"), paths[0])
	assert.Equal(t, m.Path("b/c.py"), paths[1])
}
