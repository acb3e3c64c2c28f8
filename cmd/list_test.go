package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

func executeList(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newListCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd.Execute()
}

func TestListCmd_RequiresPaths(t *testing.T) {
	swapWorkflow(t, &stubWorkflow{})

	err := executeList(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one source")
}

func TestListCmd_PassesRootsAndConfig(t *testing.T) {
	stub := &stubWorkflow{}
	swapWorkflow(t, stub)

	require.NoError(t, executeList(t, "pkg", "other"))

	require.Len(t, stub.listArgs.Roots, 2)
	assert.Equal(t, m.Path("pkg"), stub.listArgs.Roots[0])

	require.NotNil(t, stub.listArgs.Config)
	assert.True(t, stub.listArgs.Config.MatchFilename("mod.py"))
}
