package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "history")
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	path := writeOutlineFile(t, t.TempDir(), "stack.yaml", stackOutline)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", path, "--format", "tap"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "tap"`)
}

func TestRootCommand_RunsWithExplicitFormat(t *testing.T) {
	path := writeOutlineFile(t, t.TempDir(), "stack.yaml", stackOutline)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", path, "--format", "progress"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "***")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("nested"))
	assert.True(t, isValidFormat("progress"))
	assert.False(t, isValidFormat("tap"))
	assert.False(t, isValidFormat(""))
}
