package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidOutline(t *testing.T) {
	path := writeOutlineFile(t, t.TempDir(), "stack.yaml", stackOutline)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "nested"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ "+path)
}

func TestValidateValidOutlineJSON(t *testing.T) {
	path := writeOutlineFile(t, t.TempDir(), "stack.yaml", stackOutline)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "nested"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--json"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestValidateInvalidOutline(t *testing.T) {
	dir := t.TempDir()
	good := writeOutlineFile(t, dir, "good.yaml", stackOutline)
	bad := writeOutlineFile(t, dir, "bad.yaml", "name: broken\ncontexts: []\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "nested"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{good, bad})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 outline(s) invalid")

	output := buf.String()
	assert.Contains(t, output, "✓ "+good, "valid files still listed")
	assert.Contains(t, output, "✗ "+bad)
	assert.Contains(t, output, "invalid outline")
}

func TestValidateInvalidOutlineJSON(t *testing.T) {
	path := writeOutlineFile(t, t.TempDir(), "bad.yaml", "contexts:\n  - describe: orphan\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "nested"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeLoadFailed, resp.Error.Code)
}

func TestValidateNonExistentPath(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "nested"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/specs"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E002")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
