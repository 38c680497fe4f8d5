package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectListMergesInlineAndFileInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.txt")
	require.NoError(t, os.WriteFile(path, []byte("carol\n\ndave\n"), 0o600))

	values, err := collectList([]string{"alice", "bob"}, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, values)
}

func TestCollectListWithoutFileReturnsInlineOnly(t *testing.T) {
	values, err := collectList([]string{"alice"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, values)
}

func TestCollectListMissingFileErrors(t *testing.T) {
	_, err := collectList(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestNewRootCmdRequiresHost(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--pass", "x"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	assert.Error(t, err)
}
