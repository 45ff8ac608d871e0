package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/client"
)

func TestTokenFilePath(t *testing.T) {
	tmpdir := t.TempDir()
	t.Setenv("HOME", tmpdir)

	path, err := client.TokenFilePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmpdir, client.TokenFileName), path)
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), client.TokenFileName)

	require.NoError(t, client.SaveToken(path, "alice", "token-a"))
	require.Equal(t, "token-a", client.LoadToken(path, "alice"))
	require.Empty(t, client.LoadToken(path, "bob"))

	// entries of other users survive an update
	require.NoError(t, client.SaveToken(path, "bob", "token-b"))
	require.NoError(t, client.SaveToken(path, "alice", "token-a2"))
	require.Equal(t, "token-a2", client.LoadToken(path, "alice"))
	require.Equal(t, "token-b", client.LoadToken(path, "bob"))
}

func TestSaveToken_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), client.TokenFileName)

	require.NoError(t, client.SaveToken(path, "alice", "token-a"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadToken_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), client.TokenFileName)
	require.Empty(t, client.LoadToken(path, "alice"))
}

func TestLoadToken_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), client.TokenFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	require.Empty(t, client.LoadToken(path, "alice"))
}

func TestSaveToken_OverwritesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), client.TokenFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	require.NoError(t, client.SaveToken(path, "alice", "token-a"))
	require.Equal(t, "token-a", client.LoadToken(path, "alice"))
}
