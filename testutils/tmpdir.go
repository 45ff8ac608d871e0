package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTmpDir moves the test into a fresh temporary directory. HOME is
// pointed there as well so the token cache of the developer running the
// tests is never touched.
func SetupTmpDir(t *testing.T) string {
	tempDir, err := os.MkdirTemp("", "test")
	require.NoError(t, err)

	err = os.Chdir(tempDir)
	require.NoError(t, err)

	t.Setenv("HOME", tempDir)

	// Return the path of the temporary directory for cleanup purposes
	return tempDir
}
