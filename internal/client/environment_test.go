package client_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/internal/client"
	"github.com/apdavison/hbp-validation-client/testutils"
)

func TestResolveEnvironment(t *testing.T) {
	tmpdir := testutils.SetupTmpDir(t)
	defer os.RemoveAll(tmpdir)

	tt := []struct {
		name        string
		environment string
		url         string
		err         bool
	}{
		{name: "default", environment: "", url: client.ProductionURL},
		{name: "production", environment: "production", url: client.ProductionURL},
		{name: "dev", environment: "dev", url: client.DevURL},
		{name: "unknown without config", environment: "staging", err: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			url, err := client.ResolveEnvironment(tc.environment)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.url, url)
		})
	}
}

func TestResolveEnvironment_ConfigFile(t *testing.T) {
	tmpdir := testutils.SetupTmpDir(t)
	defer os.RemoveAll(tmpdir)

	config := `{"staging": {"url": "https://validation-staging.example.org"}}`
	require.NoError(t, os.WriteFile(client.EnvironmentConfigFile, []byte(config), 0o644))

	url, err := client.ResolveEnvironment("staging")
	require.NoError(t, err)
	require.Equal(t, "https://validation-staging.example.org", url)

	_, err = client.ResolveEnvironment("unlisted")
	require.Error(t, err)
}

func TestResolveEnvironment_CorruptConfigFile(t *testing.T) {
	tmpdir := testutils.SetupTmpDir(t)
	defer os.RemoveAll(tmpdir)

	require.NoError(t, os.WriteFile(client.EnvironmentConfigFile, []byte("{not json"), 0o644))

	_, err := client.ResolveEnvironment("staging")
	require.Error(t, err)
}
