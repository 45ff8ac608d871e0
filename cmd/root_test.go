package cmd_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apdavison/hbp-validation-client/cmd"
	"github.com/apdavison/hbp-validation-client/testutils"
)

func TestRootCmdPersistentPreRunE(t *testing.T) {
	tmpdir := testutils.SetupTmpDir(t)
	defer os.RemoveAll(tmpdir)

	tt := []struct {
		name string
		args []string
		err  string
	}{
		{name: "invalid log level", args: []string{"--logLevel", "chatty", "--url", testutils.RootUrl},
			err: "invalid log level: chatty. Valid log levels are:"},
		{name: "unknown environment", args: []string{"--logLevel", "info", "--url", "", "--env", "staging"},
			err: "cannot load environment"},
		{name: "url overrides environment", args: []string{"--url", testutils.RootUrl, "--env", "staging"},
			err: "username is required"},
		{name: "default environment", args: []string{"--env", "production"},
			err: "username is required"},
	}

	command := newTestCommand(t, "get", cmd.ModelGetCmdRunE)
	cmd.SetupModelGetCmdFlags(command)

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testutils.Execute(t, command, tc.args...)
			require.Error(t, err)
			require.ErrorContains(t, err, tc.err)
		})
	}
}
