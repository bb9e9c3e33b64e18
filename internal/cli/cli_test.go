package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efmtlang/elfmt/internal/cli"
)

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand_HasExpectedSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{"format", "check", "init", "migrate", "version"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %q not found", name)
		assert.Equal(t, name, found.Name())
	}
}

func TestFormatCommand_HasExpectedFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	for _, name := range []string{"format", "list", "dry-run", "no-backups"} {
		assert.NotNil(t, formatCmd.Flags().Lookup(name), "flag %q should exist", name)
	}
}

func TestCheckCommand_HasExpectedFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	for _, name := range []string{"format", "list"} {
		assert.NotNil(t, checkCmd.Flags().Lookup(name), "flag %q should exist", name)
	}

	formatFlag := checkCmd.Flags().Lookup("format")
	assert.Equal(t, "diff", formatFlag.DefValue)
}

func TestRootCommand_HasGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{"debug", "config", "color", "width", "indent", "jobs"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q should exist", name)
	}

	colorFlag := cmd.PersistentFlags().Lookup("color")
	assert.Equal(t, "auto", colorFlag.DefValue)
}

func TestExitCodes_AreDistinct(t *testing.T) {
	t.Parallel()

	codes := []int{
		cli.ExitSuccess,
		cli.ExitUnformatted,
		cli.ExitInvalidUsage,
		cli.ExitConfigError,
		cli.ExitInternalError,
		cli.ExitIOError,
	}

	seen := make(map[int]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "exit code %d reused", code)
		seen[code] = true
	}
}

func TestExitError_CarriesCode(t *testing.T) {
	t.Parallel()

	err := &cli.ExitError{Code: cli.ExitIOError}
	assert.Equal(t, cli.ExitIOError, err.Code)
	assert.NotEmpty(t, err.Error())
}
