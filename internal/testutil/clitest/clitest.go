// Package clitest runs cobra commands against an in-memory application.
// It lives apart from testutil so service tests can import testutil without
// pulling in the CLI.
package clitest

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/app"
	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/database"
	"github.com/thenoetrevino/kanboard/internal/testutil"
)

// SetupCLITest creates an in-memory repository and an App over it.
// Nothing is published; event delivery is tested elsewhere.
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(cli.BoardEnv, "")

	repo := testutil.SetupTestRepo(t)
	return repo, app.New(repo)
}

// ExecuteCLICommand runs cmd with args against testApp and returns what the
// command wrote to its stdout. Stderr is discarded.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	// nil args would make cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}

	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(cli.WithApp(context.Background(), testApp))
	return out.String(), err
}

// ParseJSON decodes a --json envelope
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}
