package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdidvp/commitlint/internal/adapters/inbound/cli"
	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCheckCmd_ValidMessage(t *testing.T) {
	out, err := runCLI(t, "", "check", "--path", t.TempDir(), "-m", "feat: add new feature")
	require.NoError(t, err)
	assert.Contains(t, out, "commit message is valid")
}

func TestCheckCmd_InvalidMessage(t *testing.T) {
	out, err := runCLI(t, "", "check", "--path", t.TempDir(), "-m", "feat:Missing colon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed: 1 violation(s)")
	assert.Contains(t, out, "[header-malformed]")
}

func TestCheckCmd_Stdin(t *testing.T) {
	out, err := runCLI(t, "fix: handle stdin\n", "check", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestCheckCmd_EditFileStripsComments(t *testing.T) {
	dir := t.TempDir()
	msgFile := filepath.Join(dir, "COMMIT_EDITMSG")
	content := "feat: add login\n\n# Please enter the commit message for your changes.\n# ------------------------ >8 ------------------------\ndiff --git a/x b/x\n"
	require.NoError(t, os.WriteFile(msgFile, []byte(content), 0o644))

	out, err := runCLI(t, "", "check", "--path", dir, "--edit", msgFile)
	require.NoError(t, err, out)
}

func TestCheckCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "", "check", "--path", t.TempDir(), "--json", "-m", "invalid: bad commit type")
	require.Error(t, err)

	var result domain.LintResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, []domain.RuleID{domain.RuleTypeEnum}, result.Rules())
}

func TestCheckCmd_ConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[rules.type]\nenum = [\"feat\", \"fix\", \"docs\"]\n"), 0o644))

	_, err := runCLI(t, "", "check", "--path", dir, "-c", cfgPath, "-m", "chore: tidy")
	require.Error(t, err)

	_, err = runCLI(t, "", "check", "--path", dir, "-c", cfgPath, "-m", "docs: tidy")
	require.NoError(t, err)
}

func TestCheckCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commitlint.toml"), []byte("[rules.type]\ncase = \"loud\"\n"), 0o644))

	_, err := runCLI(t, "", "check", "--path", dir, "-m", "feat: x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown case "loud"`)
}

func TestCheckCmd_ConflictingSources(t *testing.T) {
	_, err := runCLI(t, "", "check", "-m", "feat: x", "--rev", "HEAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use only one of")
}

func TestCheckCmd_RevAndRange(t *testing.T) {
	dir := t.TempDir()
	git(t, dir, "init")
	git(t, dir, "config", "user.email", "test@test.com")
	git(t, dir, "config", "user.name", "Test")
	git(t, dir, "config", "commit.gpgsign", "false")
	git(t, dir, "commit", "--allow-empty", "-m", "feat: first")
	git(t, dir, "commit", "--allow-empty", "-m", "Bad commit")
	git(t, dir, "commit", "--allow-empty", "-m", "fix: third")

	out, err := runCLI(t, "", "check", "--path", dir, "--rev", "HEAD")
	require.NoError(t, err, out)

	_, err = runCLI(t, "", "check", "--path", dir, "--rev", "HEAD~1")
	require.Error(t, err)

	out, err = runCLI(t, "", "check", "--path", dir, "--last", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 commit(s) invalid")
	assert.Contains(t, out, "Bad commit")

	out, err = runCLI(t, "", "check", "--path", dir, "--from", "HEAD~1", "--json")
	require.NoError(t, err, out)
	var reports []domain.CommitReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Result.Valid)
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commitlint dev")
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}
