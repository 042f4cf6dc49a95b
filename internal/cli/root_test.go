package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_ReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int main(void)\n{\n\treturn(0);\n}\n"), 0o644))

	out, err := execute(t, "--format", "gcc", path)
	assert.ErrorIs(t, err, ErrViolations)
	assert.Contains(t, out, path+":1:1: major: Missing or malformed Epitech header. [HEADER]\n")
	assert.Contains(t, out, path+":3:2: minor: Must have space after keyword. [KEYWORD_SPACING]\n")
}

func TestCheck_ConfigDisablesRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int main(void)\n{\n\treturn(0);\n}\n"), 0o644))
	cfg := filepath.Join(dir, "epistyle.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("rules:\n  HEADER:\n    disabled: true\n  KEYWORD_SPACING:\n    disabled: true\n"), 0o644))

	out, err := execute(t, "--no-color", "-c", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, out, "No style issues found.")
}

func TestCheck_NoEligibleFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	_, err := execute(t, dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrViolations)
}

func TestRulesCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "epistyle.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("rules:\n  LINE_LENGTH:\n    disabled: true\n"), 0o644))

	out, err := execute(t, "rules", "-c", cfg)
	require.NoError(t, err)
	for _, id := range []string{"HEADER", "COMMENT_IN_FUNCTION", "TRAILING_WHITESPACE", "TOO_MANY_PARAMETERS"} {
		assert.Contains(t, out, id)
	}
	assert.Regexp(t, `LINE_LENGTH\s+structural\s+major\s+disabled`, out)
}
