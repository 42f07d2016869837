package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/readable"
	"github.com/tsawler/readable/internal/cli"
)

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "positive.txt"), []byte("good\ngreat\nuseful\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "negative.txt"), []byte("bad\nboring\n"), 0o600))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootWithFile(t *testing.T) {
	chdir(t, t.TempDir())
	assets := writeAssets(t)
	target := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(target, []byte("A GOOD, great and useful page. Good and useful, good and great."), 0o600))

	out, err := run(t, "--assets", assets, "--file", target, "--scores", "--save")
	require.NoError(t, err)
	assert.Equal(t, "positive: 7, negative: 0\nYou can read 😄!\n", out)

	assert.FileExists(t, filepath.Join(assets, "positive.json"))
	assert.FileExists(t, filepath.Join(assets, "negative.json"))
	assert.FileExists(t, filepath.Join(assets, "input.txt"))

	saved, err := os.ReadFile(filepath.Join(assets, "positiveResult.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":{"good":3,"great":2,"useful":2}}`, string(saved))

	saved, err = os.ReadFile(filepath.Join(assets, "negativeResult.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":{"bad":0,"boring":0}}`, string(saved))
}

func TestRootNotReadable(t *testing.T) {
	chdir(t, t.TempDir())
	assets := writeAssets(t)
	target := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(target, []byte("Good. Bad, bad, boring."), 0o600))

	out, err := run(t, "--assets", assets, "--file", target)
	require.NoError(t, err)
	assert.Equal(t, "Do not read 💥!\n", out)
}

func TestRootMissingLexiconIsFatal(t *testing.T) {
	chdir(t, t.TempDir())
	assets := t.TempDir()
	target := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(target, []byte("good"), 0o600))

	_, err := run(t, "--assets", assets, "--file", target)
	require.Error(t, err)
	assert.True(t, readable.IsFatal(err))
	assert.Contains(t, err.Error(), ".json")
}

func TestLexiconBuild(t *testing.T) {
	chdir(t, t.TempDir())
	assets := writeAssets(t)

	out, err := run(t, "lexicon", "build", "--assets", assets)
	require.NoError(t, err)
	assert.Contains(t, out, "positive.json generated (3 keywords)")
	assert.Contains(t, out, "negative.json generated (2 keywords)")

	out, err = run(t, "lexicon", "build", "--assets", assets, "positive.txt")
	require.NoError(t, err)
	assert.Equal(t, "positive.json up to date (3 keywords)\n", out)
}

func TestLexiconLint(t *testing.T) {
	chdir(t, t.TempDir())
	assets := writeAssets(t)
	require.NoError(t, os.WriteFile(filepath.Join(assets, "messy.txt"), []byte("good\n\ngood\n"), 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(assets, "tidy.txt"), []byte("insightful\nthorough\n"), 0o600))

	out, err := run(t, "lexicon", "lint", "--assets", assets, "tidy.txt")
	require.NoError(t, err)
	assert.Equal(t, "tidy.txt: 2 keywords, no issues\n", out)

	out, err = run(t, "lexicon", "lint", "--assets", assets, "--strict", "messy.txt")
	require.Error(t, err)
	assert.Contains(t, out, "blank lines: [2]")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "readable version dev\n", out)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cli.Render(&buf, readable.Verdict{Decision: readable.Readable, Positive: 5, Negative: 1}, true))
	assert.Equal(t, "positive: 5, negative: 1\nYou can read 😄!\n", buf.String())
}

func TestRootRejectsSameSources(t *testing.T) {
	chdir(t, t.TempDir())
	assets := writeAssets(t)

	_, err := run(t, "--assets", assets, "--positive", "positive.txt", "--negative", "positive.txt", "--file", filepath.Join(assets, "positive.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
