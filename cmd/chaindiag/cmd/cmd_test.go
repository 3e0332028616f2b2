// SPDX-License-Identifier: MIT
package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestSimulateThenRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iid.csv.zst")
	_, err := execute(t, "simulate", path, "--dims", "3", "--draws", "2000", "--seed", "2")
	require.NoError(t, err)

	out, err := execute(t, "run", path, "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "3 dims x 2000 draws")
	assert.Regexp(t, `converged\s+true`, out)

	out, err = execute(t, "run", path, "--burnIn", "500", "--truncation", "first-negative")
	require.NoError(t, err)
	assert.Contains(t, out, "3 dims x 1500 draws")
}

func TestStrictFailsOnDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drift.csv")
	_, err := execute(t, "simulate", path, "--dims", "2", "--draws", "4000", "--slope", "4", "--layout", "dims")
	require.NoError(t, err)

	out, err := execute(t, "run", path, "--strict", "--layout", "dims-by-draws")
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Regexp(t, `converged\s+false`, out)
}

func TestSettingsFromEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iid.csv.gz")
	_, err := execute(t, "simulate", path, "--dims", "2", "--draws", "2000")
	require.NoError(t, err)

	t.Setenv("CHAINDIAG_MINESS", "1e9")
	_, err = execute(t, "run", path, "--strict")
	assert.ErrorIs(t, err, ErrNotConverged)

	// An explicit flag beats the environment.
	_, err = execute(t, "run", path, "--strict", "--minESS", "50")
	assert.NoError(t, err)

	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("truncation: sometimes\n"), 0o600))
	_, err = execute(t, "run", path, "--config", cfg)
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = execute(t, "run")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chaindiag dev")
}
