package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
frame_ms: 100
steps:
  - action: value
    target: total
    value: 500
  - action: show
    target: insight
  - action: wait
    ms: 700
  - action: click
    target: a
  - action: frames
    frames: 2
`), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"--script", path}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 9)
	require.Contains(t, lines[0], "totals=false")
	require.Contains(t, lines[0], "total=-")
	require.Contains(t, lines[3], "totals=true")
	require.Contains(t, lines[3], "total=400")
	require.Contains(t, lines[5], "total=500")
	require.Contains(t, lines[7], "swapped=true")
	require.Contains(t, lines[7], "locked=true")
}

func TestRunScriptErrors(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--script", filepath.Join(t.TempDir(), "missing.yaml")}, &out)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`steps: [{action: dance}]`), 0o644))
	err = run([]string{"--script", path}, &out)
	require.ErrorContains(t, err, "unknown action")
}

func TestRunFlags(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &out))
	require.Error(t, run([]string{"--nope"}, &out))
	require.ErrorContains(t, run([]string{"extra"}, &out), "unexpected argument")
}

func TestRunBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swap_lock: -1s\n"), 0o644))
	var out bytes.Buffer
	require.ErrorContains(t, run([]string{"--config", path, "--script", path}, &out), "swap_lock")
}
