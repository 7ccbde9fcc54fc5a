package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join("testdata", "layout.toml"))
	require.NoError(t, err)
	require.Contains(t, out, "3 panels")
}

func TestValidate_Broken(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join("testdata", "broken.toml"))
	require.ErrorIs(t, err, errInvalidLayout)
	require.Contains(t, err.Error(), "3 problems")
	require.Contains(t, out, "name is already used by another panel")
	require.Contains(t, out, "lazy panels need an asset")
	require.Contains(t, out, "blocker_opacity must be between 0 and 1")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join("testdata", "nope.toml"))
	require.Error(t, err)
}

func TestSimulate(t *testing.T) {
	out, err := execute(t, "simulate", filepath.Join("testdata", "layout.toml"),
		"open:inventory", "open:settings", "close-top", "close-all", "close-top-except-init")
	require.NoError(t, err)

	sections := strings.Split(out, "\n\n")
	require.Len(t, sections, 6)

	require.Contains(t, sections[0], "init")
	require.Contains(t, sections[0], "1 showing")
	require.Contains(t, sections[1], "open:inventory")
	require.Contains(t, sections[1], "2 showing")
	require.Contains(t, sections[2], "3 showing")
	require.Contains(t, sections[3], "close-top")
	require.Contains(t, sections[3], "2 showing")
	require.Contains(t, sections[4], "1 showing")
	require.Contains(t, sections[5], "1 showing", "init panel stays open")
}

func TestSimulate_UnknownPanel(t *testing.T) {
	out, err := execute(t, "simulate", filepath.Join("testdata", "layout.toml"), "open:missing")
	require.NoError(t, err)
	require.Contains(t, out, "unknown panel")
}

func TestSimulate_BadStep(t *testing.T) {
	_, err := execute(t, "simulate", filepath.Join("testdata", "layout.toml"), "dance")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version: "+Version)
}
