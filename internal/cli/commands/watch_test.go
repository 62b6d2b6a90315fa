package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/corsac-lang/corsac/internal/cli/config"
)

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()
	assert.Equal(t, "watch [dir]", cmd.Use)
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, stderr, err := execute(t, "watch", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, stderr, "SCAN FAILED")
}

func TestWatch_EmptyTreeWarns(t *testing.T) {
	root := sourceTree(t, map[string]string{"notes.txt": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--no-color", "watch", root})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, stderr.String(), "⚠️ NO SOURCES: no .crs files found in "+root)
	assert.Contains(t, stdout.String(), "Watching "+root)
}

func TestRescanner_ReportsChanges(t *testing.T) {
	root := sourceTree(t, map[string]string{"a.crs": "a", "b.crs": "b"})
	sess := &session{
		cfg: &config.Config{
			Source: config.SourceConfig{Suffix: ".crs"},
			Watch:  config.WatchConfig{Debounce: 10 * time.Millisecond},
		},
		logger:  zap.NewNop(),
		noColor: true,
	}

	var out, errOut bytes.Buffer
	r := newRescanner(root, sess, &out, &errOut)

	require.NoError(t, r.rescan())
	assert.Contains(t, out.String(), "+ "+filepath.Join(root, "a.crs"))
	assert.Contains(t, out.String(), "2 source file(s)")

	// Nothing changed
	out.Reset()
	require.NoError(t, r.rescan())
	assert.Empty(t, out.String())

	// Modify, remove, add
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.crs"), []byte("a2"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(root, "b.crs")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.crs"), []byte("c"), 0o644))

	out.Reset()
	require.NoError(t, r.rescan())
	assert.Contains(t, out.String(), "~ "+filepath.Join(root, "a.crs"))
	assert.Contains(t, out.String(), "- "+filepath.Join(root, "b.crs"))
	assert.Contains(t, out.String(), "+ "+filepath.Join(root, "c.crs"))

	// Unreadable content is reported but does not drop the file
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.crs"), []byte{0xff}, 0o644))
	out.Reset()
	require.NoError(t, r.rescan())
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error[S003]")
}
