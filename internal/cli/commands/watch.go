package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corsac-lang/corsac/internal/cli/ui"
	"github.com/corsac-lang/corsac/internal/diag"
	"github.com/corsac-lang/corsac/internal/source"
	"github.com/corsac-lang/corsac/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-scan a source tree whenever its files change",
		Long: `Scan a directory tree, then keep watching it. After each burst of changes
to source files the tree is scanned and loaded again and the files whose
content was added, modified or removed are printed.

Saves that leave a file's content unchanged are not reported.`,
		Example: `  crs watch
  crs watch src`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	dir := sess.cfg.SourceDir(args)
	r := newRescanner(dir, sess, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := r.rescan(); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ScanError(dir, err, sess.noColor))
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if r.tracker.Len() == 0 {
		fmt.Fprint(cmd.ErrOrStderr(), ui.NoSourcesWarning(dir, sess.cfg.Source.Suffix, sess.noColor))
	}

	watcher, err := watch.NewFileWatcher(dir, watch.Options{
		Suffix:   sess.cfg.Source.Suffix,
		SkipDirs: sess.cfg.Source.SkipDirs,
		Ignored:  []string{"*.swp", "*~", "*.tmp"},
		Debounce: sess.cfg.Watch.Debounce,
		Logger:   sess.logger,
	}, func(changed []string) error {
		sess.logger.Debug("change batch", zap.Strings("paths", changed))
		return r.rescan()
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "Watching %s for changes (press Ctrl+C to stop)\n", dir)
	return watcher.Run(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// rescanner scans and loads a tree and prints what changed since the last run
type rescanner struct {
	dir     string
	sess    *session
	scanner *source.Scanner
	loader  *source.Loader
	tracker *watch.Tracker
	out     io.Writer
	errOut  io.Writer
}

func newRescanner(dir string, sess *session, out, errOut io.Writer) *rescanner {
	opts := []source.Option{
		source.WithSuffix(sess.cfg.Source.Suffix),
		source.WithSkipDirs(sess.cfg.Source.SkipDirs...),
		source.WithLogger(sess.logger),
	}

	return &rescanner{
		dir:     dir,
		sess:    sess,
		scanner: source.NewScanner(source.NativeFS(), opts...),
		loader:  source.NewLoader(source.NativeFS(), opts...),
		tracker: watch.NewTracker(),
		out:     out,
		errOut:  errOut,
	}
}

func (r *rescanner) rescan() error {
	paths, err := r.scanner.Scan(r.dir)
	if err != nil {
		return err
	}

	files, loadErr := r.loader.LoadAll(paths, false)
	if diags := diag.FromErrors(loadErr); len(diags) > 0 {
		diag.WriteTerminal(r.errOut, diag.NewReport(len(files), diags), r.sess.noColor)
	}

	changes := r.tracker.Update(paths, files)
	if changes.Empty() {
		return nil
	}

	added := color.New(color.FgGreen)
	modified := color.New(color.FgYellow)
	removed := color.New(color.FgRed)
	if r.sess.noColor {
		added.DisableColor()
		modified.DisableColor()
		removed.DisableColor()
	}

	for _, path := range changes.Added {
		added.Fprintf(r.out, "+ %s\n", path)
	}
	for _, path := range changes.Modified {
		modified.Fprintf(r.out, "~ %s\n", path)
	}
	for _, path := range changes.Removed {
		removed.Fprintf(r.out, "- %s\n", path)
	}
	fmt.Fprintf(r.out, "%d source file(s) in %s\n", r.tracker.Len(), r.dir)

	return nil
}
