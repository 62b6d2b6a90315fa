package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corsac-lang/corsac/internal/cli/ui"
	"github.com/corsac-lang/corsac/internal/diag"
	"github.com/corsac-lang/corsac/internal/source"
)

var (
	checkJSON     bool
	checkFailFast bool
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify every source file in a tree can be loaded",
		Long: `Scan a directory tree for source files and load each one.

Every directory or file that cannot be read, and every file that is not
valid UTF-8, is reported as a diagnostic. By default all files are checked;
use --fail-fast to stop at the first failure.`,
		Example: `  crs check
  crs check src --json
  crs check --fail-fast`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkJSON, "json", false, "Output diagnostics in JSON format")
	cmd.Flags().BoolVar(&checkFailFast, "fail-fast", false, "Stop at the first file that fails to load")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	dir := sess.cfg.SourceDir(args)
	opts := []source.Option{
		source.WithSuffix(sess.cfg.Source.Suffix),
		source.WithSkipDirs(sess.cfg.Source.SkipDirs...),
		source.WithLogger(sess.logger),
	}

	var diags []diag.Diagnostic
	loadedCount := 0

	paths, err := source.NewScanner(source.NativeFS(), opts...).Scan(dir)
	if err != nil {
		diags = append(diags, diag.FromError(err))
	} else if len(paths) == 0 {
		diags = append(diags, diag.NoSourceFiles(dir, sess.cfg.Source.Suffix))
	} else {
		files, loadErr := source.NewLoader(source.NativeFS(), opts...).LoadAll(paths, checkFailFast)
		loadedCount = len(files)
		diags = append(diags, diag.FromErrors(loadErr)...)
	}

	report := diag.NewReport(loadedCount, diags)

	sess.logger.Debug("check finished",
		zap.String("dir", dir),
		zap.Int("files", loadedCount),
		zap.Int("errors", report.Summary.ErrorCount),
		zap.Duration("elapsed", time.Since(startTime)))

	if checkJSON {
		out, err := report.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	} else {
		diag.WriteTerminal(cmd.ErrOrStderr(), report, sess.noColor)
	}

	if report.HasErrors() {
		return fmt.Errorf("check failed: %d error(s)", report.Summary.ErrorCount)
	}

	if !checkJSON {
		elapsed := time.Since(startTime)
		ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Checked %d file(s) in %s", loadedCount, dir), sess.noColor)
		infoColor := color.New(color.FgCyan)
		if sess.noColor {
			infoColor.DisableColor()
		}
		infoColor.Fprintf(cmd.OutOrStdout(), "  Completed in %.2fs\n", elapsed.Seconds())
	}

	return nil
}
