package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corsac-lang/corsac/internal/cli/ui"
	"github.com/corsac-lang/corsac/internal/source"
)

var (
	scanJSON   bool
	scanSuffix string
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List Corsac source files in a directory tree",
		Long: `Recursively find every file whose name ends with the source suffix
(.crs by default) and print its path, one per line.

The directory defaults to source.dir from crs.yml, CRS_SOURCE_DIR, or the
current directory. Entries are visited in name order, depth first.`,
		Example: `  crs scan
  crs scan src
  crs scan --json src
  crs scan --suffix .crsh include`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().BoolVar(&scanJSON, "json", false, "Output paths as a JSON array")
	cmd.Flags().StringVar(&scanSuffix, "suffix", "", "File name suffix to match (default from config: .crs)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	dir := sess.cfg.SourceDir(args)
	suffix := sess.cfg.Source.Suffix
	if scanSuffix != "" {
		suffix = scanSuffix
	}

	scanner := source.NewScanner(source.NativeFS(),
		source.WithSuffix(suffix),
		source.WithSkipDirs(sess.cfg.Source.SkipDirs...),
		source.WithLogger(sess.logger))

	files, err := scanner.Scan(dir)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ScanError(dir, err, sess.noColor))
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}

	for _, file := range files {
		fmt.Fprintln(out, file)
	}
	return nil
}
