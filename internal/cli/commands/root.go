package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corsac-lang/corsac/internal/cli/config"
	"github.com/corsac-lang/corsac/internal/cli/ui"
	"github.com/corsac-lang/corsac/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	rootConfigPath string
	rootVerbose    bool
	rootNoColor    bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crs",
		Short: "Corsac compiler frontend tooling",
		Long: color.CyanString(`crs - Corsac source tooling

Discovers Corsac source files (.crs) in a directory tree and loads them
as text for the compiler frontend.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config file (default: ./crs.yml)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewLoadCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewWatchCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the crs version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "crs version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// session carries what every command needs once flags are parsed
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	noColor bool
}

// newSession loads the configuration and builds the logger. A configuration
// failure is explained on cmd's stderr before it is returned.
func newSession(cmd *cobra.Command) (*session, error) {
	if rootNoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), rootNoColor))
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &session{
		cfg:     cfg,
		logger:  logging.New(rootVerbose || cfg.Log.Verbose),
		noColor: rootNoColor,
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
