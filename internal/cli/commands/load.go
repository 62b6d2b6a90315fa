package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corsac-lang/corsac/internal/source"
)

// NewLoadCommand creates the load command
func NewLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Print a source file exactly as the compiler will read it",
		Long: `Read a source file as UTF-8 text and write its content to stdout unchanged.

Fails if the file is missing, unreadable, or not valid UTF-8.`,
		Example: `  crs load src/main.crs`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLoad,
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	loader := source.NewLoader(source.NativeFS(), source.WithLogger(sess.logger))

	content, err := loader.ReadString(args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), content)
	return err
}
