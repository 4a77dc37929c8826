package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/errors"
	dio "github.com/matzehuels/archdiagram/pkg/io"
)

// exportCommand creates the export command, which writes the diagram
// description as TOML or JSON. The output can be edited and passed back to
// any command with --from.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		source sourceOpts
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the diagram description as TOML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, []string{dio.FormatTOML, dio.FormatJSON}); err != nil {
				return err
			}
			d, err := c.loadDiagram(&source)
			if err != nil {
				return err
			}
			if output == "" {
				return dio.Write(d, format, c.Out)
			}
			if err := dio.Export(d, output); err != nil {
				return err
			}
			c.Logger.Info("Exported diagram", "path", output)
			printNextStep(c.Out, "Render", appName+" render --from "+output)
			return nil
		},
	}

	source.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml or .json); stdout if empty")
	cmd.Flags().StringVarP(&format, "format", "f", dio.FormatTOML, "format for stdout output: toml (default), json")

	return cmd
}
