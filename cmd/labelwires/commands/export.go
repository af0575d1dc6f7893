package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/labelwires/pkg/export"
	"github.com/arthur-debert/labelwires/pkg/paths"
)

// DefaultExportName is used when export is given no path.
const DefaultExportName = "labels.csv"

func newExportCmd(a *app) *cobra.Command {
	var (
		format    string
		delimiter string
	)

	cmd := &cobra.Command{
		Use:     "export [FILE]",
		Short:   MsgExportShort,
		Example: MsgExportExample,
		GroupID: "connections",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			strategy, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			delim, err := parseDelimiter(delimiter, reg.Settings().Delimiter())
			if err != nil {
				return err
			}

			path := filepath.Join(a.settings.CSVSaveLocation, DefaultExportName)
			if len(args) == 1 {
				path = paths.ExpandHome(args[0])
			}

			conns := reg.List()
			written, err := strategy.Export(a.fs, path, conns, delim)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), r, MsgExported, len(conns), written)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "as", export.Wire.Name(), MsgFlagAs)
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", MsgFlagDelimiter)
	return cmd
}
