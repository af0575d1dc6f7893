package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/labelwires/internal/version"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := newApp()

	rootCmd := &cobra.Command{
		Use:     "labelwires",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return lwerrors.New(lwerrors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.filePath, "file", "f", "", MsgFlagFile)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "connections",
		Title: "CONNECTIONS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newTupleCmd(a))
	rootCmd.AddCommand(newPopulateCmd(a))
	rootCmd.AddCommand(newCSVCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newSessionCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}
