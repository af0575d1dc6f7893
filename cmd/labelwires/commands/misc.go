package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/labelwires/internal/version"
	"github.com/arthur-debert/labelwires/pkg/config"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

func newGenConfigCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSettings()
			if err != nil {
				return err
			}
			content, err := config.GenerateConfigContent(s)
			if err != nil {
				return err
			}
			if !write {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}

			target := a.configPath
			if target == "" {
				target = a.paths.SettingsPath()
			}
			if err := a.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return lwerrors.Wrapf(err, lwerrors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
			}
			if err := a.fs.WriteFile(target, content, 0644); err != nil {
				return lwerrors.Wrapf(err, lwerrors.ErrFileWrite, "failed to write %s", target)
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), r, MsgConfigWritten, target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionLine, version.Version)
			fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			fmt.Fprintf(out, MsgVersionDate, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
