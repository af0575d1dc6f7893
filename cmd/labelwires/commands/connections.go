package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/labelwires/pkg/command"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
	"github.com/arthur-debert/labelwires/pkg/registry"
	"github.com/arthur-debert/labelwires/pkg/style"
)

// runCommand executes cmd through a one-shot history and reports a failed
// save as a warning on top of the returned error.
func runCommand(c *cobra.Command, reg *registry.Registry, r style.Renderer, cmd command.Command) error {
	logger := logging.GetLogger("cmd." + c.Name())
	done := logging.LogOperationStart(logger, cmd.Name())
	defer done()

	err := command.NewHistory(reg).Execute(cmd)
	if err != nil && command.Applied(err) {
		printMessage(c.ErrOrStderr(), r, MsgSaveFailed, reg.OutputPath())
	}
	return err
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "connections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.RenderConnections(reg.List()))
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add SRC DST",
		Short:   MsgAddShort,
		Example: MsgAddExample,
		GroupID: "connections",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			dst, err := parseEndpoint(args[1])
			if err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			add := command.NewAddConnection(src, dst)
			if err := runCommand(cmd, reg, r, add); err != nil {
				return err
			}
			c, _ := add.Added()
			printMessage(cmd.OutOrStdout(), r, MsgAdded, r.RenderConnection(c))
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   MsgDeleteShort,
		Example: MsgDeleteExample,
		GroupID: "connections",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			list := reg.List()
			ids := make([]uuid.UUID, 0, len(args))
			for _, ref := range args {
				id, err := resolveID(list, ref)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			del := command.NewDeleteConnections(ids...)
			if err := runCommand(cmd, reg, r, del); err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), r, MsgDeleted, len(del.Deleted()))
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "edit ID SRC DST",
		Short:   MsgEditShort,
		Example: MsgEditExample,
		GroupID: "connections",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseEndpoint(args[1])
			if err != nil {
				return err
			}
			dst, err := parseEndpoint(args[2])
			if err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			id, err := resolveID(reg.List(), args[0])
			if err != nil {
				return err
			}

			edit := command.NewEditConnection(id, editValues(src, dst))
			if err := runCommand(cmd, reg, r, edit); err != nil {
				return err
			}
			c, _ := reg.Get(edit.NewID())
			printMessage(cmd.OutOrStdout(), r, MsgEdited, r.RenderConnection(c))
			return nil
		},
	}
}

func newTupleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "tuple ID",
		Short:   MsgTupleShort,
		GroupID: "connections",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			id, err := resolveID(reg.List(), args[0])
			if err != nil {
				return err
			}
			c, _ := reg.Get(id)
			src, dst, err := reg.Tuple(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", src, dst)
			return nil
		},
	}
}

func newPopulateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "populate FILE",
		Aliases: []string{"import"},
		Short:   MsgPopulateShort,
		Long:    MsgPopulateLong,
		GroupID: "connections",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return populate(cmd, reg, r, args[0])
		},
	}
}

// populate is shared with the session.
func populate(cmd *cobra.Command, reg *registry.Registry, r style.Renderer, path string) error {
	err := reg.PopulateFromFile(path)
	switch {
	case err == nil:
		printMessage(cmd.OutOrStdout(), r, MsgPopulated, reg.Len(), path)
		return nil
	case command.Applied(err):
		printMessage(cmd.ErrOrStderr(), r, MsgSaveFailed, reg.OutputPath())
	case replaced(err):
		printMessage(cmd.ErrOrStderr(), r, MsgPartialPopulate, reg.Len())
	}
	return err
}

// replaced reports whether a populate that returned err cleared the
// registry. Only a failure to read the file leaves it untouched.
func replaced(err error) bool {
	if command.Applied(err) {
		return true
	}
	_, stopped := lwerrors.GetErrorDetails(err)["index"]
	return stopped
}

func newCSVCmd(a *app) *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:     "csv",
		Short:   MsgCSVShort,
		GroupID: "connections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			delim, err := parseDelimiter(delimiter, 0)
			if err != nil {
				return err
			}
			out, err := reg.GenerateCSV(delim)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", MsgFlagDelimiter)
	return cmd
}
