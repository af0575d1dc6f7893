package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/labelwires/pkg/command"
	"github.com/arthur-debert/labelwires/pkg/export"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
	"github.com/arthur-debert/labelwires/pkg/registry"
	"github.com/arthur-debert/labelwires/pkg/style"
)

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "session",
		Aliases: []string{"edit-session"},
		Short:   MsgSessionShort,
		Long:    MsgSessionLong,
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
			s := newSession(a, cmd, reg, r)
			return s.run(cmd.InOrStdin())
		},
	}
}

// session is a line-oriented editor keeping one history for its lifetime.
type session struct {
	app     *app
	cmd     *cobra.Command
	reg     *registry.Registry
	history *command.History
	render  style.Renderer
	out     io.Writer
}

func newSession(a *app, cmd *cobra.Command, reg *registry.Registry, r style.Renderer) *session {
	s := &session{
		app:     a,
		cmd:     cmd,
		reg:     reg,
		history: command.NewHistory(reg, command.WithLimit(a.settings.HistoryLimit)),
		render:  r,
		out:     cmd.OutOrStdout(),
	}
	reg.Subscribe(s.report)
	return s
}

func (s *session) run(in io.Reader) error {
	logger := logging.GetLogger("session")
	printMessage(s.out, s.render, MsgSessionIntro, s.reg.OutputPath(), s.reg.Len())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, MsgSessionPrompt)
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := s.dispatch(fields[0], fields[1:])
		if err != nil {
			logger.Debug().Err(err).Str("input", fields[0]).Msg("Session command failed")
			fmt.Fprintln(s.out, s.render.RenderError(err))
			if command.Applied(err) {
				printMessage(s.out, s.render, MsgSaveFailed, s.reg.OutputPath())
			}
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(s.out)
	printMessage(s.out, s.render, MsgSessionBye)
	return scanner.Err()
}

func (s *session) dispatch(name string, args []string) (bool, error) {
	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, s.helpText())
	case "list", "ls":
		fmt.Fprintln(s.out, s.render.RenderConnections(s.reg.List()))
	case "add":
		return false, s.add(args)
	case "delete", "rm":
		return false, s.delete(args)
	case "edit":
		return false, s.edit(args)
	case "undo":
		return false, s.step(s.history.Undo, s.history.RedoNames, MsgSessionUndone)
	case "redo":
		return false, s.step(s.history.Redo, s.history.UndoNames, MsgSessionRedone)
	case "history":
		s.printHistory()
	case "populate", "import":
		if len(args) != 1 {
			return false, usageError("populate FILE")
		}
		err := populate(s.cmd, s.reg, s.render, args[0])
		if replaced(err) && (s.history.CanUndo() || s.history.CanRedo()) {
			s.history.Clear()
			printMessage(s.out, s.render, MsgHistoryCleared)
		}
		return false, err
	case "export":
		return false, s.export(args)
	case "save":
		if err := s.reg.Save(); err != nil {
			return false, err
		}
		printMessage(s.out, s.render, MsgSessionSaved, s.reg.OutputPath())
	default:
		return false, lwerrors.Newf(lwerrors.ErrInvalidInput, MsgSessionUnknown, name)
	}
	return false, nil
}

func (s *session) add(args []string) error {
	if len(args) != 2 {
		return usageError("add SRC DST")
	}
	src, err := parseEndpoint(args[0])
	if err != nil {
		return err
	}
	dst, err := parseEndpoint(args[1])
	if err != nil {
		return err
	}
	return s.history.Execute(command.NewAddConnection(src, dst))
}

func (s *session) delete(args []string) error {
	if len(args) == 0 {
		return usageError("delete ID...")
	}
	list := s.reg.List()
	ids := make([]uuid.UUID, 0, len(args))
	for _, ref := range args {
		id, err := resolveID(list, ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return s.history.Execute(command.NewDeleteConnections(ids...))
}

func (s *session) edit(args []string) error {
	if len(args) != 3 {
		return usageError("edit ID SRC DST")
	}
	id, err := resolveID(s.reg.List(), args[0])
	if err != nil {
		return err
	}
	src, err := parseEndpoint(args[1])
	if err != nil {
		return err
	}
	dst, err := parseEndpoint(args[2])
	if err != nil {
		return err
	}
	return s.history.Execute(command.NewEditConnection(id, editValues(src, dst)))
}

// step runs undo or redo and names the command that moved, which is now on
// top of the opposite stack.
func (s *session) step(op func() error, moved func() []string, msg string) error {
	err := op()
	if !command.Applied(err) {
		return err
	}
	if names := moved(); len(names) > 0 {
		printMessage(s.out, s.render, msg, names[0])
	}
	return err
}

func (s *session) printHistory() {
	for _, stack := range []struct {
		title string
		names []string
	}{
		{"Undo", s.history.UndoNames()},
		{"Redo", s.history.RedoNames()},
	} {
		printMessage(s.out, s.render, MsgHistoryHeader, stack.title)
		if len(stack.names) == 0 {
			printMessage(s.out, s.render, MsgHistoryEmpty)
			continue
		}
		for i, name := range stack.names {
			fmt.Fprintf(s.out, MsgHistoryItem, i+1, name)
		}
	}
}

func (s *session) export(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("export FILE [wire|cable]")
	}
	format := export.Wire.Name()
	if len(args) == 2 {
		format = args[1]
	}
	strategy, err := export.ForFormat(format)
	if err != nil {
		return err
	}
	conns := s.reg.List()
	written, err := strategy.Export(s.app.fs, args[0], conns, s.reg.Settings().Delimiter())
	if err != nil {
		return err
	}
	printMessage(s.out, s.render, MsgExported, len(conns), written)
	return nil
}

// report prints every applied registry change.
func (s *session) report(ev registry.Event) {
	switch ev.Kind {
	case registry.EventAdded:
		printMessage(s.out, s.render, MsgEventAdded, ev.Connection.String())
	case registry.EventDeleted:
		printMessage(s.out, s.render, MsgEventDeleted, ev.Connection.String())
	case registry.EventReplaced:
		printMessage(s.out, s.render, MsgEventReplaced, ev.Connection.String(), ev.Previous.String())
	case registry.EventPopulated:
		printMessage(s.out, s.render, MsgEventPopulated, ev.Count)
	}
}

// helpText renders the session help as markdown on terminals and returns
// it unchanged elsewhere.
func (s *session) helpText() string {
	if _, ok := s.render.(*style.TerminalRenderer); !ok {
		return MsgSessionHelp
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return MsgSessionHelp
	}
	out, err := renderer.Render(MsgSessionHelp)
	if err != nil {
		return MsgSessionHelp
	}
	return out
}

func usageError(usage string) error {
	return lwerrors.Newf(lwerrors.ErrInvalidInput, MsgErrUsage, usage)
}
