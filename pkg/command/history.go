package command

import (
	"github.com/rs/zerolog"

	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
)

var (
	ErrNothingToUndo = lwerrors.New(lwerrors.ErrNothingToUndo, "nothing to undo")
	ErrNothingToRedo = lwerrors.New(lwerrors.ErrNothingToRedo, "nothing to redo")
)

// History holds executed commands on an undo stack and undone ones on a
// redo stack. A command lives on at most one stack at a time.
//
// History is meant to be driven from one control flow and does no locking
// of its own; the registry it mutates is safe for concurrent use.
type History struct {
	registry Registry
	undo     []Command
	redo     []Command
	limit    int
	logger   zerolog.Logger
}

// Option configures a History.
type Option func(*History)

// WithLimit caps the undo stack at n commands, dropping the oldest first.
// Zero or less means unlimited.
func WithLimit(n int) Option {
	return func(h *History) {
		h.limit = n
	}
}

// NewHistory creates an empty history bound to r.
func NewHistory(r Registry, opts ...Option) *History {
	h := &History{
		registry: r,
		logger:   logging.GetLogger("history"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs cmd. If the mutation was applied, cmd goes on the undo stack
// and the redo stack is cleared. The returned error may still be a
// PERSISTENCE_FAILED for an applied command.
func (h *History) Execute(cmd Command) error {
	err := cmd.Execute(h.registry)
	if !Applied(err) {
		h.logger.Debug().Err(err).Str("command", cmd.Name()).Msg("Command failed, not recorded")
		return err
	}

	h.undo = append(h.undo, cmd)
	h.redo = nil
	h.pruneIfNeeded()

	h.logger.Debug().Str("command", cmd.Name()).Int("undo", len(h.undo)).Msg("Command executed")
	return err
}

// Undo reverses the most recent command. A command whose undo fails is
// dropped from history.
func (h *History) Undo() error {
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	err := cmd.Undo(h.registry)
	if !Applied(err) {
		h.reportDropped("undo", cmd, err)
		return err
	}
	h.redo = append(h.redo, cmd)
	h.logger.Debug().Str("command", cmd.Name()).Msg("Command undone")
	return err
}

// Redo re-applies the most recently undone command. A command whose redo
// fails is dropped from history.
func (h *History) Redo() error {
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	err := cmd.Redo(h.registry)
	if !Applied(err) {
		h.reportDropped("redo", cmd, err)
		return err
	}
	h.undo = append(h.undo, cmd)
	h.pruneIfNeeded()
	h.logger.Debug().Str("command", cmd.Name()).Msg("Command redone")
	return err
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) UndoLen() int { return len(h.undo) }
func (h *History) RedoLen() int { return len(h.redo) }

// UndoNames lists undo stack entries, most recent first.
func (h *History) UndoNames() []string {
	return names(h.undo)
}

// RedoNames lists redo stack entries, most recent first.
func (h *History) RedoNames() []string {
	return names(h.redo)
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func (h *History) pruneIfNeeded() {
	if h.limit <= 0 || len(h.undo) <= h.limit {
		return
	}
	drop := len(h.undo) - h.limit
	h.undo = append([]Command(nil), h.undo[drop:]...)
	h.logger.Debug().Int("dropped", drop).Int("limit", h.limit).Msg("Pruned undo history")
}

func (h *History) reportDropped(op string, cmd Command, err error) {
	if lwerrors.IsErrorCode(err, lwerrors.ErrHistoryInconsistent) {
		h.logger.Error().
			Err(err).
			Str("op", op).
			Str("command", cmd.Name()).
			Msg("History no longer matches the registry; command dropped")
		return
	}
	h.logger.Warn().Err(err).Str("op", op).Str("command", cmd.Name()).Msg("Command failed and was dropped from history")
}

func names(stack []Command) []string {
	out := make([]string, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, stack[i].Name())
	}
	return out
}
