package command

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
)

// DeleteConnections removes every connection whose ID is in IDs. IDs that
// match nothing are skipped.
type DeleteConnections struct {
	IDs []uuid.UUID

	deleted []connection.Connection
}

// NewDeleteConnections returns a command deleting the given IDs.
func NewDeleteConnections(ids ...uuid.UUID) *DeleteConnections {
	return &DeleteConnections{IDs: ids}
}

func (d *DeleteConnections) Name() string {
	return fmt.Sprintf("delete %d connection(s)", len(d.IDs))
}

// Deleted returns the connections removed by the last execute.
func (d *DeleteConnections) Deleted() []connection.Connection {
	return append([]connection.Connection(nil), d.deleted...)
}

func (d *DeleteConnections) Execute(r Registry) error {
	logger := logging.GetLogger("command.delete")
	d.deleted = nil

	var saveErr error
	for _, id := range d.IDs {
		c, err := r.DeleteByID(id)
		switch {
		case lwerrors.IsErrorCode(err, lwerrors.ErrConnectionNotFound):
			logger.Debug().Str("id", id.String()).Msg("Skipping connection that no longer exists")
			continue
		case !Applied(err):
			return err
		case err != nil:
			saveErr = err
		}
		d.deleted = append(d.deleted, c)
	}
	return saveErr
}

// Undo re-adds the removed connections through Add, so they get fresh IDs.
// Those IDs become the targets of a later redo. A re-add that collides
// with a connection added in the meantime is reported and undo fails.
func (d *DeleteConnections) Undo(r Registry) error {
	var (
		restored []uuid.UUID
		failures []error
		saveErr  error
	)
	for _, c := range d.deleted {
		added, err := r.Add(c.Source, c.Destination)
		if !Applied(err) {
			failures = append(failures, err)
			continue
		}
		if err != nil {
			saveErr = err
		}
		restored = append(restored, added.ID)
	}

	d.IDs = restored
	d.deleted = nil

	if len(failures) > 0 {
		return lwerrors.Wrapf(errors.Join(failures...), lwerrors.GetErrorCode(failures[0]),
			"%d of %d deleted connections could not be restored", len(failures), len(failures)+len(restored)).
			WithDetail("command", d.Name())
	}
	return saveErr
}

func (d *DeleteConnections) Redo(r Registry) error {
	return d.Execute(r)
}
