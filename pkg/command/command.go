package command

import (
	"github.com/google/uuid"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

// Registry is the part of the connection registry commands mutate.
// *registry.Registry satisfies it.
type Registry interface {
	Add(src, dst connection.Endpoint) (connection.Connection, error)
	Insert(c connection.Connection) error
	Delete(c connection.Connection) error
	DeleteByID(id uuid.UUID) (connection.Connection, error)
	Replace(id uuid.UUID, next connection.Connection) (connection.Connection, error)
	Get(id uuid.UUID) (connection.Connection, bool)
}

// Command is a reversible mutation.
type Command interface {
	// Name is a short label for logs and history listings.
	Name() string
	Execute(r Registry) error
	Undo(r Registry) error
	Redo(r Registry) error
}

// Applied reports whether err leaves the mutation in effect: either no
// error or a failed save after the in-memory change.
func Applied(err error) bool {
	return err == nil || lwerrors.IsErrorCode(err, lwerrors.ErrPersistenceFailed)
}

func inconsistent(cmd Command, format string, args ...interface{}) *lwerrors.Error {
	return lwerrors.Newf(lwerrors.ErrHistoryInconsistent, format, args...).
		WithDetail("command", cmd.Name())
}
