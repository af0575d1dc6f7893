package command

import (
	"fmt"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

// AddConnection adds one connection.
type AddConnection struct {
	Source      connection.Endpoint
	Destination connection.Endpoint

	added *connection.Connection
}

// NewAddConnection returns a command adding src to dst.
func NewAddConnection(src, dst connection.Endpoint) *AddConnection {
	return &AddConnection{Source: src, Destination: dst}
}

func (a *AddConnection) Name() string {
	return fmt.Sprintf("add %s | %s", a.Source.Label(), a.Destination.Label())
}

// Added returns the connection created by the last execute, if any.
func (a *AddConnection) Added() (connection.Connection, bool) {
	if a.added == nil {
		return connection.Connection{}, false
	}
	return *a.added, true
}

func (a *AddConnection) Execute(r Registry) error {
	c, err := r.Add(a.Source, a.Destination)
	if !Applied(err) {
		return err
	}
	a.added = &c
	return err
}

func (a *AddConnection) Undo(r Registry) error {
	if a.added == nil {
		return inconsistent(a, "nothing was added")
	}
	err := r.Delete(*a.added)
	if lwerrors.IsErrorCode(err, lwerrors.ErrConnectionNotFound) {
		return lwerrors.Wrapf(err, lwerrors.ErrHistoryInconsistent,
			"added connection %s is no longer stored", a.added.String()).
			WithDetail("command", a.Name())
	}
	if !Applied(err) {
		return err
	}
	a.added = nil
	return err
}

// Redo runs Execute again, so it fails if an equal connection appeared
// in the meantime.
func (a *AddConnection) Redo(r Registry) error {
	return a.Execute(r)
}
