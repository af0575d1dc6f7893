package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arthur-debert/labelwires/pkg/connection"
)

// EditConnection replaces the connection with ID OldID by one built from
// Values. Fields missing from Values become empty strings.
//
// The replacement takes the old connection's position. Undo puts the old
// connection back under its original ID, so Redo can resolve OldID again;
// Redo reuses the replacement ID assigned by the first execute.
type EditConnection struct {
	OldID  uuid.UUID
	Values map[string]string

	old   *connection.Connection
	newID uuid.UUID
}

// NewEditConnection returns a command editing the connection with id.
func NewEditConnection(id uuid.UUID, values map[string]string) *EditConnection {
	return &EditConnection{OldID: id, Values: values}
}

func (e *EditConnection) Name() string {
	return fmt.Sprintf("edit %s", e.OldID)
}

// NewID returns the replacement's ID, or uuid.Nil before the first execute.
func (e *EditConnection) NewID() uuid.UUID {
	return e.newID
}

func (e *EditConnection) Execute(r Registry) error {
	next := connection.FromValues(e.Values)
	if e.newID != uuid.Nil {
		next.ID = e.newID
	}

	previous, err := r.Replace(e.OldID, next)
	if !Applied(err) {
		return err
	}
	e.old = &previous
	e.newID = next.ID
	return err
}

// Undo removes the replacement by ID and restores the old connection. A
// replacement that is already gone is not an error.
func (e *EditConnection) Undo(r Registry) error {
	if e.old == nil {
		return inconsistent(e, "edit of %s was never applied", e.OldID)
	}

	var err error
	if _, ok := r.Get(e.newID); ok {
		_, err = r.Replace(e.newID, *e.old)
	} else {
		err = r.Insert(*e.old)
	}
	if !Applied(err) {
		return err
	}
	e.old = nil
	return err
}

func (e *EditConnection) Redo(r Registry) error {
	return e.Execute(r)
}
