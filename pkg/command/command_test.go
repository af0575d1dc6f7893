// pkg/command/command_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real registry over memory FS
// PURPOSE: Test execute/undo/redo of each command and the history stacks

package command_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/labelwires/pkg/command"
	"github.com/arthur-debert/labelwires/pkg/connection"
	"github.com/arthur-debert/labelwires/pkg/datastore"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/registry"
	"github.com/arthur-debert/labelwires/pkg/testutil"
	"github.com/arthur-debert/labelwires/pkg/types"
)

func setup(t *testing.T, fs types.FS) (*registry.Registry, *command.History) {
	t.Helper()
	if fs == nil {
		fs = testutil.NewMemoryFS()
	}
	r, err := registry.New(registry.Options{
		OutputPath: "/data/connections.json",
		Store:      datastore.New(fs),
	})
	require.NoError(t, err)
	return r, command.NewHistory(r)
}

// sameSet reports whether a and b hold the same connections under
// connection equality, ignoring order and IDs.
func sameSet(t *testing.T, a, b []connection.Connection) {
	t.Helper()
	require.Len(t, b, len(a))
	for _, x := range a {
		found := false
		for _, y := range b {
			if x.Equal(y) {
				found = true
				break
			}
		}
		assert.True(t, found, "missing %s", x)
	}
}

func TestAddConnection_RoundTrip(t *testing.T) {
	r, h := setup(t, nil)
	_, err := r.Add(testutil.Endpoint("X", "", ""), testutil.Endpoint("Y", "", ""))
	require.NoError(t, err)

	cmd := command.NewAddConnection(testutil.Endpoint("A", "1", "T1"), testutil.Endpoint("B", "1", "T1"))
	require.NoError(t, h.Execute(cmd))
	afterExecute := r.List()
	require.Len(t, afterExecute, 2)

	require.NoError(t, h.Undo())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, h.UndoLen())
	assert.Equal(t, 1, h.RedoLen())

	require.NoError(t, h.Redo())
	sameSet(t, afterExecute, r.List())
	assert.Equal(t, 1, h.UndoLen())
	assert.Equal(t, 0, h.RedoLen())
}

func TestAddConnection_DuplicateNotRecorded(t *testing.T) {
	r, h := setup(t, nil)
	_, err := r.Add(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))
	require.NoError(t, err)

	cmd := command.NewAddConnection(testutil.Endpoint("B", "", ""), testutil.Endpoint("A", "", ""))
	err = h.Execute(cmd)
	assert.ErrorIs(t, err, registry.ErrDuplicateConnection)
	assert.False(t, h.CanUndo())

	_, ok := cmd.Added()
	assert.False(t, ok)
}

func TestAddConnection_RedoRevalidates(t *testing.T) {
	r, h := setup(t, nil)

	require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))))
	require.NoError(t, h.Undo())

	_, err := r.Add(testutil.Endpoint("B", "", ""), testutil.Endpoint("A", "", ""))
	require.NoError(t, err)

	err = h.Redo()
	assert.ErrorIs(t, err, registry.ErrDuplicateConnection)
	assert.False(t, h.CanRedo(), "failed redo drops the command")
	assert.False(t, h.CanUndo())
	assert.Equal(t, 1, r.Len())
}

func TestAddConnection_UndoAfterExternalRemoval(t *testing.T) {
	r, h := setup(t, nil)

	cmd := command.NewAddConnection(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))
	require.NoError(t, h.Execute(cmd))
	added, ok := cmd.Added()
	require.True(t, ok)
	require.NoError(t, r.Delete(added))

	err := h.Undo()
	require.Error(t, err)
	assert.True(t, lwerrors.IsErrorCode(err, lwerrors.ErrHistoryInconsistent))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestDeleteConnections_RoundTrip(t *testing.T) {
	r, h := setup(t, nil)
	a, err := r.Add(testutil.Endpoint("A", "1", "T1"), testutil.Endpoint("B", "1", "T1"))
	require.NoError(t, err)
	b, err := r.Add(testutil.Endpoint("C", "", ""), testutil.Endpoint("D", "", ""))
	require.NoError(t, err)
	keep, err := r.Add(testutil.Endpoint("E", "", ""), testutil.Endpoint("F", "", ""))
	require.NoError(t, err)

	cmd := command.NewDeleteConnections(a.ID, uuid.New(), b.ID)
	require.NoError(t, h.Execute(cmd))
	assert.Equal(t, []connection.Connection{keep}, r.List())
	assert.Len(t, cmd.Deleted(), 2, "unknown id is skipped")

	require.NoError(t, h.Undo())
	sameSet(t, []connection.Connection{a, b, keep}, r.List())
	_, ok := r.Get(a.ID)
	assert.False(t, ok, "restored connections get fresh ids")

	require.NoError(t, h.Redo())
	assert.Equal(t, []connection.Connection{keep}, r.List(), "redo targets the restored ids")
}

func TestDeleteConnections_UndoCollision(t *testing.T) {
	r, h := setup(t, nil)
	a, err := r.Add(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))
	require.NoError(t, err)
	b, err := r.Add(testutil.Endpoint("C", "", ""), testutil.Endpoint("D", "", ""))
	require.NoError(t, err)

	require.NoError(t, h.Execute(command.NewDeleteConnections(a.ID, b.ID)))
	_, err = r.Add(testutil.Endpoint("B", "", ""), testutil.Endpoint("A", "", ""))
	require.NoError(t, err)

	err = h.Undo()
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDuplicateConnection)
	assert.Equal(t, 2, r.Len(), "non-colliding connection is still restored")
	assert.False(t, h.CanRedo())
}

func TestDeleteConnections_NothingMatches(t *testing.T) {
	_, h := setup(t, nil)
	require.NoError(t, h.Execute(command.NewDeleteConnections(uuid.New())))
	assert.True(t, h.CanUndo())
	require.NoError(t, h.Undo())
}

func TestEditConnection_RoundTrip(t *testing.T) {
	r, h := setup(t, nil)
	first, err := r.Add(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))
	require.NoError(t, err)
	old, err := r.Add(testutil.Endpoint("C", "1", "T1"), testutil.Endpoint("D", "1", "T1"))
	require.NoError(t, err)
	last, err := r.Add(testutil.Endpoint("E", "", ""), testutil.Endpoint("F", "", ""))
	require.NoError(t, err)

	cmd := command.NewEditConnection(old.ID, map[string]string{
		connection.FieldSrcComponent: "X",
		connection.FieldDstComponent: "Y",
	})
	require.NoError(t, h.Execute(cmd))

	newID := cmd.NewID()
	require.NotEqual(t, uuid.Nil, newID)
	require.NotEqual(t, old.ID, newID)

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, newID, list[1].ID, "replacement keeps the old position")
	assert.Equal(t, testutil.Endpoint("X", "", ""), list[1].Source)
	assert.Equal(t, testutil.Endpoint("Y", "", ""), list[1].Destination)
	assert.Equal(t, last.ID, list[2].ID)

	require.NoError(t, h.Undo())
	assert.Equal(t, []connection.Connection{first, old, last}, r.List())

	require.NoError(t, h.Redo())
	got, ok := r.Get(newID)
	require.True(t, ok, "redo reuses the replacement id")
	assert.Equal(t, "X", got.Source.Component)

	require.NoError(t, h.Undo())
	require.NoError(t, h.Redo())
	assert.Equal(t, 3, r.Len())
}

func TestEditConnection_TargetsImportedRecordWithSharedID(t *testing.T) {
	r, h := setup(t, nil)
	shared := uuid.New().String()
	require.NoError(t, r.Populate([]json.RawMessage{
		testutil.RecordWithID(shared, "A", "", "", "B", "", ""),
		testutil.RecordWithID(shared, "C", "", "", "D", "", ""),
	}))

	target := r.List()[1]
	require.NoError(t, h.Execute(command.NewEditConnection(target.ID, testutil.Values("X", "", "", "Y", "", ""))))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "A | B", list[0].String())
	assert.Equal(t, "X | Y", list[1].String())
}

func TestEditConnection_Failures(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		_, h := setup(t, nil)
		err := h.Execute(command.NewEditConnection(uuid.New(), testutil.Values("A")))
		assert.ErrorIs(t, err, registry.ErrConnectionNotFound)
		assert.False(t, h.CanUndo())
	})

	t.Run("duplicate of another connection", func(t *testing.T) {
		r, h := setup(t, nil)
		a, err := r.Add(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))
		require.NoError(t, err)
		_, err = r.Add(testutil.Endpoint("C", "", ""), testutil.Endpoint("D", "", ""))
		require.NoError(t, err)

		err = h.Execute(command.NewEditConnection(a.ID, testutil.Values("D", "", "", "C")))
		assert.ErrorIs(t, err, registry.ErrDuplicateConnection)
		got, ok := r.Get(a.ID)
		require.True(t, ok)
		assert.Equal(t, a, got)
	})
}

func TestEditConnection_UndoWhenReplacementGone(t *testing.T) {
	r, h := setup(t, nil)
	old, err := r.Add(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))
	require.NoError(t, err)

	cmd := command.NewEditConnection(old.ID, testutil.Values("X", "", "", "Y"))
	require.NoError(t, h.Execute(cmd))
	_, err = r.DeleteByID(cmd.NewID())
	require.NoError(t, err)

	require.NoError(t, h.Undo())
	got, ok := r.Get(old.ID)
	require.True(t, ok)
	assert.Equal(t, old, got)
}

func TestHistory_ExecuteClearsRedo(t *testing.T) {
	_, h := setup(t, nil)

	require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))))
	require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint("C", "", ""), testutil.Endpoint("D", "", ""))))
	require.NoError(t, h.Undo())
	require.True(t, h.CanRedo())

	require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint("E", "", ""), testutil.Endpoint("F", "", ""))))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.UndoLen())
	assert.Equal(t, []string{"add E | F", "add A | B"}, h.UndoNames())
}

func TestHistory_EmptyStacks(t *testing.T) {
	_, h := setup(t, nil)

	err := h.Undo()
	assert.ErrorIs(t, err, command.ErrNothingToUndo)
	err = h.Redo()
	assert.ErrorIs(t, err, command.ErrNothingToRedo)
	assert.Equal(t, 0, h.UndoLen())
	assert.Equal(t, 0, h.RedoLen())

	require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))))
	err = h.Redo()
	assert.ErrorIs(t, err, command.ErrNothingToRedo)
	assert.Equal(t, 1, h.UndoLen(), "undo stack untouched")
}

func TestHistory_WithLimit(t *testing.T) {
	r, err := registry.New(registry.Options{
		OutputPath: "/out.json",
		Store:      datastore.New(testutil.NewMemoryFS()),
	})
	require.NoError(t, err)
	h := command.NewHistory(r, command.WithLimit(2))

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint(name, "", ""), testutil.Endpoint("Z", "", ""))))
	}
	assert.Equal(t, 2, h.UndoLen())
	assert.Equal(t, []string{"add C | Z", "add B | Z"}, h.UndoNames())

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.ErrorIs(t, h.Undo(), command.ErrNothingToUndo)
	assert.Equal(t, 1, r.Len(), "oldest command can no longer be undone")
}

func TestHistory_PersistenceFailureStaysReversible(t *testing.T) {
	fs := testutil.NewFaultyFS(testutil.NewMemoryFS())
	r, h := setup(t, fs)

	fs.FailWrites(nil)
	err := h.Execute(command.NewAddConnection(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", "")))
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrPersistenceFailed)
	assert.True(t, command.Applied(err))
	assert.True(t, h.CanUndo())
	assert.Equal(t, 1, r.Len())

	fs.Heal()
	require.NoError(t, h.Undo())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, "[]\n", testutil.ReadString(t, fs, "/data/connections.json"))
}

func TestHistory_Clear(t *testing.T) {
	_, h := setup(t, nil)
	require.NoError(t, h.Execute(command.NewAddConnection(testutil.Endpoint("A", "", ""), testutil.Endpoint("B", "", ""))))
	require.NoError(t, h.Undo())
	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
