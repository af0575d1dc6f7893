// pkg/connection/connection_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test connection equality, rendering and JSON decoding

package connection_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

func ep(c, b, t string) connection.Endpoint {
	return connection.Endpoint{Component: c, TerminalBlock: b, Terminal: t}
}

func TestNew_AssignsFreshIDs(t *testing.T) {
	a := connection.New(ep("A", "1", "T1"), ep("B", "1", "T1"))
	b := connection.New(ep("A", "1", "T1"), ep("B", "1", "T1"))

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Equal(b))
}

func TestEqual(t *testing.T) {
	x := ep("A", "1", "T1")
	y := ep("B", "2", "T2")
	z := ep("C", "3", "T3")

	tests := []struct {
		name string
		a, b connection.Connection
		want bool
	}{
		{"identical", connection.New(x, y), connection.New(x, y), true},
		{"reversed", connection.New(x, y), connection.New(y, x), true},
		{"different destination", connection.New(x, y), connection.New(x, z), false},
		{"shared source only", connection.New(x, y), connection.New(x, x), false},
		{"partial field difference", connection.New(x, y), connection.New(x, ep("B", "2", "T3")), false},
		{"self loop", connection.New(x, x), connection.New(x, x), true},
		{"empty", connection.New(ep("", "", ""), ep("", "", "")), connection.New(ep("", "", ""), ep("", "", "")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a), "equality must be symmetric")
			assert.True(t, tt.a.Equal(tt.a), "equality must be reflexive")
		})
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, connection.New(ep("", "", ""), ep("", "", "")).IsEmpty())
	assert.False(t, connection.New(ep("", "", ""), ep("", "", "x")).IsEmpty())
}

func TestTuple(t *testing.T) {
	tests := []struct {
		name    string
		src     connection.Endpoint
		dst     connection.Endpoint
		wantSrc string
		wantDst string
	}{
		{"all fields", ep("C1", "B1", "T1"), ep("C2", "B2", "T2"), "C1-B1-T1", "C2-B2-T2"},
		{"missing terminal", ep("C1", "B1", ""), ep("C2", "", ""), "C1-B1", "C2"},
		{"empty side", ep("", "", ""), ep("C2", "B2", "T2"), "", "C2-B2-T2"},
		{"missing middle keeps separators", ep("C1", "", "T1"), ep("C2", "B2", "T2"), "C1--T1", "C2-B2-T2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := connection.New(tt.src, tt.dst).Tuple()
			assert.Equal(t, tt.wantSrc, src)
			assert.Equal(t, tt.wantDst, dst)
		})
	}
}

func TestEndpointRenderings(t *testing.T) {
	e := ep("C1", "B1", "T1")
	assert.Equal(t, "C1-B1-T1", e.Wire())
	assert.Equal(t, "C1-B1 [T1]", e.Cable())
}

func TestFromValues_DefaultsMissingToEmpty(t *testing.T) {
	c := connection.FromValues(map[string]string{
		connection.FieldSrcComponent: "A",
		connection.FieldDstTerminal:  "T9",
	})

	assert.Equal(t, []string{"A", "", "", "", "", "T9"}, c.Values())
}

func TestMarshalJSON_OmitsID(t *testing.T) {
	c := connection.New(ep("C1", "B1", "T1"), ep("C2", "B2", "T2"))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 6)
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "C1", fields[connection.FieldSrcComponent])
	assert.Equal(t, "T2", fields[connection.FieldDstTerminal])
}

func TestDecode(t *testing.T) {
	knownID := uuid.New()

	tests := []struct {
		name     string
		input    string
		wantErr  bool
		validate func(t *testing.T, c connection.Connection)
	}{
		{
			name:  "complete record without id",
			input: `{"src_component":"A","src_terminal_block":"1","src_terminal":"T1","dst_component":"B","dst_terminal_block":"1","dst_terminal":"T1"}`,
			validate: func(t *testing.T, c connection.Connection) {
				assert.NotEqual(t, uuid.Nil, c.ID)
				assert.Equal(t, ep("A", "1", "T1"), c.Source)
				assert.Equal(t, ep("B", "1", "T1"), c.Destination)
			},
		},
		{
			name:  "record with id",
			input: `{"id":"` + knownID.String() + `","src_component":"A","src_terminal_block":"","src_terminal":"","dst_component":"B","dst_terminal_block":"","dst_terminal":""}`,
			validate: func(t *testing.T, c connection.Connection) {
				assert.Equal(t, knownID, c.ID)
			},
		},
		{
			name:  "legacy uuid key",
			input: `{"uuid":"` + knownID.String() + `","src_component":"A","src_terminal_block":"","src_terminal":"","dst_component":"B","dst_terminal_block":"","dst_terminal":""}`,
			validate: func(t *testing.T, c connection.Connection) {
				assert.Equal(t, knownID, c.ID)
			},
		},
		{
			name:  "unparsable id gets a fresh one",
			input: `{"id":"nope","src_component":"A","src_terminal_block":"","src_terminal":"","dst_component":"B","dst_terminal_block":"","dst_terminal":""}`,
			validate: func(t *testing.T, c connection.Connection) {
				assert.NotEqual(t, uuid.Nil, c.ID)
			},
		},
		{
			name:    "missing field",
			input:   `{"src_component":"A","src_terminal_block":"1","src_terminal":"T1","dst_component":"B","dst_terminal_block":"1"}`,
			wantErr: true,
		},
		{
			name:    "non string field",
			input:   `{"src_component":1,"src_terminal_block":"1","src_terminal":"T1","dst_component":"B","dst_terminal_block":"1","dst_terminal":"T1"}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			input:   `["A","B"]`,
			wantErr: true,
		},
		{
			name:    "null",
			input:   `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := connection.Decode(json.RawMessage(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, lwerrors.IsErrorCode(err, lwerrors.ErrMalformedData), "got %v", err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, c)
		})
	}
}

func TestUnmarshalJSON_Array(t *testing.T) {
	input := `[
		{"src_component":"A","src_terminal_block":"1","src_terminal":"T1","dst_component":"B","dst_terminal_block":"1","dst_terminal":"T1"},
		{"src_component":"C","src_terminal_block":"2","src_terminal":"T2","dst_component":"D","dst_terminal_block":"2","dst_terminal":"T2"}
	]`

	var conns []connection.Connection
	require.NoError(t, json.Unmarshal([]byte(input), &conns))
	require.Len(t, conns, 2)
	assert.Equal(t, "C", conns[1].Source.Component)
	assert.NotEqual(t, conns[0].ID, conns[1].ID)
}
