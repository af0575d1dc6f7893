// Package connection defines the wire connection entity: an undirected pair
// of terminal endpoints with a runtime identifier.
package connection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
)

// Separator joins endpoint parts in the tuple and wire renderings.
const Separator = "-"

// Field names as used in the persisted JSON form and in edit value maps.
const (
	FieldSrcComponent     = "src_component"
	FieldSrcTerminalBlock = "src_terminal_block"
	FieldSrcTerminal      = "src_terminal"
	FieldDstComponent     = "dst_component"
	FieldDstTerminalBlock = "dst_terminal_block"
	FieldDstTerminal      = "dst_terminal"
)

// Fields lists the persisted field names in column order.
var Fields = []string{
	FieldSrcComponent,
	FieldSrcTerminalBlock,
	FieldSrcTerminal,
	FieldDstComponent,
	FieldDstTerminalBlock,
	FieldDstTerminal,
}

// Endpoint is one side of a connection.
type Endpoint struct {
	Component     string
	TerminalBlock string
	Terminal      string
}

// IsEmpty reports whether all parts are empty.
func (e Endpoint) IsEmpty() bool {
	return e.Component == "" && e.TerminalBlock == "" && e.Terminal == ""
}

// Wire renders the endpoint as component-block-terminal.
func (e Endpoint) Wire() string {
	return strings.Join([]string{e.Component, e.TerminalBlock, e.Terminal}, Separator)
}

// Cable renders the endpoint as component-block [terminal].
func (e Endpoint) Cable() string {
	return fmt.Sprintf("%s%s%s [%s]", e.Component, Separator, e.TerminalBlock, e.Terminal)
}

// Label is the wire rendering with trailing separators removed, so missing
// trailing parts don't leave a dangling "-".
func (e Endpoint) Label() string {
	return strings.TrimRight(e.Wire(), Separator)
}

// Connection is immutable once created. Editing is modelled as replacing a
// connection with a new one carrying a fresh ID.
type Connection struct {
	ID          uuid.UUID
	Source      Endpoint
	Destination Endpoint
}

// New creates a connection with a fresh ID.
func New(src, dst Endpoint) Connection {
	c := Connection{
		ID:          uuid.New(),
		Source:      src,
		Destination: dst,
	}
	logger := logging.GetLogger("connection")
	logger.Debug().Str("id", c.ID.String()).Msg("New connection created")
	return c
}

// FromValues creates a connection from a field map keyed by the Field*
// names. Missing keys become empty strings.
func FromValues(values map[string]string) Connection {
	return New(
		Endpoint{
			Component:     values[FieldSrcComponent],
			TerminalBlock: values[FieldSrcTerminalBlock],
			Terminal:      values[FieldSrcTerminal],
		},
		Endpoint{
			Component:     values[FieldDstComponent],
			TerminalBlock: values[FieldDstTerminalBlock],
			Terminal:      values[FieldDstTerminal],
		},
	)
}

// Equal reports whether c and other join the same two endpoints, in either
// direction. IDs are ignored.
func (c Connection) Equal(other Connection) bool {
	forward := c.Source == other.Source && c.Destination == other.Destination
	reverse := c.Source == other.Destination && c.Destination == other.Source
	return forward || reverse
}

// IsEmpty reports whether all six text fields are empty.
func (c Connection) IsEmpty() bool {
	return c.Source.IsEmpty() && c.Destination.IsEmpty()
}

// Tuple returns the (source, destination) labels used for display.
func (c Connection) Tuple() (string, string) {
	return c.Source.Label(), c.Destination.Label()
}

// Values returns the six fields in column order.
func (c Connection) Values() []string {
	return []string{
		c.Source.Component,
		c.Source.TerminalBlock,
		c.Source.Terminal,
		c.Destination.Component,
		c.Destination.TerminalBlock,
		c.Destination.Terminal,
	}
}

func (c Connection) String() string {
	src, dst := c.Tuple()
	return src + " | " + dst
}

// record is the persisted JSON form. The ID never leaves the process.
type record struct {
	SrcComponent     string `json:"src_component"`
	SrcTerminalBlock string `json:"src_terminal_block"`
	SrcTerminal      string `json:"src_terminal"`
	DstComponent     string `json:"dst_component"`
	DstTerminalBlock string `json:"dst_terminal_block"`
	DstTerminal      string `json:"dst_terminal"`
}

// MarshalJSON writes the canonical form without the ID.
func (c Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		SrcComponent:     c.Source.Component,
		SrcTerminalBlock: c.Source.TerminalBlock,
		SrcTerminal:      c.Source.Terminal,
		DstComponent:     c.Destination.Component,
		DstTerminalBlock: c.Destination.TerminalBlock,
		DstTerminal:      c.Destination.Terminal,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON. All six fields are required
// and must be strings. An "id" (or legacy "uuid") field is honoured when it
// parses as a UUID; otherwise a fresh ID is assigned.
func (c *Connection) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

// Decode parses one raw record into a Connection. Failures are
// MALFORMED_DATA errors.
func Decode(data json.RawMessage) (Connection, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return Connection{}, lwerrors.Wrap(err, lwerrors.ErrMalformedData, "connection record is not a JSON object")
	}
	if raw == nil {
		return Connection{}, lwerrors.New(lwerrors.ErrMalformedData, "connection record is null")
	}

	values := make(map[string]string, len(Fields))
	for _, name := range Fields {
		field, ok := raw[name]
		if !ok {
			return Connection{}, lwerrors.Newf(lwerrors.ErrMalformedData, "connection record is missing %q", name).
				WithDetail("field", name)
		}
		var s string
		if err := json.Unmarshal(field, &s); err != nil {
			return Connection{}, lwerrors.Wrapf(err, lwerrors.ErrMalformedData, "connection field %q is not a string", name).
				WithDetail("field", name)
		}
		values[name] = s
	}

	c := FromValues(values)
	if id, ok := decodeID(raw); ok {
		c.ID = id
	}
	return c, nil
}

func decodeID(raw map[string]json.RawMessage) (uuid.UUID, bool) {
	for _, key := range []string{"id", "uuid"} {
		field, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(field, &s); err != nil {
			continue
		}
		if id, err := uuid.Parse(s); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}
