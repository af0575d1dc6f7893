package commands

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

// EndpointSeparator splits component, block and terminal on the command
// line. Components often contain "-", so the label separator is not used.
const EndpointSeparator = ":"

// parseEndpoint reads component[:block[:terminal]].
func parseEndpoint(s string) (connection.Endpoint, error) {
	parts := strings.SplitN(s, EndpointSeparator, 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	e := connection.Endpoint{
		Component:     strings.TrimSpace(parts[0]),
		TerminalBlock: strings.TrimSpace(parts[1]),
		Terminal:      strings.TrimSpace(parts[2]),
	}
	if e.IsEmpty() {
		return e, lwerrors.Newf(lwerrors.ErrInvalidInput, MsgErrEmptyEndpoint, s)
	}
	return e, nil
}

// editValues builds the field map an edit takes from two endpoints.
func editValues(src, dst connection.Endpoint) map[string]string {
	return map[string]string{
		connection.FieldSrcComponent:     src.Component,
		connection.FieldSrcTerminalBlock: src.TerminalBlock,
		connection.FieldSrcTerminal:      src.Terminal,
		connection.FieldDstComponent:     dst.Component,
		connection.FieldDstTerminalBlock: dst.TerminalBlock,
		connection.FieldDstTerminal:      dst.Terminal,
	}
}

// resolveID finds a connection by full ID, unique ID prefix, or "#N"
// list position (1-based).
func resolveID(conns []connection.Connection, ref string) (uuid.UUID, error) {
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil {
			return uuid.Nil, lwerrors.Newf(lwerrors.ErrInvalidInput, MsgErrBadIndex, ref)
		}
		if n < 1 || n > len(conns) {
			return uuid.Nil, lwerrors.Newf(lwerrors.ErrConnectionNotFound, MsgErrIndexRange, n, len(conns))
		}
		return conns[n-1].ID, nil
	}

	if id, err := uuid.Parse(ref); err == nil {
		for _, c := range conns {
			if c.ID == id {
				return id, nil
			}
		}
		return uuid.Nil, lwerrors.Newf(lwerrors.ErrConnectionNotFound, MsgErrUnknownID, ref)
	}

	prefix := strings.ToLower(ref)
	var matches []uuid.UUID
	for _, c := range conns {
		if prefix != "" && strings.HasPrefix(c.ID.String(), prefix) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return uuid.Nil, lwerrors.Newf(lwerrors.ErrConnectionNotFound, MsgErrUnknownID, ref)
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, lwerrors.Newf(lwerrors.ErrInvalidInput, MsgErrAmbiguousID, ref, len(matches))
	}
}

// parseDelimiter turns a flag value into a rune. Empty means fallback.
func parseDelimiter(s string, fallback rune) (rune, error) {
	if s == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, lwerrors.Newf(lwerrors.ErrInvalidInput, MsgErrBadDelimiter, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
