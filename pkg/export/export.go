// Package export writes connection lists as two-column CSV for label
// printers. Each row holds the rendered source and destination endpoints.
package export

import (
	"encoding/csv"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
	"github.com/arthur-debert/labelwires/pkg/types"
)

// Extension is forced onto every export path.
const Extension = ".csv"

// Strategy renders connections in one label format.
type Strategy interface {
	Name() string
	// Generate returns the rows joined by newlines, without a trailing one.
	Generate(conns []connection.Connection, delimiter rune) (string, error)
	// Export writes the rows to path (with a .csv extension) and returns
	// the path written.
	Export(fs types.FS, path string, conns []connection.Connection, delimiter rune) (string, error)
}

// renderStrategy is a Strategy defined by how it renders one endpoint.
type renderStrategy struct {
	name   string
	render func(connection.Endpoint) string
}

var (
	// Wire renders endpoints as component-block-terminal.
	Wire Strategy = &renderStrategy{name: "wire", render: connection.Endpoint.Wire}

	// Cable renders endpoints as component-block [terminal].
	Cable Strategy = &renderStrategy{name: "cable", render: connection.Endpoint.Cable}
)

func (s *renderStrategy) Name() string { return s.name }

func (s *renderStrategy) Generate(conns []connection.Connection, delimiter rune) (string, error) {
	data, err := s.encode(conns, delimiter)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (s *renderStrategy) Export(fs types.FS, path string, conns []connection.Connection, delimiter rune) (string, error) {
	logger := logging.GetLogger("export")

	if path == "" {
		return "", lwerrors.New(lwerrors.ErrInvalidInput, "no export path given")
	}
	path = WithExtension(path)

	data, err := s.encode(conns, delimiter)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return "", lwerrors.Wrapf(err, lwerrors.ErrDirCreate, "failed to create directory %s", dir)
		}
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return "", lwerrors.Wrapf(err, lwerrors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("format", s.name).Str("path", path).Int("count", len(conns)).Msg("Exported connections")
	return path, nil
}

func (s *renderStrategy) encode(conns []connection.Connection, delimiter rune) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delimiter

	for _, c := range conns {
		if err := w.Write([]string{s.render(c.Source), s.render(c.Destination)}); err != nil {
			return nil, lwerrors.Wrapf(err, lwerrors.ErrInvalidInput, "cannot export with delimiter %q", delimiter)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, lwerrors.Wrapf(err, lwerrors.ErrInvalidInput, "cannot export with delimiter %q", delimiter)
	}
	return []byte(sb.String()), nil
}

// WithExtension replaces any extension on path with .csv.
func WithExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == Extension {
		return path
	}
	return strings.TrimSuffix(path, ext) + Extension
}

var (
	formatsMu sync.RWMutex
	formats   = map[string]Strategy{
		Wire.Name():  Wire,
		Cable.Name(): Cable,
	}
)

// Register adds a strategy under its name. Names are unique.
func Register(s Strategy) error {
	if s == nil || s.Name() == "" {
		return lwerrors.New(lwerrors.ErrInvalidInput, "export format name cannot be empty")
	}
	formatsMu.Lock()
	defer formatsMu.Unlock()
	if _, exists := formats[s.Name()]; exists {
		return lwerrors.Newf(lwerrors.ErrInvalidInput, "export format '%s' is already registered", s.Name())
	}
	formats[s.Name()] = s
	return nil
}

// ForFormat returns the strategy registered as name (case-insensitive).
func ForFormat(name string) (Strategy, error) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	if s, ok := formats[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, lwerrors.Newf(lwerrors.ErrInvalidInput, "unknown export format '%s'", name).
		WithDetail("available", formatNamesLocked())
}

// Formats lists registered format names, sorted.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	return formatNamesLocked()
}

func formatNamesLocked() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
