package registry

import (
	"encoding/csv"
	"strings"

	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

// GenerateCSV renders every connection as one row of its six field values,
// without a header. A zero delimiter selects the configured default, or a
// comma when no settings were given.
func (r *Registry) GenerateCSV(delimiter rune) (string, error) {
	if delimiter == 0 {
		delimiter = ','
		if r.settings != nil {
			delimiter = r.settings.Delimiter()
		}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delimiter

	for _, c := range r.List() {
		if err := w.Write(c.Values()); err != nil {
			return "", lwerrors.Wrapf(err, lwerrors.ErrInvalidInput, "cannot write csv with delimiter %q", delimiter)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", lwerrors.Wrapf(err, lwerrors.ErrInvalidInput, "cannot write csv with delimiter %q", delimiter)
	}
	return sb.String(), nil
}
