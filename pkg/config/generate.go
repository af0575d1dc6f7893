package config

import (
	"bytes"

	toml "github.com/pelletier/go-toml/v2"

	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

const generatedHeader = `# labelwires settings
# Generated by "labelwires genconfig". Remove any key to fall back to its default.

`

// GenerateConfigContent renders s as a settings file.
func GenerateConfigContent(s *Settings) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return nil, lwerrors.Wrap(err, lwerrors.ErrInternal, "failed to encode settings")
	}
	return buf.Bytes(), nil
}
