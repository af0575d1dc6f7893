// pkg/export/export_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Memory FS
// PURPOSE: Test wire/cable CSV rendering and export paths

package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/export"
	"github.com/arthur-debert/labelwires/pkg/testutil"
)

func sample() []connection.Connection {
	return []connection.Connection{
		connection.New(testutil.Endpoint("C1", "B1", "T1"), testutil.Endpoint("C2", "B2", "T2")),
		connection.New(testutil.Endpoint("C3", "B3", "T3"), testutil.Endpoint("C4", "B4", "T4")),
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		strategy export.Strategy
		delim    rune
		want     string
	}{
		{"wire pipe", export.Wire, '|', "C1-B1-T1|C2-B2-T2\nC3-B3-T3|C4-B4-T4"},
		{"wire semicolon", export.Wire, ';', "C1-B1-T1;C2-B2-T2\nC3-B3-T3;C4-B4-T4"},
		{"cable pipe", export.Cable, '|', "C1-B1 [T1]|C2-B2 [T2]\nC3-B3 [T3]|C4-B4 [T4]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.strategy.Generate(sample(), tt.delim)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_Empty(t *testing.T) {
	got, err := export.Wire.Generate(nil, '|')
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestGenerate_InvalidDelimiter(t *testing.T) {
	_, err := export.Wire.Generate(sample(), '\n')
	require.Error(t, err)
	assert.True(t, lwerrors.IsErrorCode(err, lwerrors.ErrInvalidInput))
}

func TestExport(t *testing.T) {
	fs := testutil.NewMemoryFS()

	path, err := export.Wire.Export(fs, "/exports/labels.txt", sample(), '|')
	require.NoError(t, err)
	assert.Equal(t, "/exports/labels.csv", path)
	assert.Equal(t, "C1-B1-T1|C2-B2-T2\nC3-B3-T3|C4-B4-T4\n", testutil.ReadString(t, fs, path))

	_, err = export.Wire.Export(fs, "", sample(), '|')
	assert.True(t, lwerrors.IsErrorCode(err, lwerrors.ErrInvalidInput))
}

func TestExport_WriteFailure(t *testing.T) {
	fs := testutil.NewFaultyFS(testutil.NewMemoryFS())
	fs.FailWrites(nil)

	_, err := export.Cable.Export(fs, "/out", sample(), '|')
	require.Error(t, err)
	assert.True(t, lwerrors.IsErrorCode(err, lwerrors.ErrFileWrite))
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "a.csv", export.WithExtension("a"))
	assert.Equal(t, "a.csv", export.WithExtension("a.csv"))
	assert.Equal(t, "a.csv", export.WithExtension("a.json"))
	assert.Equal(t, "dir.d/a.csv", export.WithExtension("dir.d/a"))
}

func TestForFormat(t *testing.T) {
	s, err := export.ForFormat("WIRE")
	require.NoError(t, err)
	assert.Equal(t, "wire", s.Name())

	_, err = export.ForFormat("pdf")
	assert.True(t, lwerrors.IsErrorCode(err, lwerrors.ErrInvalidInput))

	assert.Equal(t, []string{"cable", "wire"}, export.Formats())
	assert.Error(t, export.Register(export.Wire), "names are unique")
}
