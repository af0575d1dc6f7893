package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
	"github.com/arthur-debert/labelwires/pkg/types"
)

// DataStore persists connection lists.
type DataStore interface {
	// LoadRecords reads the raw records of a connection file without
	// decoding them into connections.
	LoadRecords(path string) ([]json.RawMessage, error)

	// Load reads and decodes a connection file.
	Load(path string) ([]connection.Connection, error)

	// Save replaces the file at path with the given connections.
	Save(path string, conns []connection.Connection) error
}

type fileStore struct {
	fs types.FS
}

// New creates a DataStore on top of fs.
func New(fs types.FS) DataStore {
	return &fileStore{fs: fs}
}

func (s *fileStore) LoadRecords(path string) ([]json.RawMessage, error) {
	logger := logging.GetLogger("datastore")

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lwerrors.Wrapf(err, lwerrors.ErrFileNotFound, "connection file %s does not exist", path).
				WithDetail("path", path)
		}
		return nil, lwerrors.Wrapf(err, lwerrors.ErrFileRead, "failed to read connection file %s", path).
			WithDetail("path", path)
	}
	logger.Trace().Str("path", path).Str("contents", string(data)).Msg("Read connection file")

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to parse connection file")
		return nil, lwerrors.Wrapf(err, lwerrors.ErrMalformedData, "connection file %s is not a JSON array", path).
			WithDetail("path", path)
	}
	return records, nil
}

func (s *fileStore) Load(path string) ([]connection.Connection, error) {
	records, err := s.LoadRecords(path)
	if err != nil {
		return nil, err
	}

	conns := make([]connection.Connection, 0, len(records))
	for i, rec := range records {
		c, err := connection.Decode(rec)
		if err != nil {
			return nil, lwerrors.Wrapf(err, lwerrors.ErrMalformedData, "record %d in %s", i, path).
				WithDetail("path", path).
				WithDetail("index", i)
		}
		conns = append(conns, c)
	}
	return conns, nil
}

func (s *fileStore) Save(path string, conns []connection.Connection) error {
	logger := logging.GetLogger("datastore")
	done := logging.LogOperationStart(logger, "save")
	defer done()

	if conns == nil {
		conns = []connection.Connection{}
	}
	data, err := json.MarshalIndent(conns, "", "  ")
	if err != nil {
		return lwerrors.Wrap(err, lwerrors.ErrInternal, "failed to encode connections")
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return lwerrors.Wrapf(err, lwerrors.ErrDirCreate, "failed to create directory %s", dir).
				WithDetail("path", path)
		}
	}

	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		_ = s.fs.Remove(tmp)
		return lwerrors.Wrapf(err, lwerrors.ErrFileWrite, "failed to write %s", tmp).
			WithDetail("path", path)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return lwerrors.Wrapf(err, lwerrors.ErrFileWrite, "failed to replace %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Int("count", len(conns)).Msg("Saved connections")
	return nil
}
