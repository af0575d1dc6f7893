package registry

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/labelwires/pkg/config"
	"github.com/arthur-debert/labelwires/pkg/connection"
	"github.com/arthur-debert/labelwires/pkg/datastore"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
)

// Sentinel errors for errors.Is checks. Matching is by error code.
var (
	ErrDuplicateConnection = lwerrors.New(lwerrors.ErrDuplicateConnection, "duplicate connection")
	ErrConnectionNotFound  = lwerrors.New(lwerrors.ErrConnectionNotFound, "connection not found")
	ErrMalformedData       = lwerrors.New(lwerrors.ErrMalformedData, "malformed data")
	ErrPersistenceFailed   = lwerrors.New(lwerrors.ErrPersistenceFailed, "persistence failed")
)

// Options configures a Registry.
type Options struct {
	// SourcePath is an optional connection file to preload. Load failures
	// are logged and the registry starts empty.
	SourcePath string

	// OutputPath is where the list is written after every mutation.
	OutputPath string

	// Store reads and writes connection files.
	Store datastore.DataStore

	// Settings supplies the default CSV delimiter. Optional.
	Settings *config.Settings
}

// Registry is the connection manager. It is safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	conns      []connection.Connection
	store      datastore.DataStore
	outputPath string
	settings   *config.Settings

	obsMu     sync.RWMutex
	observers []Observer

	logger zerolog.Logger
}

// New creates a Registry. It fails only when required options are missing.
func New(opts Options) (*Registry, error) {
	if opts.OutputPath == "" {
		return nil, lwerrors.New(lwerrors.ErrInvalidInput, "no output file path given")
	}
	if opts.Store == nil {
		return nil, lwerrors.New(lwerrors.ErrInvalidInput, "no datastore given")
	}

	r := &Registry{
		store:      opts.Store,
		outputPath: opts.OutputPath,
		settings:   opts.Settings,
		logger:     logging.GetLogger("registry"),
	}

	if opts.SourcePath != "" {
		r.preload(opts.SourcePath)
	}

	return r, nil
}

// preload reads the source file. Any read or parse failure leaves the
// registry empty. Duplicate records are skipped.
func (r *Registry) preload(path string) {
	loaded, err := r.store.Load(path)
	if err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to load connections, starting empty")
		return
	}

	for _, c := range loaded {
		if r.indexOfEqualLocked(c, -1) >= 0 {
			r.logger.Warn().
				Str("path", path).
				Str("connection", c.String()).
				Msg("Skipping duplicate connection in source file")
			continue
		}
		r.conns = append(r.conns, r.freshIDLocked(c))
	}
	r.logger.Info().Str("path", path).Int("count", len(r.conns)).Msg("Loaded connections")
}

// OutputPath returns the file the registry persists to.
func (r *Registry) OutputPath() string {
	return r.outputPath
}

// Settings returns the settings the registry was created with, possibly nil.
func (r *Registry) Settings() *config.Settings {
	return r.settings
}

// Add creates a connection from src and dst and appends it. An equal
// connection already present yields DUPLICATE_CONNECTION and no change.
// If the append succeeds but the save fails, the new connection is
// returned together with a PERSISTENCE_FAILED error.
func (r *Registry) Add(src, dst connection.Endpoint) (connection.Connection, error) {
	candidate := connection.New(src, dst)

	r.mu.Lock()
	if r.indexOfEqualLocked(candidate, -1) >= 0 {
		r.mu.Unlock()
		r.logger.Debug().Str("connection", candidate.String()).Msg("Rejected duplicate connection")
		return connection.Connection{}, duplicateError(candidate)
	}
	r.conns = append(r.conns, candidate)
	err := r.persistLocked()
	r.mu.Unlock()

	r.notify(Event{Kind: EventAdded, Connection: candidate})
	return candidate, err
}

// Insert appends an existing connection, keeping its ID. It enforces the
// same duplicate rule as Add and also rejects an ID already in use.
func (r *Registry) Insert(c connection.Connection) error {
	r.mu.Lock()
	if r.indexOfEqualLocked(c, -1) >= 0 {
		r.mu.Unlock()
		return duplicateError(c)
	}
	if r.indexOfIDLocked(c.ID) >= 0 {
		r.mu.Unlock()
		return lwerrors.Newf(lwerrors.ErrInvalidInput, "connection id %s already in use", c.ID).
			WithDetail("id", c.ID.String())
	}
	r.conns = append(r.conns, c)
	err := r.persistLocked()
	r.mu.Unlock()

	r.notify(Event{Kind: EventAdded, Connection: c})
	return err
}

// Delete removes the first stored connection equal to c.
func (r *Registry) Delete(c connection.Connection) error {
	r.mu.Lock()
	idx := r.indexOfEqualLocked(c, -1)
	if idx < 0 {
		r.mu.Unlock()
		return lwerrors.Newf(lwerrors.ErrConnectionNotFound, "connection %s not found", c.String()).
			WithDetail("connection", c.String())
	}
	removed := r.conns[idx]
	r.conns = slices.Delete(r.conns, idx, idx+1)
	err := r.persistLocked()
	r.mu.Unlock()

	r.notify(Event{Kind: EventDeleted, Connection: removed})
	return err
}

// DeleteByID removes the connection with the given ID and returns it.
func (r *Registry) DeleteByID(id uuid.UUID) (connection.Connection, error) {
	r.mu.Lock()
	idx := r.indexOfIDLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return connection.Connection{}, notFoundByID(id)
	}
	removed := r.conns[idx]
	r.conns = slices.Delete(r.conns, idx, idx+1)
	err := r.persistLocked()
	r.mu.Unlock()

	r.notify(Event{Kind: EventDeleted, Connection: removed})
	return removed, err
}

// Replace swaps the connection with the given ID for next, at the same
// position, and returns the connection that was replaced. next must not be
// equal to any other stored connection.
func (r *Registry) Replace(id uuid.UUID, next connection.Connection) (connection.Connection, error) {
	r.mu.Lock()
	idx := r.indexOfIDLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return connection.Connection{}, notFoundByID(id)
	}
	if r.indexOfEqualLocked(next, idx) >= 0 {
		r.mu.Unlock()
		return connection.Connection{}, duplicateError(next)
	}
	if other := r.indexOfIDLocked(next.ID); other >= 0 && other != idx {
		r.mu.Unlock()
		return connection.Connection{}, lwerrors.Newf(lwerrors.ErrInvalidInput, "connection id %s already in use", next.ID).
			WithDetail("id", next.ID.String())
	}
	previous := r.conns[idx]
	r.conns[idx] = next
	err := r.persistLocked()
	r.mu.Unlock()

	r.notify(Event{Kind: EventReplaced, Connection: next, Previous: previous})
	return previous, err
}

// Populate clears the registry and loads records in order. It stops at the
// first malformed or duplicate record and leaves whatever was inserted
// before it in place. The file is written only when every record was
// accepted.
func (r *Registry) Populate(records []json.RawMessage) error {
	r.mu.Lock()
	r.conns = r.conns[:0:0]

	for i, rec := range records {
		c, err := connection.Decode(rec)
		if err != nil {
			count := len(r.conns)
			r.mu.Unlock()
			r.notify(Event{Kind: EventPopulated, Count: count})
			return lwerrors.Wrapf(err, lwerrors.ErrMalformedData, "record %d could not be decoded", i).
				WithDetail("index", i)
		}
		if r.indexOfEqualLocked(c, -1) >= 0 {
			count := len(r.conns)
			r.mu.Unlock()
			r.logger.Warn().Int("index", i).Str("connection", c.String()).Msg("Populate stopped at duplicate record")
			r.notify(Event{Kind: EventPopulated, Count: count})
			return duplicateError(c).WithDetail("index", i)
		}
		r.conns = append(r.conns, r.freshIDLocked(c))
	}

	count := len(r.conns)
	err := r.persistLocked()
	r.mu.Unlock()

	r.notify(Event{Kind: EventPopulated, Count: count})
	return err
}

// PopulateFromFile reads raw records from path and populates from them.
func (r *Registry) PopulateFromFile(path string) error {
	records, err := r.store.LoadRecords(path)
	if err != nil {
		return err
	}
	return r.Populate(records)
}

// Save writes the current list to the output file.
func (r *Registry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persistLocked()
}

// List returns a snapshot of the connections in display order.
func (r *Registry) List() []connection.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.conns)
}

// Len returns the number of stored connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Get returns the connection with the given ID.
func (r *Registry) Get(id uuid.UUID) (connection.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOfIDLocked(id); idx >= 0 {
		return r.conns[idx], true
	}
	return connection.Connection{}, false
}

// Tuple returns the display tuple for c if an equal connection is stored.
func (r *Registry) Tuple(c connection.Connection) (string, string, error) {
	r.mu.Lock()
	found := r.indexOfEqualLocked(c, -1) >= 0
	r.mu.Unlock()
	if !found {
		return "", "", lwerrors.Newf(lwerrors.ErrConnectionNotFound, "connection %s not found", c.String())
	}
	src, dst := c.Tuple()
	return src, dst, nil
}

func (r *Registry) persistLocked() error {
	if err := r.store.Save(r.outputPath, r.conns); err != nil {
		r.logger.Error().Err(err).Str("path", r.outputPath).Msg("Connections changed in memory but not saved")
		return lwerrors.Wrapf(err, lwerrors.ErrPersistenceFailed, "failed to save connections to %s", r.outputPath).
			WithDetail("path", r.outputPath)
	}
	return nil
}

// indexOfEqualLocked returns the index of the first connection equal to c,
// ignoring position skip.
func (r *Registry) indexOfEqualLocked(c connection.Connection, skip int) int {
	for i, existing := range r.conns {
		if i != skip && existing.Equal(c) {
			return i
		}
	}
	return -1
}

func (r *Registry) indexOfIDLocked(id uuid.UUID) int {
	for i, existing := range r.conns {
		if existing.ID == id {
			return i
		}
	}
	return -1
}

// freshIDLocked gives c a new id when its decoded id is already taken.
func (r *Registry) freshIDLocked(c connection.Connection) connection.Connection {
	if r.indexOfIDLocked(c.ID) < 0 {
		return c
	}
	taken := c.ID
	c.ID = uuid.New()
	r.logger.Warn().
		Str("id", taken.String()).
		Str("assigned", c.ID.String()).
		Str("connection", c.String()).
		Msg("Connection id already in use, assigned a new one")
	return c
}

func duplicateError(c connection.Connection) *lwerrors.Error {
	return lwerrors.Newf(lwerrors.ErrDuplicateConnection, "connection %s already exists", c.String()).
		WithDetail("connection", c.String())
}

func notFoundByID(id uuid.UUID) *lwerrors.Error {
	return lwerrors.Newf(lwerrors.ErrConnectionNotFound, "no connection with id %s", id).
		WithDetail("id", id.String())
}
