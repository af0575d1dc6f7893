package registry

import "github.com/arthur-debert/labelwires/pkg/connection"

// EventKind identifies the mutation an Event reports.
type EventKind string

const (
	EventAdded     EventKind = "added"
	EventDeleted   EventKind = "deleted"
	EventReplaced  EventKind = "replaced"
	EventPopulated EventKind = "populated"
)

// Event describes one applied mutation. Connection is the added, deleted or
// replacement connection; Previous is set for replacements; Count is the
// registry size after a populate.
type Event struct {
	Kind       EventKind
	Connection connection.Connection
	Previous   connection.Connection
	Count      int
}

// Observer receives events after the registry lock is released, so it may
// call back into the registry.
type Observer func(Event)

// Subscribe registers fn to be called after every applied mutation,
// including mutations whose save failed.
func (r *Registry) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, fn)
}

func (r *Registry) notify(ev Event) {
	r.obsMu.RLock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.obsMu.RUnlock()

	for _, fn := range observers {
		fn(ev)
	}
}
