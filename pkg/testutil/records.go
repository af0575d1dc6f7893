package testutil

import (
	"encoding/json"

	"github.com/arthur-debert/labelwires/pkg/connection"
)

// Record builds a raw connection record from up to six field values in
// column order. Missing values are empty strings.
func Record(values ...string) json.RawMessage {
	m := make(map[string]string, len(connection.Fields))
	for i, name := range connection.Fields {
		if i < len(values) {
			m[name] = values[i]
		} else {
			m[name] = ""
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return data
}

// RecordWithID is Record with an "id" field, as written by older files.
func RecordWithID(id string, values ...string) json.RawMessage {
	m := make(map[string]string, len(connection.Fields)+1)
	if err := json.Unmarshal(Record(values...), &m); err != nil {
		panic(err)
	}
	m["id"] = id
	data, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return data
}

// Endpoint is shorthand for connection.Endpoint.
func Endpoint(component, block, terminal string) connection.Endpoint {
	return connection.Endpoint{Component: component, TerminalBlock: block, Terminal: terminal}
}

// Values builds an edit value map from six fields in column order.
func Values(values ...string) map[string]string {
	m := make(map[string]string, len(connection.Fields))
	for i, name := range connection.Fields {
		if i < len(values) {
			m[name] = values[i]
		}
	}
	return m
}
