package base

import (
	"golang.org/x/exp/slices"
)

// Field is one named value inside a Record
type Field struct {
	Key   string
	Value interface{}
}

// Record is one structured logging event: an ordered mapping of field names to arbitrary values
//
// Records are assembled by the upstream logging pipeline, one per event. A record is owned
// exclusively by the serializer for the duration of one serialization call and is never mutated by it.
// Field values may be anything; representing them in JSON is the job of the value encoder chain.
type Record struct {
	fields []Field
	index  map[string]int // field key to position in fields
}

// NewRecord creates an empty Record with the given field capacity
func NewRecord(capacity int) *Record {
	return &Record{
		fields: make([]Field, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

// RecordFromMap creates a Record from an unordered map, with keys in sorted order
//
// Sorting makes the resulting document deterministic, since Go map iteration order is random.
func RecordFromMap(fields map[string]interface{}) *Record {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	record := NewRecord(len(fields))
	for _, key := range keys {
		record.Set(key, fields[key])
	}
	return record
}

// Set adds a field or replaces the value of an existing field in place, keeping its original position
func (record *Record) Set(key string, value interface{}) {
	if position, exists := record.index[key]; exists {
		record.fields[position].Value = value
		return
	}
	record.index[key] = len(record.fields)
	record.fields = append(record.fields, Field{Key: key, Value: value})
}

// Get returns the value of the named field
func (record *Record) Get(key string) (interface{}, bool) {
	position, exists := record.index[key]
	if !exists {
		return nil, false
	}
	return record.fields[position].Value, true
}

// Len returns the number of fields
func (record *Record) Len() int {
	return len(record.fields)
}

// Fields returns all fields in insertion order
//
// The returned slice is the internal one and must not be modified
func (record *Record) Fields() []Field {
	return record.fields
}
