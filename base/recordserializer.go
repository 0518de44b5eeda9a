package base

// RecordSerializer serializes log records one at a time into JSON documents
type RecordSerializer interface {
	// SerializeRecord serializes the given log record into one JSON document without trailing newline
	//
	// With the built-in encoder chain installed, the call cannot fail due to field value content;
	// an error can only come from caller-supplied hooks or a replaced serializer function
	SerializeRecord(record *Record) ([]byte, error)
}

// DumpOptions carries the per-serializer settings read by a DumpFunc, captured once at construction
type DumpOptions struct {
	Encoder     ValueEncoder // encoder strategy consulted first for unrepresentable values, nil for none
	Default     DefaultFunc  // fallback hook consulted after Encoder, nil for none
	Indent      string       // one level of indentation, empty for single-line output
	EnsureASCII bool         // escape non-ASCII characters as \uXXXX sequences
	BufferSize  int          // initial output buffer capacity in bytes, 0 for the default
}

// DumpFunc turns one record into a JSON document
//
// The built-in implementation is jsonformat.Dump; a replacement must honor the same options
// so a different JSON engine can be swapped in without touching the rest of the configuration.
type DumpFunc func(record *Record, options DumpOptions) ([]byte, error)
