package base

// ValueEncoder converts a single value which the JSON routine cannot natively represent
// into a JSON-compatible one: nil, bool, string, number, json.RawMessage, a sequence or
// a string-keyed mapping of such values
//
// An encoder returns false to signal the value is not handled, leaving it to the next
// configured fallback. The built-in chain (jsonformat.NewValueEncoder) never returns false.
type ValueEncoder interface {
	// EncodeValue returns the JSON-compatible replacement for value, or false if this encoder doesn't handle it
	EncodeValue(value interface{}) (interface{}, bool)
}

// DefaultFunc is the bare function form of a fallback encoder hook
//
// When both a ValueEncoder and a DefaultFunc are configured, the DefaultFunc is consulted only
// for values the ValueEncoder does not handle.
type DefaultFunc func(value interface{}) (interface{}, bool)
