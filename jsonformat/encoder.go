package jsonformat

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/relex/logjson/base"
)

// encodeRule is one step of the fallback chain, e.g. temporal or stacktrace rendering
//
// Rules are tried in fixed order and the first one to return ok=true wins.
type encodeRule struct {
	name string
	try  func(value interface{}) (interface{}, bool)
}

// chainEncoder is the built-in ValueEncoder: an ordered rule chain ending in last-resort
// stringification, so that EncodeValue as a whole can never fail
type chainEncoder struct {
	rules []encodeRule
}

// NewValueEncoder creates the built-in encoder chain for values without native JSON representation:
//
//	temporal values  -> ISO 8601 text via the given TemporalFormatter (nil for the default)
//	Stacktrace       -> trimmed multi-line trace text
//	error values     -> their own Error() text; reflect.Type values -> type name
//	anything else    -> delegated to encoding/json, and if that cannot encode it either,
//	                    converted to its textual form or, failing even that, to null
//
// The returned encoder is total: EncodeValue always handles the value, with null as the worst case.
func NewValueEncoder(temporal TemporalFormatter) base.ValueEncoder {
	if temporal == nil {
		temporal = NewTemporalFormatter("")
	}
	return &chainEncoder{
		rules: []encodeRule{
			{"temporal", newTemporalRule(temporal)},
			{"stacktrace", encodeStacktrace},
			{"error", encodeErrorOrType},
			{"native", encodeNative},
			{"string", encodeLastResort},
		},
	}
}

func (encoder *chainEncoder) EncodeValue(value interface{}) (interface{}, bool) {
	for _, rule := range encoder.rules {
		if encoded, ok := rule.try(value); ok {
			return encoded, true
		}
	}
	// unreachable: the last rule handles everything
	return nil, true
}

func newTemporalRule(formatter TemporalFormatter) func(value interface{}) (interface{}, bool) {
	return func(value interface{}) (interface{}, bool) {
		switch t := value.(type) {
		case time.Time:
			return formatter.FormatTemporal(t), true
		case *time.Time:
			if t == nil {
				return nil, false
			}
			return formatter.FormatTemporal(*t), true
		}
		return nil, false
	}
}

func encodeStacktrace(value interface{}) (interface{}, bool) {
	switch trace := value.(type) {
	case base.Stacktrace:
		return trace.Format(), true
	case *base.Stacktrace:
		if trace == nil {
			return nil, false
		}
		return trace.Format(), true
	}
	return nil, false
}

// encodeErrorOrType renders error values via their own Error() and reflect.Type values by name
//
// An Error method panicking (e.g. called on a half-initialized value) yields null instead of
// propagating: a logging call must never crash the caller.
func encodeErrorOrType(value interface{}) (encoded interface{}, ok bool) {
	switch v := value.(type) {
	case error:
		defer func() {
			if recover() != nil {
				encoded, ok = nil, true
			}
		}()
		return v.Error(), true
	case reflect.Type:
		return v.String(), true
	}
	return nil, false
}

// encodeNative delegates to encoding/json itself; a marshalling failure of any kind means
// the value cannot be natively encoded and the next rule applies
//
// json.Marshal re-raises panics from a custom MarshalJSON; those count as failures too.
func encodeNative(value interface{}) (encoded interface{}, ok bool) {
	defer func() {
		if recover() != nil {
			encoded, ok = nil, false
		}
	}()
	data, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	return json.RawMessage(data), true
}

// encodeLastResort converts the value to its textual form; if the conversion itself panics,
// the result is null. This terminal rule always applies.
func encodeLastResort(value interface{}) (encoded interface{}, ok bool) {
	defer func() {
		if recover() != nil {
			encoded, ok = nil, true
		}
	}()
	if stringer, isStringer := value.(fmt.Stringer); isStringer {
		return stringer.String(), true
	}
	return fmt.Sprint(value), true
}
