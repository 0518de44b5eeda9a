package jsonformat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/relex/logjson/base"
	"github.com/relex/logjson/defs"
	"github.com/relex/logjson/util"
	"golang.org/x/exp/slices"
)

// Dump is the built-in DumpFunc, turning one record into a JSON document
//
// Natively representable values (primitives, string-keyed maps, sequences) are written directly;
// everything else is resolved through options.Encoder, then options.Default. A value neither hook
// handles fails the dump with an unsupported-type error: with the built-in chain installed that
// cannot happen, as the chain handles every value.
//
// Record fields keep insertion order; map keys are written in sorted order so that equal inputs
// always produce byte-identical documents. The output carries no trailing newline.
func Dump(record *base.Record, options base.DumpOptions) ([]byte, error) {
	state := &dumpState{options: options}

	capacity := options.BufferSize
	if capacity <= 0 {
		capacity = defs.SerializerBufferBytes
	}
	state.buffer.Grow(capacity)

	if record == nil {
		state.buffer.WriteString("{}")
	} else if err := state.writeFields(record.Fields()); err != nil {
		return nil, err
	}
	return state.buffer.Bytes(), nil
}

type dumpState struct {
	buffer  bytes.Buffer
	scratch []byte // reused for string escaping
	options base.DumpOptions
	depth   int
}

func (state *dumpState) writeValue(value interface{}) error {
	switch v := value.(type) {
	case nil:
		state.buffer.WriteString("null")
		return nil
	case bool:
		state.buffer.WriteString(strconv.FormatBool(v))
		return nil
	case string:
		state.writeString(v)
		return nil
	case int:
		state.writeInt(int64(v))
		return nil
	case int64:
		state.writeInt(v)
		return nil
	case uint64:
		state.buffer.WriteString(strconv.FormatUint(v, 10))
		return nil
	case float32:
		return state.writeFloat(float64(v), 32, value)
	case float64:
		return state.writeFloat(v, 64, value)
	case json.Number:
		// a Number may carry arbitrary text, not only what json.Decoder produces
		if !isValidNumber(string(v)) {
			return state.writeFallback(v)
		}
		state.buffer.WriteString(string(v))
		return nil
	case json.RawMessage:
		state.writeRaw(v)
		return nil
	case *base.Record:
		if v == nil {
			state.buffer.WriteString("null")
			return nil
		}
		return state.writeFields(v.Fields())
	case map[string]interface{}:
		return state.writeMap(v)
	case []interface{}:
		return state.writeArray(len(v), func(i int) interface{} { return v[i] })
	case base.Stacktrace, *base.Stacktrace:
		// a slice of counters must not be written as a number array
		return state.writeFallback(value)
	}
	return state.writeReflected(value)
}

// writeReflected covers the value kinds not matched by the fast paths above: named primitive
// types, typed containers and pointers. Structs (including time.Time), channels, functions and
// the other kinds JSON has no shape for go through the fallback hooks.
func (state *dumpState) writeReflected(value interface{}) error {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		state.buffer.WriteString(strconv.FormatBool(rv.Bool()))
		return nil
	case reflect.String:
		state.writeString(rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		state.writeInt(rv.Int())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		state.buffer.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32:
		return state.writeFloat(rv.Float(), 32, value)
	case reflect.Float64:
		return state.writeFloat(rv.Float(), 64, value)
	case reflect.Ptr:
		if rv.IsNil() {
			state.buffer.WriteString("null")
			return nil
		}
		// non-nil pointers keep their method set for the hooks (*time.Time, custom errors)
		return state.writeFallback(value)
	case reflect.Map:
		if rv.IsNil() {
			state.buffer.WriteString("null")
			return nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return state.writeFallback(value)
		}
		return state.writeReflectedMap(rv)
	case reflect.Slice:
		if rv.IsNil() {
			state.buffer.WriteString("null")
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is base64 text to encoding/json, not a number array
			return state.writeFallback(value)
		}
		return state.writeArray(rv.Len(), func(i int) interface{} { return rv.Index(i).Interface() })
	case reflect.Array:
		return state.writeArray(rv.Len(), func(i int) interface{} { return rv.Index(i).Interface() })
	default:
		return state.writeFallback(value)
	}
}

// writeFallback resolves one value without native JSON representation through the configured
// hooks: the encoder strategy first, the default function only for values the encoder declines
func (state *dumpState) writeFallback(value interface{}) error {
	if encoder := state.options.Encoder; encoder != nil {
		if encoded, ok := encoder.EncodeValue(value); ok {
			return state.writeValue(encoded)
		}
	}
	if defaultFn := state.options.Default; defaultFn != nil {
		if encoded, ok := defaultFn(value); ok {
			// hook output may nest further unrepresentable values and is walked again;
			// a hook returning its input unchanged would recurse without end
			return state.writeValue(encoded)
		}
	}
	return fmt.Errorf("cannot encode value of type %T", value)
}

func (state *dumpState) writeFields(fields []base.Field) error {
	if len(fields) == 0 {
		state.buffer.WriteString("{}")
		return nil
	}
	state.buffer.WriteByte('{')
	state.depth++
	for i, field := range fields {
		if i > 0 {
			state.buffer.WriteByte(',')
		}
		state.writeNewline()
		state.writeString(field.Key)
		state.buffer.WriteByte(':')
		if state.options.Indent != "" {
			state.buffer.WriteByte(' ')
		}
		if err := state.writeValue(field.Value); err != nil {
			return err
		}
	}
	state.depth--
	state.writeNewline()
	state.buffer.WriteByte('}')
	return nil
}

func (state *dumpState) writeMap(fields map[string]interface{}) error {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	ordered := make([]base.Field, len(keys))
	for i, key := range keys {
		ordered[i] = base.Field{Key: key, Value: fields[key]}
	}
	return state.writeFields(ordered)
}

func (state *dumpState) writeReflectedMap(rv reflect.Value) error {
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	slices.Sort(keys)

	ordered := make([]base.Field, len(keys))
	keyValue := reflect.New(rv.Type().Key()).Elem()
	for i, key := range keys {
		keyValue.SetString(key)
		ordered[i] = base.Field{Key: key, Value: rv.MapIndex(keyValue).Interface()}
	}
	return state.writeFields(ordered)
}

func (state *dumpState) writeArray(length int, itemAt func(i int) interface{}) error {
	if length == 0 {
		state.buffer.WriteString("[]")
		return nil
	}
	state.buffer.WriteByte('[')
	state.depth++
	for i := 0; i < length; i++ {
		if i > 0 {
			state.buffer.WriteByte(',')
		}
		state.writeNewline()
		if err := state.writeValue(itemAt(i)); err != nil {
			return err
		}
	}
	state.depth--
	state.writeNewline()
	state.buffer.WriteByte(']')
	return nil
}

// writeRaw embeds an already-encoded fragment, re-compacted or re-indented to match the document
//
// A fragment holding invalid JSON is embedded as its text instead, so that a malformed
// RawMessage field degrades to a string rather than failing the whole document.
func (state *dumpState) writeRaw(raw json.RawMessage) {
	fragment := &bytes.Buffer{}
	var err error
	if state.options.Indent == "" {
		err = json.Compact(fragment, raw)
	} else {
		prefix := strings.Repeat(state.options.Indent, state.depth)
		err = json.Indent(fragment, raw, prefix, state.options.Indent)
	}
	if err != nil {
		state.writeString(string(raw))
		return
	}
	encoded := fragment.Bytes()
	if state.options.EnsureASCII {
		encoded = util.EscapeNonASCII(encoded)
	}
	state.buffer.Write(encoded)
}

func (state *dumpState) writeString(s string) {
	state.scratch = util.AppendJSONString(state.scratch[:0], s, state.options.EnsureASCII)
	state.buffer.Write(state.scratch)
}

func (state *dumpState) writeInt(i int64) {
	state.scratch = strconv.AppendInt(state.scratch[:0], i, 10)
	state.buffer.Write(state.scratch)
}

// writeFloat writes a finite float the way encoding/json does; non-finite values have no JSON
// representation and are resolved through the hooks to keep the document valid
func (state *dumpState) writeFloat(f float64, bits int, original interface{}) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return state.writeFallback(original)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	state.scratch = strconv.AppendFloat(state.scratch[:0], f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		if n := len(state.scratch); n >= 4 && state.scratch[n-4] == 'e' && state.scratch[n-3] == '-' && state.scratch[n-2] == '0' {
			state.scratch[n-2] = state.scratch[n-1]
			state.scratch = state.scratch[:n-1]
		}
	}
	state.buffer.Write(state.scratch)
	return nil
}

// isValidNumber reports whether s is a valid JSON number literal, per RFC 8259 section 6
// (the same grammar encoding/json enforces for json.Number)
func isValidNumber(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
		if s == "" {
			return false
		}
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case '1' <= s[0] && s[0] <= '9':
		s = s[1:]
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}
	if len(s) >= 2 && s[0] == '.' && '0' <= s[1] && s[1] <= '9' {
		s = s[2:]
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}
	if len(s) >= 2 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if s[0] == '+' || s[0] == '-' {
			s = s[1:]
			if s == "" {
				return false
			}
		}
		for len(s) > 0 && '0' <= s[0] && s[0] <= '9' {
			s = s[1:]
		}
	}
	return s == ""
}

func (state *dumpState) writeNewline() {
	if state.options.Indent == "" {
		return
	}
	state.buffer.WriteByte('\n')
	for i := 0; i < state.depth; i++ {
		state.buffer.WriteString(state.options.Indent)
	}
}
