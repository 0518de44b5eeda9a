package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendJSONString(t *testing.T) {
	for _, testCase := range []struct {
		name        string
		input       string
		ensureASCII bool
		expected    string
	}{
		{"plain", "hello", false, `"hello"`},
		{"quotes and backslash", `say "hi" \o/`, false, `"say \"hi\" \\o/"`},
		{"newline tab return", "a\nb\tc\rd", false, `"a\nb\tc\rd"`},
		{"control char", "a\x01b", false, `"a\u0001b"`},
		{"utf8 literal", "héllo", false, `"héllo"`},
		{"utf8 escaped", "héllo", true, `"h\u00e9llo"`},
		{"surrogate pair", "ok 🙂", true, `"ok \ud83d\ude42"`},
		{"line separator always escaped", "a\u2028b", false, `"a\u2028b"`},
		{"invalid utf8", "a\xffb", false, `"a\ufffdb"`},
	} {
		t.Run(testCase.name, func(tt *testing.T) {
			encoded := AppendJSONString(nil, testCase.input, testCase.ensureASCII)
			assert.Equal(tt, testCase.expected, string(encoded))
			assert.True(tt, json.Valid(encoded))
		})
	}
}

func TestAppendJSONStringRoundTrip(t *testing.T) {
	input := "mixed: héllo 🙂 \"quoted\"\n"
	for _, ensureASCII := range []bool{false, true} {
		encoded := AppendJSONString(nil, input, ensureASCII)
		var decoded string
		assert.Nil(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, input, decoded)
	}
}

func TestEscapeNonASCII(t *testing.T) {
	assert.Equal(t, `{"a":"\u00e9"}`, string(EscapeNonASCII([]byte(`{"a":"é"}`))))
	assert.Equal(t, `["\ud83d\ude42"]`, string(EscapeNonASCII([]byte(`["🙂"]`))))

	plain := []byte(`{"a":1}`)
	assert.Equal(t, plain, EscapeNonASCII(plain))
}
