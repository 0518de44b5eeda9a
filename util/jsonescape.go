package util

import (
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// AppendJSONString appends the JSON representation of s to buf, including the surrounding quotes
//
// ensureASCII additionally escapes every rune above U+007F as \uXXXX (surrogate pairs beyond
// the basic plane), producing a plain-ASCII document. Invalid UTF-8 bytes become U+FFFD.
func AppendJSONString(buf []byte, s string, ensureASCII bool) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			switch {
			case b == '"':
				buf = append(buf, '\\', '"')
			case b == '\\':
				buf = append(buf, '\\', '\\')
			case b == '\n':
				buf = append(buf, '\\', 'n')
			case b == '\r':
				buf = append(buf, '\\', 'r')
			case b == '\t':
				buf = append(buf, '\\', 't')
			case b < 0x20:
				buf = appendEscapedRune(buf, rune(b))
			default:
				buf = append(buf, b)
			}
			i++
			continue
		}
		decoded, size := utf8.DecodeRuneInString(s[i:])
		if decoded == utf8.RuneError && size == 1 {
			buf = appendEscapedRune(buf, utf8.RuneError)
			i++
			continue
		}
		// U+2028 and U+2029 break JavaScript consumers if emitted literally
		if ensureASCII || decoded == '\u2028' || decoded == '\u2029' {
			buf = appendEscapedRune(buf, decoded)
		} else {
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return append(buf, '"')
}

// EscapeNonASCII rewrites an already-encoded JSON document, escaping every character above
// U+007F as \uXXXX. Non-ASCII bytes can only occur inside JSON strings, so the result stays
// a valid document with identical meaning.
func EscapeNonASCII(data []byte) []byte {
	end := len(data)
	asciiLength := 0
	for asciiLength < end && data[asciiLength] < utf8.RuneSelf {
		asciiLength++
	}
	if asciiLength == end {
		return data
	}

	escaped := make([]byte, 0, end+16)
	escaped = append(escaped, data[:asciiLength]...)
	for i := asciiLength; i < end; {
		if data[i] < utf8.RuneSelf {
			escaped = append(escaped, data[i])
			i++
			continue
		}
		decoded, size := utf8.DecodeRune(data[i:])
		if decoded == utf8.RuneError && size == 1 {
			escaped = appendEscapedRune(escaped, utf8.RuneError)
			i++
			continue
		}
		escaped = appendEscapedRune(escaped, decoded)
		i += size
	}
	return escaped
}

func appendEscapedRune(buf []byte, r rune) []byte {
	if r > 0xFFFF {
		offset := r - 0x10000
		buf = appendHexEscape(buf, 0xD800+(offset>>10))
		return appendHexEscape(buf, 0xDC00+(offset&0x3FF))
	}
	return appendHexEscape(buf, r)
}

func appendHexEscape(buf []byte, r rune) []byte {
	return append(buf, '\\', 'u',
		hexDigits[(r>>12)&0xF], hexDigits[(r>>8)&0xF], hexDigits[(r>>4)&0xF], hexDigits[r&0xF])
}
