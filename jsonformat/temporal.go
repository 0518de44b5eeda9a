package jsonformat

import (
	"time"
)

// TemporalFormatter renders date/time values found by the encoder chain
//
// It's a standalone strategy so the time representation can be replaced on its own,
// without redefining the rest of the chain.
type TemporalFormatter interface {
	// FormatTemporal renders t to its textual representation
	FormatTemporal(t time.Time) string
}

// NewTemporalFormatter creates the default TemporalFormatter rendering ISO 8601 text,
// using time.RFC3339Nano if layout is empty
func NewTemporalFormatter(layout string) TemporalFormatter {
	if layout == "" {
		layout = time.RFC3339Nano
	}
	return &temporalFormatter{layout: layout}
}

type temporalFormatter struct {
	layout string
}

func (formatter *temporalFormatter) FormatTemporal(t time.Time) string {
	return t.Format(formatter.layout)
}
