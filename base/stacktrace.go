package base

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/relex/logjson/defs"
)

// Stacktrace is a captured call stack attached to a log record as a field value
//
// The value encoder chain renders it as the formatted multi-line trace text.
type Stacktrace []uintptr

// CaptureStacktrace captures the call stack of the current goroutine
//
// skip is the number of callers to omit on top of CaptureStacktrace itself, zero for the immediate caller.
func CaptureStacktrace(skip int) Stacktrace {
	counters := make([]uintptr, defs.StacktraceMaxFrames)
	numFrames := runtime.Callers(skip+2, counters) // +2 to hide runtime.Callers and CaptureStacktrace
	return Stacktrace(counters[:numFrames])
}

// Format renders the trace as human-readable multi-line text, one "function\n\tfile:line" pair
// per frame in the style of runtime/debug.Stack, with surrounding whitespace trimmed
func (trace Stacktrace) Format() string {
	if len(trace) == 0 {
		return ""
	}
	builder := &strings.Builder{}
	frames := runtime.CallersFrames(trace)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(builder, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return strings.TrimSpace(builder.String())
}

func (trace Stacktrace) String() string {
	return trace.Format()
}
