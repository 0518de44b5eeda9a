package defs

var (
	// SerializerBufferBytes defines the default initial capacity of the output buffer for one JSON document
	//
	// Large enough for typical single-line log records; the buffer grows on demand beyond this
	SerializerBufferBytes = 4 * 1024

	// SerializerMaxBufferBytes defines the upper limit accepted for a configured initial buffer capacity
	//
	// The value guards against misconfiguration (e.g. a size meant to be in KB given in GB),
	// not against output growth at runtime
	SerializerMaxBufferBytes = 1 * 1024 * 1024 * 1024

	// StacktraceMaxFrames defines how many call frames are captured for one Stacktrace value
	StacktraceMaxFrames = 64
)
