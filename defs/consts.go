package defs

// Common labels for logging
const (
	LabelComponent = "component"
	LabelName      = "name"
)

// ReservedFields lists the record field names populated by the logging pipeline itself,
// as opposed to custom fields attached by application code
//
// The list is meant for upstream collaborators which assemble records and select fields;
// the serialization core itself never inspects field names.
var ReservedFields = []string{
	"time",
	"timestamp",
	"level",
	"levelno",
	"logger",
	"msg",
	"message",
	"caller",
	"file",
	"line",
	"func",
	"pid",
	"goroutine",
	"stacktrace",
	"error",
}
