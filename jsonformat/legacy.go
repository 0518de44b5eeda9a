package jsonformat

import (
	"fmt"

	"github.com/relex/gotils/logger"
	"github.com/relex/logjson/defs"
)

// LegacyAttr resolves exported names that used to live in this package before they were moved
//
// Accessing a legacy name emits a deprecation warning and forwards to the current location.
//
// Deprecated: read the values from their current packages instead.
func LegacyAttr(name string) (interface{}, error) {
	switch name {
	case "ReservedFields":
		logger.Warnf("jsonformat.ReservedFields has been moved to defs.ReservedFields")
		return defs.ReservedFields, nil
	}
	return nil, fmt.Errorf("package jsonformat has no attribute '%s'", name)
}
