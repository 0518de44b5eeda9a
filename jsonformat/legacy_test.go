package jsonformat

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/relex/gotils/logger"
	"github.com/relex/logjson/defs"
	"github.com/stretchr/testify/assert"
)

func TestLegacyAttrReservedFields(t *testing.T) {
	value, err := LegacyAttr("ReservedFields")
	assert.Nil(t, err)
	assert.Equal(t, defs.ReservedFields, value)
}

func TestLegacyAttrWarnsPerAccess(t *testing.T) {
	output := &bytes.Buffer{}
	logger.SetOutput(output)
	defer logger.SetOutput(os.Stderr)

	_, err := LegacyAttr("ReservedFields")
	assert.Nil(t, err)
	_, err = LegacyAttr("ReservedFields")
	assert.Nil(t, err)

	warning := "jsonformat.ReservedFields has been moved to defs.ReservedFields"
	assert.Equal(t, 2, strings.Count(output.String(), warning))
}

func TestLegacyAttrUnknown(t *testing.T) {
	_, err := LegacyAttr("JsonEncoder")
	assert.ErrorContains(t, err, "no attribute 'JsonEncoder'")
}
