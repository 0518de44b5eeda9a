package jsonformat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestConfigDefaults(t *testing.T) {
	config := Config{}
	assert.Nil(t, yaml.Unmarshal([]byte(`{}`), &config))
	assert.Equal(t, "", config.Indent.Value())
	assert.True(t, config.EnsureASCII)
	assert.Equal(t, time.RFC3339Nano, config.TimeLayout)
	assert.Equal(t, datasize.ByteSize(4096), config.BufferSize)
	assert.Nil(t, config.VerifyConfig())
}

func TestConfigUnmarshal(t *testing.T) {
	config := Config{}
	assert.Nil(t, yaml.Unmarshal([]byte(`
indent: 2
ensureAscii: false
timeLayout: "2006-01-02 15:04:05"
bufferSize: 65536
`), &config))
	assert.Equal(t, "  ", config.Indent.Value())
	assert.False(t, config.EnsureASCII)
	assert.Equal(t, "2006-01-02 15:04:05", config.TimeLayout)
	assert.Equal(t, datasize.ByteSize(65536), config.BufferSize)
}

func TestConfigIndentText(t *testing.T) {
	config := Config{}
	assert.Nil(t, yaml.Unmarshal([]byte(`indent: "\t"`), &config))
	assert.Equal(t, "\t", config.Indent.Value())
}

func TestConfigIndentZero(t *testing.T) {
	config := Config{}
	assert.Nil(t, yaml.Unmarshal([]byte(`indent: 0`), &config))
	assert.Equal(t, "", config.Indent.Value())
}

func TestConfigIndentNegative(t *testing.T) {
	config := Config{}
	err := yaml.Unmarshal([]byte(`indent: -2`), &config)
	assert.ErrorContains(t, err, "indent width cannot be negative")
}

func TestConfigUnknownKey(t *testing.T) {
	config := Config{}
	err := yaml.Unmarshal([]byte(`ident: 2`), &config)
	assert.ErrorContains(t, err, "unknown key 'ident'")
}

func TestConfigNotMapping(t *testing.T) {
	config := Config{}
	err := yaml.Unmarshal([]byte(`[1, 2]`), &config)
	assert.ErrorContains(t, err, "must be a mapping")
}

func TestVerifyConfigBufferLimit(t *testing.T) {
	config := DefaultConfig()
	config.BufferSize = 2 * datasize.GB
	assert.ErrorContains(t, config.VerifyConfig(), ".bufferSize")
}

func TestVerifyConfigTimeLayout(t *testing.T) {
	config := DefaultConfig()
	config.TimeLayout = ""
	assert.ErrorContains(t, config.VerifyConfig(), ".timeLayout is unspecified")

	// a custom hook takes over temporal rendering, no layout needed
	config.Default = func(value interface{}) (interface{}, bool) { return nil, false }
	assert.Nil(t, config.VerifyConfig())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatter.yml")
	assert.Nil(t, os.WriteFile(path, []byte(`
indent: 4
timeLayout: "2006-01-02"
`), 0o644))

	config, err := LoadConfigFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "    ", config.Indent.Value())
	assert.Equal(t, "2006-01-02", config.TimeLayout)
	assert.True(t, config.EnsureASCII)
}

func TestLoadConfigFileBadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formatter.yml")
	assert.Nil(t, os.WriteFile(path, []byte(`ensureAscii: false
bufferSizes: 1024
`), 0o644))

	_, err := LoadConfigFile(path)
	assert.ErrorContains(t, err, "bufferSizes")
}

func TestConfigRoundTrip(t *testing.T) {
	in := DefaultConfig()
	in.Indent = IndentWidth(2)
	in.EnsureASCII = false

	text, err := yaml.Marshal(&in)
	assert.Nil(t, err)

	out := Config{}
	assert.Nil(t, yaml.Unmarshal(text, &out))
	assert.Equal(t, in.Indent.Value(), out.Indent.Value())
	assert.Equal(t, in.EnsureASCII, out.EnsureASCII)
	assert.Equal(t, in.TimeLayout, out.TimeLayout)
	assert.Equal(t, in.BufferSize, out.BufferSize)
}
