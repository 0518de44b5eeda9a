package jsonformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/relex/logjson/base"
	"github.com/relex/logjson/defs"
	"github.com/relex/logjson/util"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Config defines the JSON output settings of a Formatter
//
// The data fields support YAML unmarshalling; the function fields can only be injected in code.
// Start from DefaultConfig() when building a Config programmatically, as the zero value disables
// ASCII escaping.
type Config struct {
	Indent      IndentSpec        `yaml:"indent"`      // pretty-printing, unset for single-line output
	EnsureASCII bool              `yaml:"ensureAscii"` // escape non-ASCII characters as \uXXXX sequences, default true
	TimeLayout  string            `yaml:"timeLayout"`  // layout for temporal values, default time.RFC3339Nano
	BufferSize  datasize.ByteSize `yaml:"bufferSize"`  // initial capacity of the output buffer per document

	Default    base.DefaultFunc  `yaml:"-"` // fallback hook for unrepresentable values; setting it alone bypasses the built-in chain entirely
	Encoder    base.ValueEncoder `yaml:"-"` // full replacement of the built-in encoder chain
	Serializer base.DumpFunc     `yaml:"-"` // top-level record-to-JSON routine, nil for the built-in Dump
}

// DefaultConfig returns the settings used when nothing is specified: compact ASCII-safe output
func DefaultConfig() Config {
	return Config{
		EnsureASCII: true,
		TimeLayout:  time.RFC3339Nano,
		BufferSize:  datasize.ByteSize(defs.SerializerBufferBytes),
	}
}

// configKeys lists the keys accepted in YAML; unknown keys must be rejected here because
// Decoder.KnownFields doesn't reach inside custom unmarshalers
var configKeys = []string{"indent", "ensureAscii", "timeLayout", "bufferSize"}

// UnmarshalYAML applies the defaults before decoding, so absent keys keep their default values
func (cfg *Config) UnmarshalYAML(node *yaml.Node) error {
	*cfg = DefaultConfig()
	if node.Kind != yaml.MappingNode {
		return util.NewYamlError(node, "must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if key := node.Content[i].Value; slices.Index(configKeys, key) == -1 {
			return util.NewYamlError(node.Content[i], fmt.Sprintf("unknown key '%s'", key))
		}
	}
	type rawConfig Config // drop methods to avoid recursion
	return node.Decode((*rawConfig)(cfg))
}

// VerifyConfig verifies the configuration
func (cfg *Config) VerifyConfig() error {
	if cfg.BufferSize.Bytes() > uint64(defs.SerializerMaxBufferBytes) {
		return fmt.Errorf(".bufferSize: %s exceeds the %s limit",
			cfg.BufferSize.HumanReadable(), datasize.ByteSize(defs.SerializerMaxBufferBytes).HumanReadable())
	}
	if cfg.TimeLayout == "" && cfg.Encoder == nil && cfg.Default == nil {
		return fmt.Errorf(".timeLayout is unspecified")
	}
	return nil
}

// LoadConfigFile loads Formatter settings from a YAML file, rejecting unknown keys
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := util.UnmarshalYamlFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config file '%s': %w", path, err)
	}
	return cfg, cfg.VerifyConfig()
}

// IndentSpec selects pretty-printing: none, a width in spaces, or a literal indent string
type IndentSpec struct {
	value string
}

// IndentWidth creates an IndentSpec of the given number of spaces per level, none if width <= 0
func IndentWidth(width int) IndentSpec {
	if width <= 0 {
		return IndentSpec{}
	}
	return IndentSpec{value: strings.Repeat(" ", width)}
}

// IndentText creates an IndentSpec using the given text as one level of indentation
func IndentText(text string) IndentSpec {
	return IndentSpec{value: text}
}

// Value returns one level of indentation, empty for single-line output
func (spec IndentSpec) Value() string {
	return spec.value
}

// UnmarshalYAML accepts either an integer width or a literal indent string
func (spec *IndentSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return util.NewYamlError(node, "must be an integer width or a string")
	}
	if node.Tag == "!!int" {
		width, err := strconv.Atoi(node.Value)
		if err != nil {
			return util.NewYamlError(node, err.Error())
		}
		if width < 0 {
			return util.NewYamlError(node, "indent width cannot be negative")
		}
		*spec = IndentWidth(width)
		return nil
	}
	var text string
	if err := node.Decode(&text); err != nil {
		return util.NewYamlError(node, err.Error())
	}
	*spec = IndentText(text)
	return nil
}

// MarshalYAML exports the literal indent text. The result is not reversible to a width.
func (spec IndentSpec) MarshalYAML() (interface{}, error) {
	return spec.value, nil
}

