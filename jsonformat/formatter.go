package jsonformat

import (
	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/logjson/base"
	"github.com/relex/logjson/defs"
)

// Formatter serializes log records into JSON documents (implements base.RecordSerializer)
//
// Configuration is captured and validated once at construction; SerializeRecord holds no
// mutable state of its own and is safe for concurrent use, as long as any caller-supplied
// hooks are too.
type Formatter struct {
	logger    logger.Logger
	serialize base.DumpFunc
	options   base.DumpOptions
	metrics   *formatterMetrics
}

// MustNewFormatter creates a Formatter or panics
func MustNewFormatter(parentLogger logger.Logger, config Config, metricCreator promreg.MetricCreator) *Formatter {
	formatter, err := NewFormatter(parentLogger, config, metricCreator)
	if err != nil {
		logger.Panic("failed to create JSON formatter: ", err)
	}
	return formatter
}

// NewFormatter creates a Formatter with the given output settings and fallback hooks.
//
// If neither config.Encoder nor config.Default is supplied, the built-in encoder chain is
// installed and serialization is total: no field value can fail it. If either is supplied,
// it alone decides how unrepresentable values are encoded; in particular a Default given by
// itself forgoes the temporal/stacktrace/error special-casing of the built-in chain. When
// both are supplied, the Encoder is consulted first and the Default only sees the values the
// Encoder declines. The two paths are never merged.
func NewFormatter(parentLogger logger.Logger, config Config, metricCreator promreg.MetricCreator) (*Formatter, error) {
	if err := config.VerifyConfig(); err != nil {
		return nil, err
	}
	metrics := newFormatterMetrics(metricCreator)

	options := base.DumpOptions{
		Encoder:     config.Encoder,
		Default:     config.Default,
		Indent:      config.Indent.Value(),
		EnsureASCII: config.EnsureASCII,
		BufferSize:  int(config.BufferSize.Bytes()),
	}
	if options.Encoder == nil && options.Default == nil {
		options.Encoder = NewValueEncoder(NewTemporalFormatter(config.TimeLayout))
	}
	if options.Encoder != nil {
		options.Encoder = metrics.observeEncoder(options.Encoder)
	}
	if options.Default != nil {
		options.Default = metrics.observeDefault(options.Default)
	}

	serialize := config.Serializer
	if serialize == nil {
		serialize = Dump
	}

	return &Formatter{
		logger:    parentLogger.WithField(defs.LabelComponent, "JSONFormatter"),
		serialize: serialize,
		options:   options,
		metrics:   metrics,
	}, nil
}

// SerializeRecord serializes the given log record into one JSON document without trailing newline
//
// An error can only come from a caller-supplied hook or serializer function declining a value;
// with the default configuration the call always succeeds regardless of field value content.
func (formatter *Formatter) SerializeRecord(record *base.Record) ([]byte, error) {
	document, err := formatter.serialize(record, formatter.options)
	if err != nil {
		return nil, err
	}
	formatter.metrics.onRecord(len(document))
	return document, nil
}
