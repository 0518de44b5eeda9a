package jsonformat

import (
	"github.com/relex/gotils/promexporter/promext"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/logjson/base"
)

// formatterMetrics counts serialized records and the field values that needed fallback encoding
type formatterMetrics struct {
	serializedRecordsTotal promext.RWCounter
	serializedBytesTotal   promext.RWCounter
	fallbackValuesTotal    promext.RWCounter
	nulledValuesTotal      promext.RWCounter
}

func newFormatterMetrics(metricCreator promreg.MetricCreator) *formatterMetrics {
	return &formatterMetrics{
		serializedRecordsTotal: metricCreator.AddOrGetCounter("serialized_records_total", "Numbers of serialized log records", nil, nil),
		serializedBytesTotal:   metricCreator.AddOrGetCounter("serialized_record_bytes_total", "Total length in bytes of serialized JSON documents", nil, nil),
		fallbackValuesTotal:    metricCreator.AddOrGetCounter("fallback_values_total", "Numbers of field values resolved by a fallback encoder", nil, nil),
		nulledValuesTotal:      metricCreator.AddOrGetCounter("nulled_values_total", "Numbers of field values encoded as null by the last-resort rule", nil, nil),
	}
}

func (metrics *formatterMetrics) onRecord(documentLength int) {
	metrics.serializedRecordsTotal.Inc()
	metrics.serializedBytesTotal.Add(uint64(documentLength))
}

func (metrics *formatterMetrics) onFallback(encoded interface{}) {
	metrics.fallbackValuesTotal.Inc()
	if encoded == nil {
		metrics.nulledValuesTotal.Inc()
	}
}

// observeEncoder wraps a ValueEncoder to count the values it resolves, without touching the hook itself
func (metrics *formatterMetrics) observeEncoder(next base.ValueEncoder) base.ValueEncoder {
	return &countingEncoder{metrics: metrics, next: next}
}

// observeDefault wraps a DefaultFunc the same way
func (metrics *formatterMetrics) observeDefault(next base.DefaultFunc) base.DefaultFunc {
	return func(value interface{}) (interface{}, bool) {
		encoded, ok := next(value)
		if ok {
			metrics.onFallback(encoded)
		}
		return encoded, ok
	}
}

type countingEncoder struct {
	metrics *formatterMetrics
	next    base.ValueEncoder
}

func (encoder *countingEncoder) EncodeValue(value interface{}) (interface{}, bool) {
	encoded, ok := encoder.next.EncodeValue(value)
	if ok {
		encoder.metrics.onFallback(encoded)
	}
	return encoded, ok
}
