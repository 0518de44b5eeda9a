package util

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/relex/gotils/logger"
)

// SumMetricValues sums all the values of a given Prometheus Collector (GaugeVec or CounterVec)
//
// For testing only
func SumMetricValues(collector prometheus.Collector) float64 {
	var (
		metricList    = make([]prometheus.Metric, 0, 100)
		metricChannel = make(chan prometheus.Metric)
		done          = make(chan struct{})
	)
	go func() {
		for metric := range metricChannel {
			metricList = append(metricList, metric)
		}
		close(done)
	}()
	collector.Collect(metricChannel)
	close(metricChannel)
	<-done

	sum := 0.0
	for _, metric := range metricList {
		pb := &dto.Metric{}
		if err := metric.Write(pb); err != nil {
			logger.Errorf("failed to read metric '%s': %s", metric.Desc(), err.Error())
			continue
		}
		switch {
		case pb.Counter != nil:
			sum += pb.Counter.GetValue()
		case pb.Gauge != nil:
			sum += pb.Gauge.GetValue()
		case pb.Untyped != nil:
			sum += pb.Untyped.GetValue()
		}
	}
	return sum
}
