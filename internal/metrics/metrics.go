package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cardioserve/internal/artifact"
)

// Prediction outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
	OutcomeRejected    = "rejected"
)

var (
	artifactLoadedDesc = prometheus.NewDesc(
		"cardioserve_artifact_loaded",
		"Whether each deployment artifact was loaded from disk (1) or defaulted/absent (0)",
		[]string{"artifact"},
		nil,
	)
	modelStrategyDesc = prometheus.NewDesc(
		"cardioserve_model_load_strategy_info",
		"Strategy that loaded the model artifact",
		[]string{"strategy"},
		nil,
	)
	classCountDesc = prometheus.NewDesc(
		"cardioserve_classes",
		"Number of classes in the served class list",
		nil,
		nil,
	)
)

// BundleCollector is a custom Prometheus collector that reports the loaded
// bundle's state on each scrape.
type BundleCollector struct {
	bundle *artifact.Bundle
}

// Describe sends the metric descriptors to the channel.
func (c *BundleCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- artifactLoadedDesc
	ch <- modelStrategyDesc
	ch <- classCountDesc
}

// Collect emits the bundle state as gauges.
func (c *BundleCollector) Collect(ch chan<- prometheus.Metric) {
	b := c.bundle
	ch <- prometheus.MustNewConstMetric(artifactLoadedDesc, prometheus.GaugeValue, boolValue(b.ModelLoaded()), "model")
	ch <- prometheus.MustNewConstMetric(artifactLoadedDesc, prometheus.GaugeValue, boolValue(b.FeaturesFromFile), "features")
	ch <- prometheus.MustNewConstMetric(artifactLoadedDesc, prometheus.GaugeValue, boolValue(b.ClassesFromFile), "classes")
	if b.Strategy != "" {
		ch <- prometheus.MustNewConstMetric(modelStrategyDesc, prometheus.GaugeValue, 1, b.Strategy)
	}
	ch <- prometheus.MustNewConstMetric(classCountDesc, prometheus.GaugeValue, float64(len(b.Classes)))
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// Recorder holds the request-path instruments.
type Recorder struct {
	predictions *prometheus.CounterVec
	latency     prometheus.Histogram
	cacheHits   prometheus.Counter
	canaryOK    prometheus.Gauge
	canaryRuns  *prometheus.CounterVec
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the bundle collector and the request instruments with reg.
// Must be called once at startup; later calls are no-ops.
func Init(reg prometheus.Registerer, bundle *artifact.Bundle) {
	recorderOnce.Do(func() {
		r := &Recorder{
			predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "cardioserve_predictions_total",
				Help: "Prediction requests by outcome and predicted label",
			}, []string{"outcome", "label"}),
			latency: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "cardioserve_inference_duration_seconds",
				Help:    "Time spent in model inference",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			}),
			cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "cardioserve_prediction_cache_hits_total",
				Help: "Predictions served from the in-memory result cache",
			}),
			canaryOK: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "cardioserve_canary_ok",
				Help: "Whether the last canary prediction succeeded",
			}),
			canaryRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "cardioserve_canary_runs_total",
				Help: "Canary prediction runs by result",
			}, []string{"result"}),
		}
		reg.MustRegister(&BundleCollector{bundle: bundle}, r.predictions, r.latency, r.cacheHits, r.canaryOK, r.canaryRuns)
		recorder = r
	})
}

// RecordPrediction counts one prediction outcome.
func RecordPrediction(outcome, label string) {
	if recorder == nil {
		return
	}
	recorder.predictions.WithLabelValues(outcome, label).Inc()
}

// ObserveInference records how long one model invocation took.
func ObserveInference(d time.Duration) {
	if recorder == nil {
		return
	}
	recorder.latency.Observe(d.Seconds())
}

// RecordCacheHit counts a prediction served from the cache.
func RecordCacheHit() {
	if recorder == nil {
		return
	}
	recorder.cacheHits.Inc()
}

// RecordCanary records the result of one canary run.
func RecordCanary(ok bool) {
	if recorder == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	recorder.canaryOK.Set(boolValue(ok))
	recorder.canaryRuns.WithLabelValues(result).Inc()
}
