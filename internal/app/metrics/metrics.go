// Package metrics counts pipeline work in a private Prometheus registry that
// can be written out in the node-exporter textfile format after a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "memo2vec"

// Outcomes used as the "outcome" label.
const (
	OutcomeWritten = "written"
	OutcomeExists  = "exists"
	OutcomeTooBig  = "too_big"
	OutcomeFailed  = "failed"

	OutcomeEmbedded = "embedded"
	OutcomeSkipped  = "skipped"

	OutcomeNew           = "new"
	OutcomeShortCircuit  = "short_circuited"
	OutcomeAlreadyStored = "already_stored"
)

// Recorder collects counters for both pipelines. All methods accept a nil
// receiver and do nothing.
type Recorder struct {
	registry       *prometheus.Registry
	transcriptions *prometheus.CounterVec
	chunks         *prometheus.CounterVec
	transcripts    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Audio files seen by the transcription pipeline, by outcome.",
		}, []string{"outcome"}),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Chunks seen by the embedding pipeline, by outcome.",
		}, []string{"outcome"}),
		transcripts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_total",
			Help:      "Transcripts seen by the embedding pipeline, by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "service_request_duration_seconds",
			Help:      "Latency of speech-to-text and embedding calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"service"}),
	}
	r.registry.MustRegister(r.transcriptions, r.chunks, r.transcripts, r.latency)
	return r
}

func (r *Recorder) Transcription(outcome string) {
	if r == nil {
		return
	}
	r.transcriptions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Chunk(outcome string) {
	if r == nil {
		return
	}
	r.chunks.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Transcript(outcome string) {
	if r == nil {
		return
	}
	r.transcripts.WithLabelValues(outcome).Inc()
}

// ObserveRequest records the duration of one call to service.
func (r *Recorder) ObserveRequest(service string, d time.Duration) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(service).Observe(d.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteFile writes every metric to path. An empty path does nothing.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
