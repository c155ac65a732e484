package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "doctags"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	stageResults   *prom.CounterVec
	buildOutcome   *prom.CounterVec
	documents      *prom.CounterVec
	tags           *prom.GaugeVec
	pagesGenerated *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_scanned_total",
			Help:      "Markdown documents scanned for front matter",
		}, []string{"metadata"}),
		tags: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tags",
			Help:      "Distinct tags found in the last build per category",
		}, []string{"category"}),
		pagesGenerated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_generated_total",
			Help:      "Tag pages written per category",
		}, []string{"category"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.documents, pr.tags, pr.pagesGenerated)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncDocumentsScanned(withMetadata bool) {
	if p == nil {
		return
	}
	p.documents.WithLabelValues(strconv.FormatBool(withMetadata)).Inc()
}

func (p *PrometheusRecorder) SetTagCount(category string, n int) {
	if p == nil {
		return
	}
	p.tags.WithLabelValues(category).Set(float64(n))
}

func (p *PrometheusRecorder) IncPagesGenerated(category string) {
	if p == nil {
		return
	}
	p.pagesGenerated.WithLabelValues(category).Inc()
}
