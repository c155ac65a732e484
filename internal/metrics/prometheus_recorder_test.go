package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prom.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metric
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return 0
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("scan", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("scan", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.IncDocumentsScanned(true)
	pr.IncDocumentsScanned(true)
	pr.IncDocumentsScanned(false)
	pr.SetTagCount("tags", 4)
	pr.IncPagesGenerated("tags")

	require.InDelta(t, 2, gatherValue(t, reg, "doctags_documents_scanned_total", map[string]string{"metadata": "true"}), 0)
	require.InDelta(t, 1, gatherValue(t, reg, "doctags_documents_scanned_total", map[string]string{"metadata": "false"}), 0)
	require.InDelta(t, 4, gatherValue(t, reg, "doctags_tags", map[string]string{"category": "tags"}), 0)
	require.InDelta(t, 1, gatherValue(t, reg, "doctags_pages_generated_total", map[string]string{"category": "tags"}), 0)
	require.InDelta(t, 1, gatherValue(t, reg, "doctags_stage_duration_seconds", map[string]string{"stage": "scan"}), 0)
	require.InDelta(t, 1, gatherValue(t, reg, "doctags_build_outcomes_total", map[string]string{"outcome": "success"}), 0)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncPagesGenerated("tags")
	pr.ObserveBuildDuration(time.Second)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncPagesGenerated("authors")

	path := filepath.Join(t.TempDir(), "doctags.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `doctags_pages_generated_total{category="authors"} 1`)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncBuildOutcome(BuildOutcomeFailed)
	r.SetTagCount("tags", 1)
}
