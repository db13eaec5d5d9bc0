package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	rankStartedTotal   atomic.Uint64
	rankCompletedTotal atomic.Uint64
	rankFailedTotal    atomic.Uint64
	resumesScoredTotal atomic.Uint64

	rankDuration  = newHistogram([]float64{250, 500, 1000, 2500, 5000, 10000, 30000, 60000, 120000})
	scoreDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncRankStarted increments the started counter for rank runs.
func IncRankStarted() {
	rankStartedTotal.Add(1)
}

// IncRankCompleted increments the completed counter for rank runs.
func IncRankCompleted() {
	rankCompletedTotal.Add(1)
}

// IncRankFailed increments the failed counter for rank runs.
func IncRankFailed() {
	rankFailedTotal.Add(1)
}

// AddResumesScored adds to the total number of resumes scored.
func AddResumesScored(n int) {
	if n > 0 {
		resumesScoredTotal.Add(uint64(n))
	}
}

// ObserveRankDurationMs records a whole rank run duration in milliseconds.
func ObserveRankDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	rankDuration.Observe(value)
}

// ObserveScoreDurationMs records a single scoring call duration in milliseconds.
func ObserveScoreDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scoreDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "rank_runs_started_total", "Total rank runs started", rankStartedTotal.Load())
	writeCounter(&buf, "rank_runs_completed_total", "Total rank runs completed", rankCompletedTotal.Load())
	writeCounter(&buf, "rank_runs_failed_total", "Total rank runs failed", rankFailedTotal.Load())
	writeCounter(&buf, "resumes_scored_total", "Total resumes scored across rank runs", resumesScoredTotal.Load())
	writeHistogram(&buf, "rank_run_duration_ms", "Rank run duration in milliseconds", rankDuration.Snapshot())
	writeHistogram(&buf, "resume_score_duration_ms", "Single resume scoring duration in milliseconds", scoreDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
