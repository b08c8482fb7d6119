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
	requestsTotal      atomic.Uint64
	requestErrorsTotal atomic.Uint64
	rateLimitedTotal   atomic.Uint64
	uploadsStoredTotal atomic.Uint64
	uploadsRejectTotal atomic.Uint64
	loginFailuresTotal atomic.Uint64
	uploadedBytesTotal atomic.Uint64

	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(status int, durationMs float64) {
	requestsTotal.Add(1)
	if status >= http.StatusInternalServerError {
		requestErrorsTotal.Add(1)
	}
	if durationMs < 0 {
		durationMs = 0
	}
	requestDuration.Observe(durationMs)
}

func IncRateLimited() {
	rateLimitedTotal.Add(1)
}

// IncUploadStored counts a file accepted by the ingestion filter and saved.
func IncUploadStored(sizeBytes int64) {
	uploadsStoredTotal.Add(1)
	if sizeBytes > 0 {
		uploadedBytesTotal.Add(uint64(sizeBytes))
	}
}

func IncUploadRejected() {
	uploadsRejectTotal.Add(1)
}

func IncLoginFailed() {
	loginFailuresTotal.Add(1)
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
	writeCounter(&buf, "http_requests_total", "Total HTTP requests served", requestsTotal.Load())
	writeCounter(&buf, "http_request_errors_total", "Total HTTP requests answered with a 5xx status", requestErrorsTotal.Load())
	writeCounter(&buf, "http_rate_limited_total", "Total requests rejected by the rate ceiling", rateLimitedTotal.Load())
	writeCounter(&buf, "uploads_stored_total", "Total uploaded files stored", uploadsStoredTotal.Load())
	writeCounter(&buf, "uploads_rejected_total", "Total uploaded files rejected", uploadsRejectTotal.Load())
	writeCounter(&buf, "uploads_stored_bytes_total", "Total bytes of stored uploads", uploadedBytesTotal.Load())
	writeCounter(&buf, "auth_login_failed_total", "Total failed admin logins", loginFailuresTotal.Load())
	writeHistogram(&buf, "http_request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
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

// Observe stores value in the first bucket that fits; Render accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
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
