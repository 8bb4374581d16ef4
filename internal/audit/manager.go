package audit

import (
	"sync"

	"github.com/HdrHistogram/hdrhistogram-go"

	"yqhp/pay-engine/pkg/logger"
)

// Manager fans every entry out to all registered sinks and keeps per-stage
// duration histograms. Safe for concurrent use by multiple runs.
type Manager struct {
	mu         sync.Mutex
	sinks      []Sink
	histograms map[string]*hdrhistogram.Histogram
}

// NewManager 创建审计管理器
func NewManager(sinks ...Sink) *Manager {
	return &Manager{
		sinks:      sinks,
		histograms: make(map[string]*hdrhistogram.Histogram),
	}
}

// AddSink registers an additional sink.
func (m *Manager) AddSink(sink Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, sink)
}

// Record appends one entry to every sink. A failing sink is logged to the
// side channel and skipped; the caller never sees the failure.
func (m *Manager) Record(entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observe(entry)
	for _, sink := range m.sinks {
		if err := sink.Append(entry); err != nil {
			logger.Error("audit sink %s append failed: %v", sink.Name(), err)
		}
	}
}

// observe updates the duration histogram for the entry's stage.
func (m *Manager) observe(entry Entry) {
	h, ok := m.histograms[entry.Stage]
	if !ok {
		// 1ms..10min range, 3 significant digits
		h = hdrhistogram.New(1, 600_000, 3)
		m.histograms[entry.Stage] = h
	}
	ms := entry.DurationMS
	if ms < 1 {
		ms = 1
	}
	if err := h.RecordValue(ms); err != nil {
		logger.Debug("audit histogram record failed for stage %s: %v", entry.Stage, err)
	}
}

// StageTiming is a snapshot of one stage's duration distribution.
type StageTiming struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
	MinMS int64  `json:"min_ms"`
	MaxMS int64  `json:"max_ms"`
	P50MS int64  `json:"p50_ms"`
	P95MS int64  `json:"p95_ms"`
	P99MS int64  `json:"p99_ms"`
}

// StageTimings returns the current per-stage duration snapshots.
func (m *Manager) StageTimings() []StageTiming {
	m.mu.Lock()
	defer m.mu.Unlock()

	timings := make([]StageTiming, 0, len(m.histograms))
	for stage, h := range m.histograms {
		timings = append(timings, StageTiming{
			Stage: stage,
			Count: h.TotalCount(),
			MinMS: h.Min(),
			MaxMS: h.Max(),
			P50MS: h.ValueAtQuantile(50),
			P95MS: h.ValueAtQuantile(95),
			P99MS: h.ValueAtQuantile(99),
		})
	}
	return timings
}

// Flush flushes every sink.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sink := range m.sinks {
		if err := sink.Flush(); err != nil {
			logger.Error("audit sink %s flush failed: %v", sink.Name(), err)
		}
	}
}

// Close flushes and closes every sink.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sink := range m.sinks {
		if err := sink.Close(); err != nil {
			logger.Error("audit sink %s close failed: %v", sink.Name(), err)
		}
	}
}
