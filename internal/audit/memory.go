package audit

import "sync"

// MemorySink keeps entries in memory. Used by tests and by the REST layer
// to expose recent entries.
type MemorySink struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemorySink 创建内存审计存储
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Name() string {
	return "memory"
}

func (s *MemorySink) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemorySink) Flush() error {
	return nil
}

func (s *MemorySink) Close() error {
	return nil
}

// Entries returns a copy of all recorded entries in append order.
func (s *MemorySink) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ByExecution returns the entries recorded for one run, in append order.
func (s *MemorySink) ByExecution(executionID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.ExecutionID == executionID {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of recorded entries.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
