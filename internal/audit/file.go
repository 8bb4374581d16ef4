package audit

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// writeOptions pins the timestamp encoding so the file stays readable by
// plain encoding/json consumers.
var writeOptions = ojg.Options{
	UseTags:    true,
	TimeFormat: time.RFC3339Nano,
}

// FileSink appends entries to a JSON-lines file, one compact object per
// line. Appends from concurrent runs are serialized by the sink.
type FileSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *bufio.Writer
}

// NewFileSink opens (or creates) the audit file in append mode.
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file %s: %w", path, err)
	}
	return &FileSink{
		path:   path,
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (s *FileSink) Name() string {
	return "file:" + s.path
}

func (s *FileSink) Append(entry Entry) error {
	line, err := oj.Marshal(entry, &writeOptions)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(line); err != nil {
		return err
	}
	return s.writer.WriteByte('\n')
}

func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.Flush()
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writer.Flush(); err != nil {
		return err
	}
	return s.file.Close()
}
