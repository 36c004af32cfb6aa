package post

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives scraped posts one at a time.
type Sink interface {
	Write(Post) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Post) error

// Write calls f.
func (f SinkFunc) Write(p Post) error { return f(p) }

// TextSink writes one post per line to a file.
type TextSink struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
	n  int
}

// CreateText opens path for writing. The file is truncated unless appendTo is
// set.
func CreateText(path string, appendTo bool) (*TextSink, error) {
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendTo {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return &TextSink{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends the post's text as a single line.
func (s *TextSink) Write(p Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.WriteString(Line(p.Text) + "\n"); err != nil {
		return err
	}
	s.n++
	return nil
}

// Count returns how many lines were written.
func (s *TextSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Close flushes and closes the file.
func (s *TextSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}

// ConsoleSink prints every post to an io.Writer, usually stdout.
type ConsoleSink struct {
	W io.Writer
}

// Write prints the raw text.
func (s ConsoleSink) Write(p Post) error {
	_, err := fmt.Fprintf(s.W, "Tweet text: %s\n", p.Text)
	return err
}
