package summarize_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// recordingSummarizer returns "<n>" for the n-th call (1-based, in call order) unless fn is set.
type recordingSummarizer struct {
	mu     sync.Mutex
	inputs []string
	fn     func(call int, text string) (string, error)
}

func (s *recordingSummarizer) Summarize(_ context.Context, text string) (string, error) {
	s.mu.Lock()
	s.inputs = append(s.inputs, text)
	call := len(s.inputs)
	s.mu.Unlock()

	if s.fn != nil {
		return s.fn(call, text)
	}
	return fmt.Sprintf("<%d>", call), nil
}

func (s *recordingSummarizer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inputs)
}

func (s *recordingSummarizer) Inputs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.inputs...)
}

// firstRuneSummarizer is deterministic and order sensitive: it returns the first rune of
// its input, so joined chunk summaries spell the chunk order.
type firstRuneSummarizer struct {
	recordingSummarizer
}

func newFirstRuneSummarizer() *firstRuneSummarizer {
	s := &firstRuneSummarizer{}
	s.fn = func(_ int, text string) (string, error) {
		if text == "" {
			return "", nil
		}
		return string([]rune(text)[:1]), nil
	}
	return s
}

type stubFetcher struct {
	text  string
	err   error
	calls int
}

func (f *stubFetcher) FetchContent(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

type memoryCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, summary string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = summary
	return nil
}

var errBackend = errors.New("backend unavailable")

// letters returns n runes cycling through a-z.
func letters(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	return b.String()
}
