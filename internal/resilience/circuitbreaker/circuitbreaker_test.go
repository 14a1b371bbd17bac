package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          100 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

var errBackend = errors.New("backend error")

func fail() (interface{}, error) { return nil, errBackend }

func TestNew(t *testing.T) {
	cb := New(testConfig())

	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestExecute_PassesThroughResults(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) { return "summary", nil })
	require.NoError(t, err)
	assert.Equal(t, "summary", result)

	_, err = cb.Execute(fail)
	assert.Same(t, errBackend, err)
}

func TestExecute_TripsOpen(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(fail)
	}
	_, _ = cb.Execute(func() (interface{}, error) { return "ok", nil })
	assert.Equal(t, gobreaker.StateClosed, cb.State(), "4 failures stay below MinRequests")

	_, _ = cb.Execute(fail)
	require.True(t, cb.IsOpen(), "5 of 6 failed")

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.False(t, called, "open breaker must not run the call")
	assert.ErrorIs(t, err, ErrOpen)
	assert.Contains(t, err.Error(), "test-circuit")
}

func TestExecute_HalfOpenRecovers(t *testing.T) {
	cb := New(testConfig())
	for i := 0; i < 6; i++ {
		_, _ = cb.Execute(fail)
	}
	require.True(t, cb.IsOpen())

	time.Sleep(150 * time.Millisecond)

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.NotEqual(t, gobreaker.StateOpen, cb.State())
}

func TestExecute_CanceledCallsDoNotTrip(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, context.Canceled })
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestExecute_MinRequests(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 9; i++ {
		_, _ = cb.Execute(fail)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestDo(t *testing.T) {
	cb := New(testConfig())

	s, err := Do(cb, func() (string, error) { return "typed", nil })
	require.NoError(t, err)
	assert.Equal(t, "typed", s)

	s, err = Do(cb, func() (string, error) { return "", errBackend })
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, s)
}

func TestPresets(t *testing.T) {
	tests := []struct {
		cfg  Config
		name string
	}{
		{cfg: DefaultConfig("x"), name: "x"},
		{cfg: ContentFetchConfig(), name: "content-fetch"},
		{cfg: SummarizerConfig("huggingface"), name: "huggingface-api"},
		{cfg: SummarizerConfig("claude"), name: "claude-api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cfg.Name)
			assert.Greater(t, tt.cfg.MaxRequests, uint32(0))
			assert.Greater(t, tt.cfg.MinRequests, uint32(0))
			assert.InDelta(t, 0.6, tt.cfg.FailureThreshold, 0.001)
			assert.Positive(t, tt.cfg.Timeout)
		})
	}
}
