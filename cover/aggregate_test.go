package cover

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppartarr/songfiler/util/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceMock struct {
	name       string
	candidates []*Candidate
	err        error
	hang       bool
	closed     *int32
}

func (mock sourceMock) Name() string {
	return mock.name
}

func (mock sourceMock) Search(ctx context.Context, _, _ string) ([]*Candidate, error) {
	if mock.hang {
		time.Sleep(time.Second)
	}
	return mock.candidates, mock.err
}

func (mock sourceMock) Close() error {
	atomic.AddInt32(mock.closed, 1)
	if mock.name == "broken" {
		return errors.New("already closed")
	}
	return nil
}

func TestAggregatorSearch(t *testing.T) {
	var (
		closed  int32
		healthy = candidate(600, 600)
		other   = candidate(1000, 1000)
	)
	aggregator := NewAggregator(50*time.Millisecond,
		sourceMock{name: "healthy", candidates: []*Candidate{healthy}, closed: &closed},
		sourceMock{name: "broken", err: errors.New("HTTP 500"), closed: &closed},
		sourceMock{name: "hanging", candidates: []*Candidate{candidate(3000, 3000)}, hang: true, closed: &closed},
		sourceMock{name: "other", candidates: []*Candidate{other}, closed: &closed},
	)

	start := time.Now()
	candidates, err := aggregator.Search(context.Background(), "Album", "Artist")
	require.Nil(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
	assert.Equal(t, []*Candidate{healthy, other}, candidates)
	assert.Equal(t, int32(4), atomic.LoadInt32(&closed))
}

func TestAggregatorRefusedCredentials(t *testing.T) {
	var closed int32
	aggregator := NewAggregator(50*time.Millisecond,
		sourceMock{name: "healthy", candidates: []*Candidate{candidate(600, 600)}, closed: &closed},
		sourceMock{name: "genius", err: fmt.Errorf("%w: HTTP 401", web.ErrCredentials), closed: &closed},
	)

	candidates, err := aggregator.Search(context.Background(), "Album", "Artist")
	assert.ErrorIs(t, err, web.ErrCredentials)
	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, "genius", sourceErr.Source)
	assert.Empty(t, candidates)
	assert.Equal(t, int32(2), atomic.LoadInt32(&closed))
}

func TestAggregatorNoSources(t *testing.T) {
	candidates, err := NewAggregator(0).Search(context.Background(), "Album", "Artist")
	assert.Nil(t, err)
	assert.Empty(t, candidates)
}
