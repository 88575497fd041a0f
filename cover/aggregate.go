package cover

import (
	"context"
	"errors"
	"time"

	"github.com/arunsworld/nursery"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 30 * time.Second

// Aggregator queries every source at once and merges their candidates
type Aggregator struct {
	sources []Source
	timeout time.Duration
}

func NewAggregator(timeout time.Duration, sources ...Source) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Aggregator{sources, timeout}
}

// Search returns the candidates of every source that answered in time,
// sources are closed once all of them settled. Failing sources only
// contribute no candidate, unless they refused their credentials:
// those failures are returned, joined, with no candidate
func (aggregator *Aggregator) Search(ctx context.Context, album, artist string) ([]*Candidate, error) {
	var (
		results = make([][]*Candidate, len(aggregator.sources))
		refused = make([]error, len(aggregator.sources))
		jobs    = make([]nursery.ConcurrentJob, len(aggregator.sources))
	)
	for i, source := range aggregator.sources {
		i, source := i, source
		jobs[i] = func(ctx context.Context, _ chan error) {
			candidates, err := aggregator.query(ctx, source, album, artist)
			if errors.Is(err, web.ErrCredentials) {
				refused[i] = &SourceError{source.Name(), err}
				return
			}
			if err != nil {
				logrus.WithError(&SourceError{source.Name(), err}).
					WithFields(logrus.Fields{"album": album, "artist": artist}).
					Warn("cover source failed")
				return
			}
			logrus.WithFields(logrus.Fields{"source": source.Name(), "candidates": len(candidates)}).
				Debug("cover source answered")
			results[i] = candidates
		}
	}
	if err := nursery.RunConcurrentlyWithContext(ctx, jobs...); err != nil {
		logrus.WithError(err).Debug("cover search interrupted")
	}

	for _, source := range aggregator.sources {
		if err := source.Close(); err != nil {
			logrus.WithError(&SourceError{source.Name(), err}).Warn("cannot close cover source")
		}
	}

	if err := errors.Join(refused...); err != nil {
		return nil, err
	}

	var candidates []*Candidate
	for _, result := range results {
		candidates = append(candidates, result...)
	}
	return candidates, nil
}

// query runs a single source search, giving up on it once the timeout expires
// even if the source does not honor its context
func (aggregator *Aggregator) query(ctx context.Context, source Source, album, artist string) ([]*Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregator.timeout)
	defer cancel()

	type answer struct {
		candidates []*Candidate
		err        error
	}
	answers := make(chan answer, 1)
	go func() {
		candidates, err := source.Search(ctx, album, artist)
		answers <- answer{candidates, err}
	}()

	select {
	case answer := <-answers:
		return answer.candidates, answer.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
