// Package provider looks for the videos an audio track can be extracted from
// and ranks them by how likely they are the studio version of the song.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/arunsworld/nursery"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/sirupsen/logrus"
)

// Searcher returns the raw hits a backend finds for a query
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]RawHit, error)
}

// SearchError is returned when no searcher could run its query,
// or as soon as one of them had its credentials refused
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("cannot search videos for %s: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

type Provider struct {
	searchers      []Searcher
	words          Words
	preferExplicit bool
}

func New(words Words, preferExplicit bool, searchers ...Searcher) *Provider {
	return &Provider{
		searchers:      searchers,
		words:          words,
		preferExplicit: preferExplicit,
	}
}

// Search returns the ranked URLs of the videos matching the song
func (provider *Provider) Search(ctx context.Context, artist, title string) ([]string, error) {
	query := fmt.Sprintf("%s %s audio", artist, title)
	hits, err := provider.query(ctx, query)
	if err != nil {
		return nil, err
	}
	return Rank(provider.words.Context(artist, title, provider.preferExplicit), hits), nil
}

func (provider *Provider) query(ctx context.Context, query string) ([]RawHit, error) {
	var (
		results = make([][]RawHit, len(provider.searchers))
		errs    = make([]error, len(provider.searchers))
		jobs    = make([]nursery.ConcurrentJob, len(provider.searchers))
	)
	for i, searcher := range provider.searchers {
		i, searcher := i, searcher
		jobs[i] = func(ctx context.Context, _ chan error) {
			results[i], errs[i] = searcher.Search(ctx, query)
		}
	}
	if err := nursery.RunConcurrentlyWithContext(ctx, jobs...); err != nil {
		return nil, err
	}

	var (
		hits    []RawHit
		seen    = make(map[string]bool)
		lastErr error
		failed  int
	)
	for i, searcher := range provider.searchers {
		if errors.Is(errs[i], web.ErrCredentials) {
			return nil, &SearchError{Query: query, Err: errs[i]}
		}
		if errs[i] != nil {
			logrus.WithError(errs[i]).WithField("searcher", searcher.Name()).Warn("video search failed")
			lastErr = errs[i]
			failed++
			continue
		}
		for _, hit := range results[i] {
			if hit.ID == "" || seen[hit.ID] {
				continue
			}
			seen[hit.ID] = true
			hits = append(hits, hit)
		}
	}
	if len(provider.searchers) > 0 && failed == len(provider.searchers) {
		return nil, &SearchError{Query: query, Err: lastErr}
	}
	return hits, nil
}
