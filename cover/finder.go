package cover

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Finder chains aggregation, ranking, download and selection
type Finder struct {
	aggregator *Aggregator
	fetcher    *Fetcher
	target     Target
}

func NewFinder(aggregator *Aggregator, fetcher *Fetcher, target Target) *Finder {
	return &Finder{aggregator, fetcher, target}
}

// Rank returns every candidate worth downloading, best first
func (finder *Finder) Rank(ctx context.Context, album, artist string) ([]*Candidate, error) {
	found, err := finder.aggregator.Search(ctx, album, artist)
	if err != nil {
		return nil, err
	}

	var candidates []*Candidate
	for _, candidate := range found {
		if candidate.Reliable && !finder.target.Accepts(candidate.Width, candidate.Height) {
			continue
		}
		candidates = append(candidates, candidate)
	}
	Sort(candidates, finder.target)
	return candidates, nil
}

// Find returns the cover for the album, nil if none was found
func (finder *Finder) Find(ctx context.Context, album, artist string) (*Candidate, error) {
	candidates, err := finder.Rank(ctx, album, artist)
	if err != nil {
		return nil, err
	}
	return finder.Pick(ctx, candidates)
}

// Pick downloads the ranked candidates and selects the cover among them
func (finder *Finder) Pick(ctx context.Context, candidates []*Candidate) (*Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fetched := finder.fetcher.Fetch(ctx, candidates)
	logrus.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"fetched":    len(fetched),
	}).Debug("cover candidates fetched")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Select(fetched), nil
}
