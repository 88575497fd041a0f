package cover

import (
	"math"
	"sort"
)

type Outcome int

const (
	Worse Outcome = iota - 1
	Equal
	Better
)

// skews closer than this are not told apart by the first tier
const skewThreshold = 0.15

type tier func(a, b *Candidate, target Target) Outcome

var tiers = []tier{
	bySquareness,
	byTargetReached,
	byTargetProximity,
	byQuality,
	bySourceRank,
	byReliability,
	byTiles,
	bySizeDistance,
	byFormat,
	bySkew,
}

// Compare tells whether a makes a better cover than b,
// the first tier telling them apart decides
func Compare(a, b *Candidate, target Target) Outcome {
	for _, tier := range tiers {
		if outcome := tier(a, b, target); outcome != Equal {
			return outcome
		}
	}
	return Equal
}

// Sort orders candidates from the best to the worst, keeping the order of equals
func Sort(candidates []*Candidate, target Target) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return Compare(candidates[i], candidates[j], target) == Better
	})
}

func prefer(a, b bool) Outcome {
	switch {
	case a && !b:
		return Better
	case b && !a:
		return Worse
	}
	return Equal
}

func lower(a, b float64) Outcome {
	switch {
	case a < b:
		return Better
	case a > b:
		return Worse
	}
	return Equal
}

func bySquareness(a, b *Candidate, _ Target) Outcome {
	if math.Abs(a.Skew()-b.Skew()) <= skewThreshold {
		return Equal
	}
	return lower(a.Skew(), b.Skew())
}

func byTargetReached(a, b *Candidate, target Target) Outcome {
	size := float64(target.Size)
	return prefer(a.Average() >= size, b.Average() >= size)
}

func byTargetProximity(a, b *Candidate, target Target) Outcome {
	size := float64(target.Size)
	if a.Average() >= size || b.Average() >= size {
		return Equal
	}
	return lower(size-a.Average(), size-b.Average())
}

func byQuality(a, b *Candidate, _ Target) Outcome {
	return lower(float64(b.Quality), float64(a.Quality))
}

func bySourceRank(a, b *Candidate, _ Target) Outcome {
	if a.Source != b.Source || a.Rank == nil || b.Rank == nil {
		return Equal
	}
	return lower(float64(*a.Rank), float64(*b.Rank))
}

func byReliability(a, b *Candidate, _ Target) Outcome {
	return prefer(a.Reliable, b.Reliable)
}

func byTiles(a, b *Candidate, _ Target) Outcome {
	return lower(float64(len(a.URLs)), float64(len(b.URLs)))
}

func bySizeDistance(a, b *Candidate, target Target) Outcome {
	size := float64(target.Size)
	return lower(math.Abs(a.Average()-size), math.Abs(b.Average()-size))
}

func byFormat(a, b *Candidate, _ Target) Outcome {
	return prefer(a.Format == PNG, b.Format == PNG)
}

func bySkew(a, b *Candidate, _ Target) Outcome {
	return lower(a.Skew(), b.Skew())
}
