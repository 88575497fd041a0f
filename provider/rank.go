package provider

import (
	"sort"
	"strings"

	"github.com/ppartarr/songfiler/normalize"
)

// BetterWeight multiplies the views of candidates whose title
// carries a "better" word, e.g. "(Official Audio)"
const BetterWeight = 1000

// Words holds the word lists driving the ranking,
// it is never modified once built
type Words struct {
	wrong  []string
	okay   []string
	better []string
	kept   []string
}

func NewWords(wrong, okay, better, kept []string) Words {
	return Words{
		wrong:  append([]string(nil), wrong...),
		okay:   append([]string(nil), okay...),
		better: append([]string(nil), better...),
		kept:   append([]string(nil), kept...),
	}
}

func (words Words) Wrong() []string {
	return append([]string(nil), words.wrong...)
}

func (words Words) Okay() []string {
	return append([]string(nil), words.okay...)
}

func (words Words) Better() []string {
	return append([]string(nil), words.better...)
}

// Kept returns the words sparing a parenthetical from
// being stripped off the requested title
func (words Words) Kept() []string {
	return append([]string(nil), words.kept...)
}

// DefaultWords returns the stock word lists: no parenthetical is kept,
// uploads rarely spell featuring artists the way requests do
func DefaultWords() Words {
	return NewWords(
		[]string{
			"karaoke", "not official", "montage", "remix", "snippet", "8d audio",
			"reaction", "review", "choreography", "fast", "reverb", "performs",
			"symphony", "orchestra", "loop",
		},
		[]string{"music video"},
		[]string{"audio", "official audio"},
		nil,
	)
}

// RankingContext is the per-request view over Words
type RankingContext struct {
	Artist         string
	Title          string // canonical, lowercase
	Wrong          []string
	Okay           []string
	Better         []string
	PreferExplicit bool
}

// Context derives a fresh ranking context for a single request:
// words contained in the request itself are not held against candidates
func (words Words) Context(artist, title string, preferExplicit bool) RankingContext {
	var (
		canonical = strings.ToLower(normalize.RemoveJunk(title, words.kept))
		request   = strings.ToLower(artist + " " + title)
		rc        = RankingContext{
			Artist:         artist,
			Title:          canonical,
			Wrong:          exclude(words.wrong, request),
			Okay:           exclude(words.okay, request),
			Better:         exclude(words.better, canonical),
			PreferExplicit: preferExplicit,
		}
	)
	if preferExplicit && !strings.Contains(request, "clean") && !strings.Contains(request, "censored") {
		rc.Wrong = append(rc.Wrong, "clean", "censored")
	}
	return rc
}

func exclude(words []string, text string) []string {
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if !strings.Contains(text, word) {
			filtered = append(filtered, word)
		}
	}
	return filtered
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

type weighted struct {
	candidate VideoCandidate
	weight    int
}

// Rank returns the URLs of the qualifying candidates, best first
func Rank(rc RankingContext, hits []RawHit) []string {
	artist := normalize.Fold(rc.Artist)
	var okay, better, good []VideoCandidate
	for _, hit := range hits {
		var (
			candidate = NewVideoCandidate(hit)
			title     = strings.ToLower(candidate.Title())
			channel   = strings.ToLower(candidate.Channel())
		)
		if !strings.Contains(normalize.Fold(channel), artist) && !strings.Contains(normalize.Fold(title), artist) {
			continue
		}
		if !strings.Contains(title, rc.Title) || containsAny(channel+" "+title, rc.Wrong) {
			continue
		}

		switch {
		case containsAny(title, rc.Okay):
			okay = append(okay, candidate)
		case containsAny(title, rc.Better):
			better = append(better, candidate)
		default:
			good = append(good, candidate)
		}
	}

	if len(good) == 0 && len(better) == 0 {
		return urls(okay)
	}

	ranked := make([]weighted, 0, len(good)+len(better))
	for _, candidate := range good {
		ranked = append(ranked, weighted{candidate, candidate.Views()})
	}
	for _, candidate := range better {
		ranked = append(ranked, weighted{candidate, candidate.Views() * BetterWeight})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].weight > ranked[j].weight
	})

	candidates := make([]VideoCandidate, len(ranked))
	for i, entry := range ranked {
		candidates[i] = entry.candidate
	}
	return urls(candidates)
}

func urls(candidates []VideoCandidate) []string {
	urls := make([]string, len(candidates))
	for i, candidate := range candidates {
		urls[i] = candidate.URL()
	}
	return urls
}
