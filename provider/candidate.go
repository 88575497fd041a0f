package provider

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const watchURL = "https://www.youtube.com/watch?v="

// MaxViews caps parsed view counts, so that weighting them never overflows
const MaxViews = math.MaxInt / BetterWeight

// RawHit is a search result as reported by a searcher, textual fields untouched
type RawHit struct {
	ID       string
	Title    string
	Channel  string
	Duration string // H:MM:SS, MM:SS or SS
	Views    string // e.g. "12,345 views"
}

// VideoCandidate is a parsed, read-only search hit
type VideoCandidate struct {
	id       string
	title    string
	channel  string
	duration int
	views    int
}

// NewVideoCandidate parses hit, malformed duration and views turn into zero
func NewVideoCandidate(hit RawHit) VideoCandidate {
	return VideoCandidate{
		id:       hit.ID,
		title:    hit.Title,
		channel:  hit.Channel,
		duration: parseDuration(hit.Duration),
		views:    parseViews(hit.Views),
	}
}

func (candidate VideoCandidate) ID() string {
	return candidate.id
}

func (candidate VideoCandidate) Title() string {
	return candidate.title
}

func (candidate VideoCandidate) Channel() string {
	return candidate.channel
}

// Duration in seconds
func (candidate VideoCandidate) Duration() int {
	return candidate.duration
}

func (candidate VideoCandidate) Views() int {
	return candidate.views
}

func (candidate VideoCandidate) URL() string {
	return watchURL + candidate.id
}

func parseViews(views string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, views)
	value, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) || value > MaxViews {
		return MaxViews
	}
	if err != nil {
		return 0
	}
	return value
}

func parseDuration(duration string) int {
	if duration = strings.TrimSpace(duration); duration == "" {
		return 0
	}

	seconds := 0
	for _, part := range strings.Split(duration, ":") {
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return 0
		}
		seconds = seconds*60 + value
	}
	return seconds
}
