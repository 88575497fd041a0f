// Package cover looks for the best cover art of an album across
// several providers, ranking candidates by size, shape and trust.
package cover

import (
	"context"
	"fmt"
	"math"
)

type Format int

const (
	Unknown Format = iota
	JPEG
	PNG
)

func (format Format) String() string {
	switch format {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	}
	return "unknown"
}

// Extension returns the file extension images of the format are saved with
func (format Format) Extension() string {
	if format == PNG {
		return ".png"
	}
	return ".jpg"
}

func (format Format) MimeType() string {
	if format == PNG {
		return "image/png"
	}
	return "image/jpeg"
}

// ParseFormat maps an image format name, as reported by image.Decode, to a Format
func ParseFormat(name string) Format {
	switch name {
	case "jpeg", "jpg":
		return JPEG
	case "png":
		return PNG
	}
	return Unknown
}

type Quality int

const (
	Low Quality = iota
	Normal
	High
)

func (quality Quality) String() string {
	switch quality {
	case Low:
		return "low"
	case Normal:
		return "normal"
	case High:
		return "high"
	}
	return "unknown"
}

// Candidate is a cover art an album may be given
type Candidate struct {
	URLs     []string // more than one means the cover is split into square tiles
	Width    int
	Height   int
	Format   Format
	Quality  Quality
	Rank     *int // position in the source own relevance ranking, if any
	Source   string
	Reliable bool // whether Width, Height and Format can be trusted
	Hash     *Hash
	Data     []byte
}

func (candidate *Candidate) String() string {
	return fmt.Sprintf("%s %dx%d (%s)", candidate.Source, candidate.Width, candidate.Height, candidate.Format)
}

// Average returns the mean of width and height
func (candidate *Candidate) Average() float64 {
	return float64(candidate.Width+candidate.Height) / 2
}

// Skew returns how far the aspect ratio is from a square
func (candidate *Candidate) Skew() float64 {
	if candidate.Height == 0 {
		return math.MaxFloat64
	}
	return math.Abs(float64(candidate.Width)/float64(candidate.Height) - 1)
}

// Ranked returns a pointer to rank, for sources filling Candidate.Rank
func Ranked(rank int) *int {
	return &rank
}

// Target is the cover size looked for
type Target struct {
	Size         int
	TolerancePct int
}

// Accepts reports whether an image of the given size is close enough to the target
func (target Target) Accepts(width, height int) bool {
	slack := target.Size * target.TolerancePct / 100
	return width+slack >= target.Size && height+slack >= target.Size
}

// Source is a cover art provider
type Source interface {
	Name() string
	Search(ctx context.Context, album, artist string) ([]*Candidate, error)
	Close() error
}

// SourceError reports the failure of a single source
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cover source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
