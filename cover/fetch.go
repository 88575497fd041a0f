package cover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/arunsworld/nursery"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDownloads = 20
	defaultParallelism  = 4
	stitchQuality       = 95
)

var errTiles = errors.New("tiles do not make a square")

// Getter retrieves the content of a URL
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetcher downloads candidate images and confirms their metadata
type Fetcher struct {
	getter       Getter
	target       Target
	maxDownloads int
	parallelism  int64
}

// NewFetcher returns a fetcher downloading at most maxDownloads candidates
func NewFetcher(getter Getter, target Target, maxDownloads int) *Fetcher {
	if maxDownloads <= 0 {
		maxDownloads = DefaultMaxDownloads
	}
	return &Fetcher{getter, target, maxDownloads, defaultParallelism}
}

// Fetch downloads the first candidates and returns, in the same order,
// the ones that decode to an image of acceptable size, with their
// confirmed size and format, hash and content
func (fetcher *Fetcher) Fetch(ctx context.Context, candidates []*Candidate) []*Candidate {
	if len(candidates) > fetcher.maxDownloads {
		candidates = candidates[:fetcher.maxDownloads]
	}

	var (
		fetched = make([]*Candidate, len(candidates))
		jobs    = make([]nursery.ConcurrentJob, len(candidates))
		sem     = semaphore.NewWeighted(fetcher.parallelism)
	)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		jobs[i] = func(ctx context.Context, _ chan error) {
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			result, err := fetcher.fetch(ctx, candidate)
			if err != nil {
				logrus.WithError(err).WithField("candidate", candidate.String()).Debug("cover candidate dropped")
				return
			}
			fetched[i] = result
		}
	}
	if err := nursery.RunConcurrentlyWithContext(ctx, jobs...); err != nil {
		logrus.WithError(err).Debug("cover fetch interrupted")
	}

	survivors := make([]*Candidate, 0, len(fetched))
	for _, candidate := range fetched {
		if candidate != nil {
			survivors = append(survivors, candidate)
		}
	}
	return survivors
}

func (fetcher *Fetcher) fetch(ctx context.Context, candidate *Candidate) (*Candidate, error) {
	if len(candidate.URLs) == 0 {
		return nil, errors.New("candidate has no url")
	}

	var (
		tiles  = make([]image.Image, len(candidate.URLs))
		data   []byte
		format = Unknown
	)
	for i, url := range candidate.URLs {
		raw, err := fetcher.getter.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		img, name, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("cannot decode %s: %w", url, err)
		}
		tiles[i], data, format = img, raw, ParseFormat(name)
	}

	img, err := stitch(tiles)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if !fetcher.target.Accepts(bounds.Dx(), bounds.Dy()) {
		return nil, fmt.Errorf("image too small (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	if len(tiles) > 1 {
		if format != PNG {
			format = JPEG
		}
		if data, err = encode(img, format); err != nil {
			return nil, err
		}
	}

	hash := HashImage(img)
	result := *candidate
	result.Width, result.Height = bounds.Dx(), bounds.Dy()
	result.Format = format
	result.Reliable = true
	result.Hash = &hash
	result.Data = data
	return &result, nil
}

func stitch(tiles []image.Image) (image.Image, error) {
	if len(tiles) == 1 {
		return tiles[0], nil
	}

	side := int(math.Sqrt(float64(len(tiles))))
	if side*side != len(tiles) {
		return nil, errTiles
	}

	size := tiles[0].Bounds().Size()
	for _, tile := range tiles[1:] {
		if tile.Bounds().Size() != size {
			return nil, errTiles
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, side*size.X, side*size.Y))
	for i, tile := range tiles {
		offset := image.Pt(i%side*size.X, i/side*size.Y)
		draw.Draw(canvas, image.Rectangle{offset, offset.Add(size)}, tile, tile.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

func encode(img image.Image, format Format) ([]byte, error) {
	var buffer bytes.Buffer
	if format == PNG {
		if err := png.Encode(&buffer, img); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	}
	if err := jpeg.Encode(&buffer, img, &jpeg.Options{Quality: stitchQuality}); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
