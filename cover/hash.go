package cover

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/bits"

	"github.com/nfnt/resize"
)

// HashSide is the side of the luminance grid a Hash summarizes
const HashSide = 8

// Hash is an average hash: bit i is set when the i-th cell
// of the 8x8 luminance grid is brighter than the mean
type Hash uint64

func (hash Hash) String() string {
	return fmt.Sprintf("%016x", uint64(hash))
}

// Distance returns the number of differing bits
func (hash Hash) Distance(other Hash) int {
	return bits.OnesCount64(uint64(hash ^ other))
}

// AverageHash hashes a row-major grid of HashSide*HashSide luminance values,
// cells beyond the grid are ignored and missing ones count as black
func AverageHash(gray []uint8) Hash {
	var (
		cells [HashSide * HashSide]uint8
		sum   int
	)
	copy(cells[:], gray)
	for _, value := range cells {
		sum += int(value)
	}

	var hash Hash
	for i, value := range cells {
		if int(value)*len(cells) > sum {
			hash |= 1 << uint(i)
		}
	}
	return hash
}

// HashImage converts img to grayscale, shrinks it to the hash grid and hashes it
func HashImage(img image.Image) Hash {
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	var (
		thumbnail = resize.Resize(HashSide, HashSide, gray, resize.Lanczos3)
		bounds    = thumbnail.Bounds()
		grid      = make([]uint8, 0, HashSide*HashSide)
	)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			grid = append(grid, color.GrayModel.Convert(thumbnail.At(x, y)).(color.Gray).Y)
		}
	}
	return AverageHash(grid)
}
