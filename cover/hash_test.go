package cover

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grid(fill func(x, y int) uint8) []uint8 {
	cells := make([]uint8, 0, HashSide*HashSide)
	for y := 0; y < HashSide; y++ {
		for x := 0; x < HashSide; x++ {
			cells = append(cells, fill(x, y))
		}
	}
	return cells
}

func TestAverageHash(t *testing.T) {
	var (
		flat  = grid(func(int, int) uint8 { return 128 })
		left  = grid(func(x, _ int) uint8 { return map[bool]uint8{true: 255, false: 0}[x < 4] })
		right = grid(func(x, _ int) uint8 { return map[bool]uint8{true: 255, false: 0}[x >= 4] })
	)
	assert.Equal(t, Hash(0), AverageHash(flat))
	assert.Equal(t, Hash(0x0f0f0f0f0f0f0f0f), AverageHash(left))
	assert.Equal(t, Hash(0xf0f0f0f0f0f0f0f0), AverageHash(right))
	assert.Equal(t, 64, AverageHash(left).Distance(AverageHash(right)))
	assert.Equal(t, "0f0f0f0f0f0f0f0f", AverageHash(left).String())
}

func TestAverageHashScaleInvariant(t *testing.T) {
	var (
		dark   = grid(func(x, y int) uint8 { return uint8(x*8 + y) })
		bright = grid(func(x, y int) uint8 { return uint8(x*8+y) * 3 })
	)
	assert.Equal(t, AverageHash(dark), AverageHash(bright))
}

func TestHashImage(t *testing.T) {
	var (
		small = image.NewRGBA(image.Rect(0, 0, 64, 64))
		large = image.NewRGBA(image.Rect(0, 0, 512, 512))
	)
	paint := func(img *image.RGBA) {
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if x < bounds.Dx()/2 {
					img.Set(x, y, color.White)
				} else {
					img.Set(x, y, color.Black)
				}
			}
		}
	}
	paint(small)
	paint(large)
	assert.Equal(t, HashImage(small), HashImage(large))
	assert.Equal(t, Hash(0x0f0f0f0f0f0f0f0f), HashImage(large))
}
