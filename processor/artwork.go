package processor

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	"github.com/ppartarr/songfiler/cover"

	_ "golang.org/x/image/webp"
)

const artworkQuality = 95

// Artwork shrinks images larger than Size and re-encodes them in Format,
// JPEG unless PNG is asked for
type Artwork struct {
	Size   int
	Format cover.Format
}

func (artwork Artwork) Process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if artwork.Size > 0 && (bounds.Dx() > artwork.Size || bounds.Dy() > artwork.Size) {
		if bounds.Dx() >= bounds.Dy() {
			img = resize.Resize(uint(artwork.Size), 0, img, resize.Lanczos3)
		} else {
			img = resize.Resize(0, uint(artwork.Size), img, resize.Lanczos3)
		}
	}

	var buffer bytes.Buffer
	if artwork.Format == cover.PNG {
		err = png.Encode(&buffer, img)
	} else {
		err = jpeg.Encode(&buffer, img, &jpeg.Options{Quality: artworkQuality})
	}
	return buffer.Bytes(), err
}

// MimeType returns the MIME type of the processed images
func (artwork Artwork) MimeType() string {
	return artwork.Format.MimeType()
}
