// Package processor finalizes downloaded tracks, embedding
// their metadata, lyrics and artwork.
package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/ppartarr/songfiler/entity"
	"github.com/ppartarr/songfiler/entity/flac"
	"github.com/ppartarr/songfiler/entity/id3"
)

var ErrUnsupported = errors.New("unsupported audio format")

type tagger interface {
	SetTitle(string)
	SetArtist(string)
	SetAlbumArtist(string)
	SetAlbum(string)
	SetUnsynchronizedLyrics(string, string)
	SetAttachedPicture([]byte, string)
	SetUpstreamURL(string)
	Save() error
	Close() error
}

func open(path string) (tagger, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return id3.Open(path, id3v2.Options{Parse: true})
	case ".flac":
		return flac.Open(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// Do writes the track metadata into its downloaded file
func Do(track *entity.Track) error {
	return Tag(track.Path().Download(), track)
}

// Tag writes the track metadata into the file at path
func Tag(path string, track *entity.Track) error {
	tag, err := open(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(track.Title)
	tag.SetArtist(track.Artist)
	tag.SetAlbumArtist(track.Artist)
	tag.SetAlbum(track.AlbumOrSingle())
	if track.Lyrics != "" {
		tag.SetUnsynchronizedLyrics(track.Title, track.Lyrics)
	}
	if len(track.Artwork.Data) > 0 {
		mimeType := track.Artwork.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		tag.SetAttachedPicture(track.Artwork.Data, mimeType)
	}
	if track.UpstreamURL != "" {
		tag.SetUpstreamURL(track.UpstreamURL)
	}
	return tag.Save()
}
