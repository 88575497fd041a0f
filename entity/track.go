package entity

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/ppartarr/songfiler/normalize"
	"github.com/ppartarr/songfiler/util"
)

const (
	TrackFormat   = "mp3"
	ArtworkFormat = "jpg"
	singleSuffix  = " - Single"
)

var ErrMalformedRequest = errors.New("request must look like: artist - title")

type Artwork struct {
	URL      string
	Data     []byte
	MimeType string
}

type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	Artwork     Artwork
	Lyrics      string
	Format      string // audio file extension, without the dot
	UpstreamURL string // URL of the video the song's been extracted from
}

type TrackPath struct {
	track *Track
}

// ID derives the identifier of a song from its artist and title,
// spelling differences in case, accents and punctuation are irrelevant
func ID(artist, title string) string {
	return slug.Make(normalize.Comparable(artist) + " " + normalize.Comparable(normalize.Format(title)))
}

func New(artist, title string) *Track {
	artist, title = strings.TrimSpace(artist), normalize.Format(title)
	return &Track{
		ID:     ID(artist, title),
		Title:  title,
		Artist: artist,
		Format: TrackFormat,
	}
}

// Parse builds a track out of an "artist - title" request
func Parse(request string) (*Track, error) {
	artist, title, ok := strings.Cut(request, " - ")
	if !ok || strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequest, request)
	}
	return New(artist, title), nil
}

func (track *Track) String() string {
	return fmt.Sprintf("%s by %s", track.Title, track.Artist)
}

// Song strips the variant description out of the title:
// > Title: Name (Acoustic)
// > Song:  Name
func (track *Track) Song() string {
	return normalize.RemoveJunk(track.Title, nil)
}

// AlbumOrSingle returns the album name, falling back
// to the single the song would have been released as
func (track *Track) AlbumOrSingle() string {
	if track.Album != "" {
		return track.Album
	}
	return track.Title + singleSuffix
}

func (track *Track) Path() TrackPath {
	return TrackPath{track}
}

// Final returns the location of the track within the library:
// <library>/<artist>/<album>/<title>.<format>
func (trackPath TrackPath) Final(library string) string {
	track := trackPath.track
	return filepath.Join(
		library,
		util.LegalizeFilename(track.Artist),
		util.LegalizeFilename(track.AlbumOrSingle()),
		util.LegalizeFilename(track.Title)+"."+track.Format,
	)
}

func (trackPath TrackPath) Download() string {
	return util.CacheFile(fmt.Sprintf("%s.%s", trackPath.track.ID, trackPath.track.Format))
}

func (trackPath TrackPath) Artwork() string {
	return util.CacheFile(fmt.Sprintf("%s-cover.%s", slug.Make(trackPath.track.Artist+" "+trackPath.track.AlbumOrSingle()), ArtworkFormat))
}
