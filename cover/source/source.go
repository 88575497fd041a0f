// Package source implements the cover art providers queried by the cover aggregator.
package source

import (
	"path"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/normalize"
	"github.com/ppartarr/songfiler/util/web"
)

// ErrCredentials is returned by sources whose credentials are missing or refused
var ErrCredentials = web.ErrCredentials

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type base struct {
	name    string
	client  *web.Client
	baseURL string
}

func (source *base) Name() string {
	return source.name
}

// Close releases the idle connections of the source client,
// the source stays usable afterwards
func (source *base) Close() error {
	return source.client.Close()
}

// SetBaseURL points the source to another endpoint
func (source *base) SetBaseURL(url string) {
	source.baseURL = url
}

// matches tells whether two names refer to the same entity,
// tolerating accents, punctuation and featured artists
func matches(found, wanted string) bool {
	found, wanted = normalize.Comparable(found), normalize.Comparable(wanted)
	if found == "" || wanted == "" {
		return false
	}
	return strings.Contains(found, wanted) || strings.Contains(wanted, found)
}

// guessFormat infers the image format from the URL extension
func guessFormat(url string) cover.Format {
	if index := strings.IndexAny(url, "?#"); index >= 0 {
		url = url[:index]
	}
	switch strings.ToLower(path.Ext(url)) {
	case ".png":
		return cover.PNG
	case ".jpg", ".jpeg":
		return cover.JPEG
	}
	return cover.Unknown
}
