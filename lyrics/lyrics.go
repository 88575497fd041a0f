// Package lyrics looks up the lyrics and the album of a song.
package lyrics

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ppartarr/songfiler/normalize"
	"github.com/ppartarr/songfiler/util"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result is what is known about a song, empty fields were not found
type Result struct {
	Lyrics string
	Album  string
}

func (result Result) Empty() bool {
	return result.Lyrics == "" && result.Album == ""
}

type Client struct {
	genius *genius
	ovh    *lyricsOvh
}

type Option func(*Client)

// WithGeniusURL points the Genius API calls to another endpoint
func WithGeniusURL(url string) Option {
	return func(client *Client) {
		if client.genius != nil {
			client.genius.baseURL = url
		}
	}
}

// WithLyricsOvhURL points the lyrics.ovh calls to another endpoint
func WithLyricsOvhURL(url string) Option {
	return func(client *Client) {
		client.ovh.baseURL = url
	}
}

// New returns a lookup client, Genius is skipped when token is empty
func New(token string, options ...Option) *Client {
	client := &Client{ovh: newLyricsOvh(web.New())}
	if token != "" {
		client.genius = newGenius(web.New(web.WithAuthToken(token)), web.New())
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Search returns lyrics and album of the song, a song nobody knows
// yields an empty result and no error. Refused credentials are
// returned straight away, whatever the other providers know
func (client *Client) Search(ctx context.Context, title, artist string) (Result, error) {
	var (
		result    Result
		geniusErr error
		ovhErr    error
	)
	if client.genius != nil {
		result, geniusErr = client.searchGenius(ctx, title, artist)
		if errors.Is(geniusErr, web.ErrCredentials) {
			return Result{}, geniusErr
		}
		if geniusErr != nil {
			logrus.WithError(geniusErr).WithField("title", title).Warn("genius lookup failed")
		}
	}

	if result.Lyrics == "" {
		var lyrics string
		lyrics, ovhErr = client.ovh.search(ctx, normalize.RemoveJunk(title, normalize.LyricsKeptWords), artist)
		if ovhErr != nil {
			logrus.WithError(ovhErr).WithField("title", title).Warn("lyrics.ovh lookup failed")
		}
		result.Lyrics = lyrics
	}

	if result.Empty() {
		return result, util.ErrFirst(geniusErr, ovhErr)
	}
	return result, nil
}

func (client *Client) searchGenius(ctx context.Context, title, artist string) (Result, error) {
	song, err := client.genius.search(ctx, title, artist)
	if err != nil {
		return Result{}, err
	}
	if song == nil {
		simpler := normalize.Uncensor(normalize.RemoveJunk(title, nil))
		if simpler == title {
			return Result{}, nil
		}
		if song, err = client.genius.search(ctx, simpler, artist); err != nil || song == nil {
			return Result{}, err
		}
	}

	var result Result
	if result.Album, err = client.genius.album(ctx, song.ID); err != nil {
		logrus.WithError(err).WithField("song", song.ID).Debug("cannot fetch genius album")
	}
	result.Lyrics, err = client.genius.lyrics(ctx, song.URL)
	return result, err
}

func isNotFound(err error) bool {
	var httpErr *web.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

func clean(lyrics string) string {
	lines := strings.Split(strings.TrimSpace(lyrics), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
