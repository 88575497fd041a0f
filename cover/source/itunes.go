package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/util/web"
)

const (
	iTunesURL       = "https://itunes.apple.com/search"
	iTunesLimit     = 10
	iTunesThumbnail = "100x100bb"
)

// ITunes looks albums up in the iTunes store, whose artwork
// can be requested in any size by rewriting the thumbnail URL
type ITunes struct {
	base
	size int
}

func NewITunes(client *web.Client, size int) *ITunes {
	return &ITunes{base{"itunes", client, iTunesURL}, size}
}

func (source *ITunes) Search(ctx context.Context, album, artist string) ([]*cover.Candidate, error) {
	body, _, err := source.client.Get(ctx, source.baseURL, map[string]string{
		"term":   artist + " " + album,
		"media":  "music",
		"entity": "album",
		"limit":  strconv.Itoa(iTunesLimit),
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Results []struct {
			ArtistName     string `json:"artistName"`
			CollectionName string `json:"collectionName"`
			ArtworkURL     string `json:"artworkUrl100"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	var (
		candidates []*cover.Candidate
		size       = fmt.Sprintf("%dx%dbb", source.size, source.size)
	)
	for _, result := range response.Results {
		if result.ArtworkURL == "" || !matches(result.ArtistName, artist) || !matches(result.CollectionName, album) {
			continue
		}
		candidates = append(candidates, &cover.Candidate{
			URLs:    []string{strings.Replace(result.ArtworkURL, iTunesThumbnail, size, 1)},
			Width:   source.size,
			Height:  source.size,
			Format:  cover.JPEG,
			Quality: cover.Normal,
			Rank:    cover.Ranked(len(candidates)),
			Source:  source.name,
		})
	}
	return candidates, nil
}
