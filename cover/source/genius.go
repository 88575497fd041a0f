package source

import (
	"context"
	"fmt"

	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/util/web"
)

const (
	geniusURL        = "https://api.genius.com/search"
	geniusGuessedArt = 300
)

// Genius uses song art as a last resort cover
type Genius struct {
	base
}

// NewGenius expects client to carry the API token
func NewGenius(client *web.Client, token string) (*Genius, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: genius token missing", ErrCredentials)
	}
	return &Genius{base{"genius", client, geniusURL}}, nil
}

func (source *Genius) Search(ctx context.Context, album, artist string) ([]*cover.Candidate, error) {
	body, _, err := source.client.Get(ctx, source.baseURL, map[string]string{"q": artist + " " + album})
	if err != nil {
		return nil, web.Refused(err)
	}

	var response struct {
		Response struct {
			Hits []struct {
				Result struct {
					SongArtURL    string `json:"song_art_image_url"`
					PrimaryArtist struct {
						Name string `json:"name"`
					} `json:"primary_artist"`
				} `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	var (
		candidates []*cover.Candidate
		seen       = make(map[string]bool)
	)
	for _, hit := range response.Response.Hits {
		url := hit.Result.SongArtURL
		if url == "" || seen[url] || !matches(hit.Result.PrimaryArtist.Name, artist) {
			continue
		}
		seen[url] = true
		candidates = append(candidates, &cover.Candidate{
			URLs:    []string{url},
			Width:   geniusGuessedArt,
			Height:  geniusGuessedArt,
			Format:  guessFormat(url),
			Quality: cover.Low,
			Rank:    cover.Ranked(len(candidates)),
			Source:  source.name,
		})
	}
	return candidates, nil
}
