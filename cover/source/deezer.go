package source

import (
	"context"
	"fmt"

	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/util/web"
)

const (
	deezerURL       = "https://api.deezer.com/search/album"
	deezerCoverSize = 1000
)

type Deezer struct {
	base
}

func NewDeezer(client *web.Client) *Deezer {
	return &Deezer{base{"deezer", client, deezerURL}}
}

func (source *Deezer) Search(ctx context.Context, album, artist string) ([]*cover.Candidate, error) {
	body, _, err := source.client.Get(ctx, source.baseURL, map[string]string{
		"q": fmt.Sprintf(`artist:"%s" album:"%s"`, artist, album),
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Error *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
		Data []struct {
			Title   string `json:"title"`
			CoverXL string `json:"cover_xl"`
			Artist  struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, fmt.Errorf("deezer %s: %s", response.Error.Type, response.Error.Message)
	}

	var candidates []*cover.Candidate
	for _, result := range response.Data {
		if result.CoverXL == "" || !matches(result.Artist.Name, artist) {
			continue
		}
		candidates = append(candidates, &cover.Candidate{
			URLs:    []string{result.CoverXL},
			Width:   deezerCoverSize,
			Height:  deezerCoverSize,
			Format:  cover.JPEG,
			Quality: cover.Normal,
			Rank:    cover.Ranked(len(candidates)),
			Source:  source.name,
		})
	}
	return candidates, nil
}
