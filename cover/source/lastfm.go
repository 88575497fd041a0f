package source

import (
	"context"
	"fmt"

	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/util/web"
)

const (
	lastFMURL           = "https://ws.audioscrobbler.com/2.0/"
	lastFMAlbumNotFound = 6
	lastFMInvalidKey    = 10
	lastFMSuspendedKey  = 26
)

// sizes last.fm image labels usually stand for
var lastFMSizes = map[string]int{
	"small":      34,
	"medium":     64,
	"large":      174,
	"extralarge": 300,
	"mega":       600,
}

type LastFM struct {
	base
	key string
}

func NewLastFM(client *web.Client, key string) (*LastFM, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: last.fm api key missing", ErrCredentials)
	}
	return &LastFM{base{"lastfm", client, lastFMURL}, key}, nil
}

func (source *LastFM) Search(ctx context.Context, album, artist string) ([]*cover.Candidate, error) {
	body, _, err := source.client.Get(ctx, source.baseURL, map[string]string{
		"method":  "album.getinfo",
		"api_key": source.key,
		"album":   album,
		"artist":  artist,
		"format":  "json",
	})
	if err != nil {
		return nil, web.Refused(err)
	}

	var response struct {
		Error   int    `json:"error"`
		Message string `json:"message"`
		Album   struct {
			Image []struct {
				URL  string `json:"#text"`
				Size string `json:"size"`
			} `json:"image"`
		} `json:"album"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}
	switch response.Error {
	case 0:
	case lastFMAlbumNotFound:
		return nil, nil
	case lastFMInvalidKey, lastFMSuspendedKey:
		return nil, fmt.Errorf("%w: last.fm error %d: %s", ErrCredentials, response.Error, response.Message)
	default:
		return nil, fmt.Errorf("last.fm error %d: %s", response.Error, response.Message)
	}

	var candidates []*cover.Candidate
	for _, image := range response.Album.Image {
		size, ok := lastFMSizes[image.Size]
		if image.URL == "" || !ok {
			continue
		}
		candidates = append(candidates, &cover.Candidate{
			URLs:    []string{image.URL},
			Width:   size,
			Height:  size,
			Format:  guessFormat(image.URL),
			Quality: cover.Normal,
			Source:  source.name,
		})
	}
	return candidates, nil
}
