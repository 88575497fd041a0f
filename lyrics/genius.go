package lyrics

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/agnivade/levenshtein"
	"github.com/ppartarr/songfiler/util/web"
)

const geniusURL = "https://api.genius.com"

type geniusSong struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type genius struct {
	api     *web.Client
	pages   *web.Client
	baseURL string
}

func newGenius(api, pages *web.Client) *genius {
	return &genius{api, pages, geniusURL}
}

// search returns the hit whose primary artist contains artist
// and whose title is the closest to title, nil if none
func (client *genius) search(ctx context.Context, title, artist string) (*geniusSong, error) {
	body, _, err := client.api.Get(ctx, client.baseURL+"/search", map[string]string{"q": title + " " + artist})
	if err != nil {
		return nil, web.Refused(err)
	}

	var response struct {
		Response struct {
			Hits []struct {
				Result struct {
					geniusSong
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
		match    *geniusSong
		distance int
		artistLC = strings.ToLower(artist)
		titleLC  = strings.ToLower(title)
	)
	for _, hit := range response.Response.Hits {
		if !strings.Contains(strings.ToLower(hit.Result.PrimaryArtist.Name), artistLC) {
			continue
		}
		song := hit.Result.geniusSong
		if d := levenshtein.ComputeDistance(titleLC, strings.ToLower(song.Title)); match == nil || d < distance {
			match, distance = &song, d
		}
	}
	return match, nil
}

func (client *genius) album(ctx context.Context, id int) (string, error) {
	body, _, err := client.api.Get(ctx, client.baseURL+"/songs/"+strconv.Itoa(id), nil)
	if err != nil {
		return "", err
	}

	var response struct {
		Response struct {
			Song struct {
				Album *struct {
					Name string `json:"name"`
				} `json:"album"`
			} `json:"song"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if response.Response.Song.Album == nil {
		return "", nil
	}
	return response.Response.Song.Album.Name, nil
}

func (client *genius) lyrics(ctx context.Context, url string) (string, error) {
	body, _, err := client.pages.Get(ctx, url, nil)
	if err != nil {
		return "", err
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var blocks []string
	document.Find("[data-lyrics-container]").Each(func(_ int, container *goquery.Selection) {
		container.Find("br").ReplaceWithHtml("\n")
		blocks = append(blocks, container.Text())
	})
	if len(blocks) == 0 {
		blocks = append(blocks, document.Find("div.lyrics").First().Text())
	}
	return clean(strings.Join(blocks, "\n")), nil
}
