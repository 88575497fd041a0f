package lyrics

import (
	"context"
	"net/url"

	"github.com/ppartarr/songfiler/util/web"
)

const lyricsOvhURL = "https://api.lyrics.ovh/v1"

type lyricsOvh struct {
	client  *web.Client
	baseURL string
}

func newLyricsOvh(client *web.Client) *lyricsOvh {
	return &lyricsOvh{client, lyricsOvhURL}
}

func (ovh *lyricsOvh) search(ctx context.Context, title, artist string) (string, error) {
	body, _, err := ovh.client.Get(ctx, ovh.baseURL+"/"+url.PathEscape(artist)+"/"+url.PathEscape(title), nil)
	if isNotFound(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	var response struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	return clean(response.Lyrics), nil
}
