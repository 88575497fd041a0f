package provider

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/tidwall/gjson"
)

const (
	youTubeSearchURL = "https://www.youtube.com/results"
	initialDataVar   = "ytInitialData = "
	sectionsPath     = "contents.twoColumnSearchResultsRenderer.primaryContents.sectionListRenderer.contents"
)

var errNoInitialData = errors.New("no search data found in page")

// YouTube scrapes the public search results page
type YouTube struct {
	client  *web.Client
	baseURL string
}

func NewYouTube(client *web.Client) *YouTube {
	return &YouTube{client, youTubeSearchURL}
}

func (youtube *YouTube) Name() string {
	return "youtube"
}

func (youtube *YouTube) Search(ctx context.Context, query string) ([]RawHit, error) {
	body, _, err := youtube.client.Get(ctx, youtube.baseURL, map[string]string{"search_query": query})
	if err != nil {
		return nil, err
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data string
	document.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		index := strings.Index(text, initialDataVar)
		if index < 0 {
			return true
		}
		data = strings.TrimSuffix(strings.TrimSpace(text[index+len(initialDataVar):]), ";")
		return false
	})
	if data == "" || !gjson.Valid(data) {
		return nil, errNoInitialData
	}

	var hits []RawHit
	gjson.Get(data, sectionsPath).ForEach(func(_, section gjson.Result) bool {
		section.Get("itemSectionRenderer.contents").ForEach(func(_, item gjson.Result) bool {
			video := item.Get("videoRenderer")
			if !video.Exists() {
				return true
			}
			hits = append(hits, RawHit{
				ID:       video.Get("videoId").String(),
				Title:    video.Get("title.runs.0.text").String(),
				Channel:  video.Get("ownerText.runs.0.text").String(),
				Duration: video.Get("lengthText.simpleText").String(),
				Views:    video.Get("viewCountText.simpleText").String(),
			})
			return true
		})
		return true
	})
	return hits, nil
}
