package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppartarr/songfiler/util/web"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const youTubeAPIResults = 25

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// YouTubeAPI queries the YouTube Data API v3, it needs an API key
type YouTubeAPI struct {
	service *youtube.Service
}

func NewYouTubeAPI(ctx context.Context, key string, options ...option.ClientOption) (*YouTubeAPI, error) {
	service, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(key)}, options...)...)
	if err != nil {
		return nil, err
	}
	return &YouTubeAPI{service}, nil
}

func (api *YouTubeAPI) Name() string {
	return "youtube-api"
}

func (api *YouTubeAPI) Search(ctx context.Context, query string) ([]RawHit, error) {
	search, err := api.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(youTubeAPIResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, refusedKey(err)
	}

	var (
		hits  = make([]RawHit, 0, len(search.Items))
		ids   = make([]string, 0, len(search.Items))
		index = make(map[string]int)
	)
	for _, item := range search.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		index[item.Id.VideoId] = len(hits)
		ids = append(ids, item.Id.VideoId)
		hits = append(hits, RawHit{
			ID:      item.Id.VideoId,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
		})
	}
	if len(ids) == 0 {
		return hits, nil
	}

	videos, err := api.service.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, refusedKey(err)
	}
	for _, video := range videos.Items {
		position, ok := index[video.Id]
		if !ok {
			continue
		}
		if video.ContentDetails != nil {
			hits[position].Duration = ClockDuration(video.ContentDetails.Duration)
		}
		if video.Statistics != nil {
			hits[position].Views = strconv.FormatUint(video.Statistics.ViewCount, 10)
		}
	}
	return hits, nil
}

// refusedKey wraps into web.ErrCredentials the errors of a rejected API key,
// exhausted quotas are left alone
func refusedKey(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	refused := apiErr.Code == http.StatusUnauthorized ||
		strings.Contains(strings.ToLower(apiErr.Message), "api key")
	for _, item := range apiErr.Errors {
		refused = refused || item.Reason == "keyInvalid" || item.Reason == "keyExpired"
	}
	if refused {
		return fmt.Errorf("%w: %v", web.ErrCredentials, err)
	}
	return err
}

// ClockDuration turns an ISO-8601 duration (PT1H2M3S) into H:MM:SS,
// unparsable durations turn into an empty string
func ClockDuration(duration string) string {
	match := isoDuration.FindStringSubmatch(duration)
	if match == nil || duration == "P" || duration == "PT" {
		return ""
	}

	var values [4]int
	for i, group := range match[1:] {
		values[i], _ = strconv.Atoi(group)
	}
	hours := values[0]*24 + values[1]
	return fmt.Sprintf("%d:%02d:%02d", hours, values[2], values[3])
}
