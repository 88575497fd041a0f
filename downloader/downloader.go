// Package downloader retrieves remote assets: audio tracks out of
// video URLs, through yt-dlp, and any other blob over HTTP.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppartarr/songfiler/util/cache"
	"github.com/ppartarr/songfiler/util/cmd"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/sirupsen/logrus"
)

var ErrNotVideo = errors.New("not a video url")

// Processor transforms a downloaded blob before it is written
type Processor interface {
	Process(data []byte) ([]byte, error)
}

type Downloader struct {
	client *web.Client
	cache  *cache.Cache
}

// New returns a downloader, a nil cache disables caching
func New(client *web.Client, cache *cache.Cache) *Downloader {
	return &Downloader{client, cache}
}

// Download extracts the audio track of the video at url to path
func (downloader *Downloader) Download(ctx context.Context, url, path string) error {
	if !isVideo(url) {
		return fmt.Errorf("%w: %s", ErrNotVideo, url)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return cmd.YouTubeDl(ctx, url, path)
}

// Get returns the content of url, served from the cache when possible
func (downloader *Downloader) Get(ctx context.Context, url string) ([]byte, error) {
	if downloader.cache != nil {
		if data, ok := downloader.cache.Get(url); ok {
			return data, nil
		}
	}

	data, _, err := downloader.client.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if downloader.cache != nil {
		if err := downloader.cache.Put(url, data); err != nil {
			logrus.WithError(err).WithField("url", url).Debug("cannot cache blob")
		}
	}
	return data, nil
}

// Write processes data, if a processor is given, and stores it at path
func Write(path string, data []byte, processor Processor, channels ...chan []byte) (err error) {
	if processor != nil {
		if data, err = processor.Process(data); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	for _, channel := range channels {
		channel <- data
	}
	return nil
}

func isVideo(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	return host == "youtube.com" || host == "m.youtube.com" || host == "music.youtube.com" || host == "youtu.be"
}
