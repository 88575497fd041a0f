package cmd

import (
	"context"
	"time"

	"github.com/ppartarr/songfiler/config"
	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/cover/source"
	"github.com/ppartarr/songfiler/downloader"
	"github.com/ppartarr/songfiler/lyrics"
	"github.com/ppartarr/songfiler/processor"
	"github.com/ppartarr/songfiler/provider"
	"github.com/ppartarr/songfiler/util"
	"github.com/ppartarr/songfiler/util/cache"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/sirupsen/logrus"
)

const lastFMDelay = 100 * time.Millisecond

func newCache(cfg *config.Config) *cache.Cache {
	blobs := cache.New(util.CacheDirectory(), cfg.CacheTTL)
	if purged, err := blobs.Purge(); err != nil {
		logrus.WithError(err).Debug("cannot purge cache")
	} else if purged > 0 {
		logrus.WithField("entries", purged).Debug("cache purged")
	}
	return blobs
}

// newFinder builds the cover finder out of every source
// the configuration has credentials for
func newFinder(ctx context.Context, cfg *config.Config, blobs *cache.Cache) (*cover.Finder, error) {
	sources := []cover.Source{
		source.NewITunes(web.New(), cfg.Cover.Size),
		source.NewDeezer(web.New()),
	}

	if cfg.Keys.LastFM != "" {
		lastFM, err := source.NewLastFM(web.New(web.WithDelay(lastFMDelay)), cfg.Keys.LastFM)
		if err != nil {
			return nil, err
		}
		sources = append(sources, lastFM)
	}

	if cfg.Keys.SpotifyID != "" || cfg.Keys.SpotifySecret != "" {
		spotify, err := source.NewSpotify(ctx, cfg.Keys.SpotifyID, cfg.Keys.SpotifySecret)
		if err != nil {
			return nil, err
		}
		sources = append(sources, spotify)
	}

	if cfg.Keys.Genius != "" {
		genius, err := source.NewGenius(web.New(web.WithAuthToken(cfg.Keys.Genius)), cfg.Keys.Genius)
		if err != nil {
			return nil, err
		}
		sources = append(sources, genius)
	}

	target := cfg.Target()
	return cover.NewFinder(
		cover.NewAggregator(cfg.Cover.Timeout, sources...),
		cover.NewFetcher(newDownloader(blobs), target, cfg.Cover.MaxDownloads),
		target,
	), nil
}

// newProvider builds the video provider, the Data API searcher
// joins the scraper when a key is configured
func newProvider(ctx context.Context, cfg *config.Config) (*provider.Provider, error) {
	searchers := []provider.Searcher{provider.NewYouTube(web.New())}
	if cfg.Keys.YouTube != "" {
		api, err := provider.NewYouTubeAPI(ctx, cfg.Keys.YouTube)
		if err != nil {
			return nil, err
		}
		searchers = append(searchers, api)
	}
	return provider.New(cfg.Words(), cfg.Video.PreferExplicit, searchers...), nil
}

func newLyrics(cfg *config.Config) *lyrics.Client {
	return lyrics.New(cfg.Keys.Genius)
}

func newDownloader(blobs *cache.Cache) *downloader.Downloader {
	return downloader.New(web.New(), blobs)
}

func newArtworkProcessor(cfg *config.Config) processor.Artwork {
	return processor.Artwork{Size: cfg.Cover.Size, Format: cfg.CoverFormat()}
}
