package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arunsworld/nursery"
	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/downloader"
	"github.com/ppartarr/songfiler/entity"
	"github.com/ppartarr/songfiler/entity/index"
	"github.com/ppartarr/songfiler/lyrics"
	"github.com/ppartarr/songfiler/processor"
	"github.com/ppartarr/songfiler/provider"
	"github.com/ppartarr/songfiler/util"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	routineTypeIndex int = iota
	routineTypeDecide
	routineTypeCollect
	routineTypeProcess
	routineTypeInstall
)

var (
	routineSemaphores map[int](chan bool)
	routineQueues     map[int](chan interface{})
)

// job is a track on its way to the library, along
// with the videos it could be extracted from
type job struct {
	track  *entity.Track
	videos []string
}

type pipeline struct {
	library    string
	flush      bool
	lyrics     bool
	provider   *provider.Provider
	finder     *cover.Finder
	lookup     *lyrics.Client
	downloader *downloader.Downloader
	artwork    processor.Artwork
	artworks   map[string]entity.Artwork
}

func init() {
	cmdRoot.AddCommand(cmdFetch())
}

func cmdFetch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [artist - title]...",
		Short: "Download songs and file them into the library",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				library    = util.ErrWrap("")(cmd.Flags().GetString("output"))
				input      = util.ErrWrap("")(cmd.Flags().GetString("input"))
				withLyrics = util.ErrWrap(true)(cmd.Flags().GetBool("lyrics"))
				flush      = util.ErrWrap(false)(cmd.Flags().GetBool("flush"))
				ctx        = cmd.Context()
			)
			if library == "" {
				library = cfg.Library
			}

			tracks, malformed, err := readRequests(args, input)
			if err != nil {
				return err
			}
			for _, err := range malformed {
				tui.Printf("skip %s", err)
			}
			if len(tracks) == 0 {
				return errors.New("no song requested")
			}

			blobs := newCache(cfg)
			videos, err := newProvider(ctx, cfg)
			if err != nil {
				return err
			}
			finder, err := newFinder(ctx, cfg, blobs)
			if err != nil {
				return err
			}

			pipeline := &pipeline{
				library:    library,
				flush:      flush,
				lyrics:     withLyrics,
				provider:   videos,
				finder:     finder,
				lookup:     newLyrics(cfg),
				downloader: newDownloader(blobs),
				artwork:    newArtworkProcessor(cfg),
				artworks:   make(map[string]entity.Artwork),
			}
			if err := nursery.RunConcurrentlyWithContext(ctx,
				pipeline.routineIndex,
				pipeline.routineFetch(tracks),
				pipeline.routineDecide,
				pipeline.routineCollect,
				pipeline.routineProcess,
				pipeline.routineInstall,
			); err != nil {
				return err
			}

			tui.Printf("fetch complete")
			return nil
		},
		PreRun: func(*cobra.Command, []string) {
			routineSemaphores = map[int](chan bool){
				routineTypeIndex: make(chan bool, 1),
			}
			routineQueues = map[int](chan interface{}){
				routineTypeDecide:  make(chan interface{}, 10000),
				routineTypeCollect: make(chan interface{}, 10000),
				routineTypeProcess: make(chan interface{}, 10000),
				routineTypeInstall: make(chan interface{}, 10),
			}
		},
	}
	cmd.Flags().StringP("output", "o", "", "Library path (default from configuration)")
	cmd.Flags().StringP("input", "i", "", "File listing one \"artist - title\" request per line")
	cmd.Flags().BoolP("lyrics", "y", true, "Embed lyrics")
	cmd.Flags().BoolP("flush", "f", false, "Download again songs already in the library")
	return cmd
}

// refused tells whether err comes from credentials a remote API
// rejected, a failure that aborts the whole run
func refused(err error) bool {
	return errors.Is(err, web.ErrCredentials)
}

// readRequests parses the requests given as arguments and
// the ones listed in the input file, if any
func readRequests(args []string, input string) ([]*entity.Track, []error, error) {
	requests := append([]string{}, args...)
	if input != "" {
		file, err := os.Open(input)
		if err != nil {
			return nil, nil, err
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				requests = append(requests, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, nil, err
		}
	}

	var (
		tracks    []*entity.Track
		malformed []error
	)
	for _, request := range requests {
		track, err := entity.Parse(request)
		if err != nil {
			malformed = append(malformed, err)
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks, malformed, nil
}

// indexer scans the library for songs
// that do not need to be fetched again
func (pipeline *pipeline) routineIndex(_ context.Context, ch chan error) {
	// remember to signal fetcher
	defer close(routineSemaphores[routineTypeIndex])

	tui.Lot("index").Printf("scanning")
	if err := indexData.Build(pipeline.library); err != nil {
		tui.Printf("indexing failed: %s", err)
		routineSemaphores[routineTypeIndex] <- false
		ch <- err
		return
	}
	tui.Lot("index").Close(fmt.Sprintf("%d tracks", indexData.Size()))
	routineSemaphores[routineTypeIndex] <- true
}

// fetcher feeds the requested tracks to the decider
// once the library has been indexed
func (pipeline *pipeline) routineFetch(tracks []*entity.Track) func(context.Context, chan error) {
	return func(_ context.Context, _ chan error) {
		// remember to stop passing data to decider
		defer close(routineQueues[routineTypeDecide])
		if !<-routineSemaphores[routineTypeIndex] {
			return
		}

		for _, track := range tracks {
			tui.Lot("fetch").Printf("%s", track)
			routineQueues[routineTypeDecide] <- track
		}
		tui.Lot("fetch").Close(fmt.Sprintf("%d tracks", len(tracks)))
	}
}

// decider skips the tracks already in the library
// and looks for the videos the others can be extracted from
func (pipeline *pipeline) routineDecide(ctx context.Context, ch chan error) {
	// remember to stop passing data to collector
	defer close(routineQueues[routineTypeCollect])

	for event := range routineQueues[routineTypeDecide] {
		track := event.(*entity.Track)
		if status, ok := indexData.Get(track); !ok {
			indexData.Set(track, index.Online)
		} else if status == index.Offline && pipeline.flush {
			tui.Printf("flush %s", track)
			indexData.Set(track, index.Flush)
		} else {
			tui.Printf("skip %s", track)
			continue
		}

		tui.Lot("decide").Printf("%s", track)
		videos, err := pipeline.provider.Search(ctx, track.Artist, track.Title)
		if refused(err) {
			ch <- err
			return
		}
		if err != nil {
			tui.AnchorPrintf("video search failed for %s: %s", track, err)
			continue
		}
		if len(videos) == 0 {
			tui.Printf("no video found for %s", track)
			continue
		}
		logrus.WithFields(logrus.Fields{"track": track.ID, "videos": len(videos)}).Debug("videos ranked")
		tui.Lot("decide").Wipe()
		routineQueues[routineTypeCollect] <- &job{track, videos}
	}
	tui.Lot("decide").Close()
}

// collector fetches all the needed assets
// for a track to be processed
func (pipeline *pipeline) routineCollect(ctx context.Context, ch chan error) {
	// remember to stop passing data to processor
	defer close(routineQueues[routineTypeProcess])

	for event := range routineQueues[routineTypeCollect] {
		var (
			job        = event.(*job)
			downloaded bool
		)
		if err := nursery.RunConcurrentlyWithContext(ctx,
			pipeline.routineCollectAsset(job, &downloaded),
			pipeline.routineCollectMetadata(job.track),
		); err != nil {
			ch <- err
			return
		}
		if !downloaded {
			continue
		}
		routineQueues[routineTypeProcess] <- job.track
	}
	tui.Lot("download").Close()
	tui.Lot("compose").Close()
	tui.Lot("paint").Close()
}

// retriever extracts the audio track out of the
// first video that can be downloaded
func (pipeline *pipeline) routineCollectAsset(job *job, downloaded *bool) func(context.Context, chan error) {
	return func(ctx context.Context, _ chan error) {
		for _, video := range job.videos {
			tui.Lot("download").Print(video)
			if err := pipeline.downloader.Download(ctx, video, job.track.Path().Download()); err != nil {
				logrus.WithError(err).WithField("video", video).Warn("download failed")
				continue
			}
			job.track.UpstreamURL = video
			*downloaded = true
			tui.Printf("asset for %s: %s", job.track, video)
			tui.Lot("download").Wipe()
			return
		}
		tui.AnchorPrintf("download failure for %s: none of %d videos could be downloaded", job.track, len(job.videos))
		tui.Lot("download").Wipe()
	}
}

// composer pulls lyrics and album name, then the
// cover art, which depends on the album name
func (pipeline *pipeline) routineCollectMetadata(track *entity.Track) func(context.Context, chan error) {
	return func(ctx context.Context, ch chan error) {
		tui.Lot("compose").Printf("%s", track)
		result, err := pipeline.lookup.Search(ctx, track.Title, track.Artist)
		switch {
		case refused(err):
			ch <- err
			return
		case err != nil:
			tui.AnchorPrintf("compose failure for %s: %s", track, err)
		case result.Lyrics == "" && pipeline.lyrics:
			tui.Printf("no lyrics for %s", track)
		case pipeline.lyrics:
			track.Lyrics = result.Lyrics
			tui.Printf("lyrics for %s: %s", track, util.Excerpt(result.Lyrics))
		}
		if track.Album == "" {
			track.Album = result.Album
		}
		tui.Lot("compose").Wipe()

		if err := pipeline.collectArtwork(ctx, track); err != nil {
			ch <- err
		}
	}
}

// painter looks for the album cover art, albums are looked up
// only once per run. Refused credentials are the only error returned
func (pipeline *pipeline) collectArtwork(ctx context.Context, track *entity.Track) error {
	album := track.Album
	if album == "" {
		album = track.Song()
	}
	key := entity.ID(track.Artist, album)
	if artwork, ok := pipeline.artworks[key]; ok {
		track.Artwork = artwork
		return nil
	}

	tui.Lot("paint").Printf("%s by %s", album, track.Artist)
	defer tui.Lot("paint").Wipe()
	candidate, err := pipeline.finder.Find(ctx, album, track.Artist)
	if refused(err) {
		return err
	}
	if err != nil {
		tui.AnchorPrintf("paint failure for %s: %s", track, err)
		return nil
	}
	if candidate == nil {
		tui.Printf("no cover art for %s by %s", album, track.Artist)
		pipeline.artworks[key] = entity.Artwork{}
		return nil
	}

	artwork := make(chan []byte, 1)
	if err := downloader.Write(track.Path().Artwork(), candidate.Data, pipeline.artwork, artwork); err != nil {
		tui.AnchorPrintf("paint failure for %s: %s", track, err)
		return nil
	}
	track.Artwork = entity.Artwork{
		URL:      candidate.URLs[0],
		Data:     <-artwork,
		MimeType: pipeline.artwork.MimeType(),
	}
	pipeline.artworks[key] = track.Artwork
	tui.Printf("artwork for %s: %s from %s", track, util.HumanizeBytes(len(track.Artwork.Data)), candidate.Source)
	return nil
}

// postprocessor embeds metadata, lyrics
// and artwork into the downloaded track
func (pipeline *pipeline) routineProcess(_ context.Context, _ chan error) {
	// remember to stop passing data to installer
	defer close(routineQueues[routineTypeInstall])

	for event := range routineQueues[routineTypeProcess] {
		track := event.(*entity.Track)
		tui.Lot("process").Printf("%s", track)
		if err := processor.Do(track); err != nil {
			tui.AnchorPrintf("processing failed for %s: %s", track, err)
			continue
		}
		tui.Lot("process").Wipe()
		routineQueues[routineTypeInstall] <- track
	}
	tui.Lot("process").Close()
}

// installer moves the track to its final destination
func (pipeline *pipeline) routineInstall(_ context.Context, _ chan error) {
	for event := range routineQueues[routineTypeInstall] {
		var (
			track     = event.(*entity.Track)
			status, _ = indexData.Get(track)
			final     = track.Path().Final(pipeline.library)
		)
		tui.Lot("install").Printf("%s", track)
		if err := util.FileMoveOrCopy(track.Path().Download(), final, status == index.Flush); err != nil {
			tui.AnchorPrintf("installation failed for %s: %s", track, err)
			continue
		}
		tui.Lot("install").Wipe()
		indexData.Set(track, index.Installed)
		logrus.WithFields(logrus.Fields{"track": track.ID, "path": final}).Info("track installed")
	}
	tui.Lot("install").Close(fmt.Sprintf("%d tracks", indexData.Size(index.Installed)))
}
