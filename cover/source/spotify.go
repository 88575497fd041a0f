package source

import (
	"context"
	"fmt"

	"github.com/ppartarr/songfiler/cover"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyLimit    = 10
)

// Spotify reports the actual size of every album image it serves
type Spotify struct {
	client *spotify.Client
}

type SpotifyOption func(*spotifyOptions)

type spotifyOptions struct {
	tokenURL string
	apiURL   string
}

// WithSpotifyEndpoints points the source to other token and API endpoints
func WithSpotifyEndpoints(tokenURL, apiURL string) SpotifyOption {
	return func(options *spotifyOptions) {
		options.tokenURL, options.apiURL = tokenURL, apiURL
	}
}

// NewSpotify authenticates with the client credentials flow
// and fails if the credentials are refused
func NewSpotify(ctx context.Context, id, secret string, opts ...SpotifyOption) (*Spotify, error) {
	options := spotifyOptions{tokenURL: spotifyTokenURL}
	for _, opt := range opts {
		opt(&options)
	}

	if id == "" || secret == "" {
		return nil, fmt.Errorf("%w: spotify client id or secret missing", ErrCredentials)
	}

	config := &clientcredentials.Config{
		ClientID:     id,
		ClientSecret: secret,
		TokenURL:     options.tokenURL,
	}
	if _, err := config.Token(ctx); err != nil {
		return nil, fmt.Errorf("%w: spotify: %v", ErrCredentials, err)
	}

	var clientOptions []spotify.ClientOption
	if options.apiURL != "" {
		clientOptions = append(clientOptions, spotify.WithBaseURL(options.apiURL))
	}
	return &Spotify{spotify.New(config.Client(context.Background()), clientOptions...)}, nil
}

func (source *Spotify) Name() string {
	return "spotify"
}

func (source *Spotify) Close() error {
	return nil
}

func (source *Spotify) Search(ctx context.Context, album, artist string) ([]*cover.Candidate, error) {
	results, err := source.client.Search(ctx,
		fmt.Sprintf(`album:"%s" artist:"%s"`, album, artist),
		spotify.SearchTypeAlbum,
		spotify.Limit(spotifyLimit))
	if err != nil {
		return nil, err
	}
	if results.Albums == nil {
		return nil, nil
	}

	var (
		candidates []*cover.Candidate
		rank       int
	)
	for _, result := range results.Albums.Albums {
		if !source.matchesArtist(result.Artists, artist) {
			continue
		}
		for _, image := range result.Images {
			candidates = append(candidates, &cover.Candidate{
				URLs:     []string{image.URL},
				Width:    int(image.Width),
				Height:   int(image.Height),
				Format:   cover.JPEG,
				Quality:  cover.High,
				Rank:     cover.Ranked(rank),
				Source:   source.Name(),
				Reliable: image.Width > 0 && image.Height > 0,
			})
		}
		rank++
	}
	return candidates, nil
}

func (source *Spotify) matchesArtist(artists []spotify.SimpleArtist, artist string) bool {
	for _, candidate := range artists {
		if matches(candidate.Name, artist) {
			return true
		}
	}
	return false
}
