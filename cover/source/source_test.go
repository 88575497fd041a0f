package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/util/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server
}

func client() *web.Client {
	return web.New(web.WithRetries(0))
}

func TestMatches(t *testing.T) {
	assert.True(t, matches("Beyoncé", "beyonce"))
	assert.True(t, matches("AC/DC", "ACDC"))
	assert.True(t, matches("Calvin Harris & Dua Lipa", "Calvin Harris"))
	assert.False(t, matches("Metallica", "Megadeth"))
	assert.False(t, matches("", "Megadeth"))
}

func TestGuessFormat(t *testing.T) {
	assert.Equal(t, cover.PNG, guessFormat("https://lastfm.freetls.fastly.net/i/u/300x300/cover.png"))
	assert.Equal(t, cover.JPEG, guessFormat("https://images.genius.com/cover.300x300x1.JPG?v=2"))
	assert.Equal(t, cover.Unknown, guessFormat("https://images.test/cover"))
}

func TestLastFM(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "album.getinfo", r.URL.Query().Get("method"))
		assert.Equal(t, "key", r.URL.Query().Get("api_key"))
		switch r.URL.Query().Get("album") {
		case "Missing":
			fmt.Fprint(w, `{"error":6,"message":"Album not found"}`)
			return
		case "Suspended":
			fmt.Fprint(w, `{"error":26,"message":"Suspended API key"}`)
			return
		case "Forbidden":
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"album":{"name":"Discovery","image":[
			{"#text":"https://lastfm.test/34s/cover.png","size":"small"},
			{"#text":"","size":"large"},
			{"#text":"https://lastfm.test/300x300/cover.png","size":"extralarge"},
			{"#text":"https://lastfm.test/cover.png","size":""}
		]}}`)
	})

	_, err := NewLastFM(client(), "")
	assert.ErrorIs(t, err, ErrCredentials)

	source, err := NewLastFM(client(), "key")
	require.Nil(t, err)
	source.SetBaseURL(server.URL)

	candidates, err := source.Search(context.Background(), "Discovery", "Daft Punk")
	assert.Nil(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, 34, candidates[0].Width)
	assert.Equal(t, 300, candidates[1].Height)
	assert.Equal(t, cover.PNG, candidates[1].Format)
	assert.False(t, candidates[1].Reliable)
	assert.Nil(t, candidates[1].Rank)
	assert.Equal(t, "lastfm", candidates[1].Source)

	candidates, err = source.Search(context.Background(), "Missing", "Daft Punk")
	assert.Nil(t, err)
	assert.Empty(t, candidates)

	_, err = source.Search(context.Background(), "Suspended", "Daft Punk")
	assert.ErrorIs(t, err, ErrCredentials)
	_, err = source.Search(context.Background(), "Forbidden", "Daft Punk")
	assert.ErrorIs(t, err, ErrCredentials)
}

func TestITunes(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Daft Punk Discovery", r.URL.Query().Get("term"))
		assert.Equal(t, "album", r.URL.Query().Get("entity"))
		fmt.Fprint(w, `{"resultCount":3,"results":[
			{"artistName":"Daft Punk","collectionName":"Discovery","artworkUrl100":"https://is1.test/image/100x100bb.jpg"},
			{"artistName":"Cover Band","collectionName":"Discovery","artworkUrl100":"https://is1.test/other/100x100bb.jpg"},
			{"artistName":"Daft Punk","collectionName":"Discovery (Deluxe)","artworkUrl100":"https://is1.test/deluxe/100x100bb.jpg"}
		]}`)
	})

	source := NewITunes(client(), 600)
	source.SetBaseURL(server.URL)
	candidates, err := source.Search(context.Background(), "Discovery", "Daft Punk")
	assert.Nil(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, []string{"https://is1.test/image/600x600bb.jpg"}, candidates[0].URLs)
	assert.Equal(t, 0, *candidates[0].Rank)
	assert.Equal(t, 1, *candidates[1].Rank)
	assert.Equal(t, 600, candidates[1].Width)
}

func TestDeezer(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `artist:"Daft Punk" album:"Discovery"`, r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"data":[
			{"title":"Discovery","cover_xl":"https://deezer.test/1000x1000.jpg","artist":{"name":"Daft Punk"}},
			{"title":"Discovery","cover_xl":"https://deezer.test/other.jpg","artist":{"name":"Someone Else"}}
		],"total":2}`)
	})

	source := NewDeezer(client())
	source.SetBaseURL(server.URL)
	candidates, err := source.Search(context.Background(), "Discovery", "Daft Punk")
	assert.Nil(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, 1000, candidates[0].Width)
	assert.Equal(t, cover.Normal, candidates[0].Quality)
}

func TestDeezerError(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":{"type":"Exception","message":"Quota limit exceeded","code":4}}`)
	})

	source := NewDeezer(client())
	source.SetBaseURL(server.URL)
	_, err := source.Search(context.Background(), "Discovery", "Daft Punk")
	assert.EqualError(t, err, "deezer Exception: Quota limit exceeded")
}

func TestGenius(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"response":{"hits":[
			{"result":{"song_art_image_url":"https://images.genius.test/a.300x300x1.jpg","primary_artist":{"name":"Daft Punk"}}},
			{"result":{"song_art_image_url":"https://images.genius.test/a.300x300x1.jpg","primary_artist":{"name":"Daft Punk"}}},
			{"result":{"song_art_image_url":"https://images.genius.test/b.300x300x1.png","primary_artist":{"name":"Daft Punk"}}}
		]}}`)
	})

	_, err := NewGenius(client(), "")
	assert.ErrorIs(t, err, ErrCredentials)

	source, err := NewGenius(web.New(web.WithRetries(0), web.WithAuthToken("token")), "token")
	require.Nil(t, err)
	source.SetBaseURL(server.URL)
	candidates, err := source.Search(context.Background(), "Discovery", "Daft Punk")
	assert.Nil(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, cover.Low, candidates[0].Quality)
	assert.Equal(t, cover.PNG, candidates[1].Format)

	unauthorized, err := NewGenius(client(), "wrong")
	require.Nil(t, err)
	unauthorized.SetBaseURL(server.URL)
	_, err = unauthorized.Search(context.Background(), "Discovery", "Daft Punk")
	assert.ErrorIs(t, err, ErrCredentials)
}

func TestSpotify(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token":
			if _, secret, _ := r.BasicAuth(); secret != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":"invalid_client"}`)
				return
			}
			fmt.Fprint(w, `{"access_token":"token","token_type":"bearer","expires_in":3600}`)
		case "/v1/search":
			assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
			assert.Equal(t, "album", r.URL.Query().Get("type"))
			fmt.Fprint(w, `{"albums":{"items":[
				{"name":"Discovery","artists":[{"name":"Daft Punk"}],"images":[
					{"url":"https://i.scdn.test/640","width":640,"height":640},
					{"url":"https://i.scdn.test/300","width":300,"height":300}
				]},
				{"name":"Discovery","artists":[{"name":"Tribute"}],"images":[
					{"url":"https://i.scdn.test/tribute","width":640,"height":640}
				]}
			]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	_, err := NewSpotify(context.Background(), "id", "wrong", WithSpotifyEndpoints(server.URL+"/token", server.URL+"/v1/"))
	assert.ErrorIs(t, err, ErrCredentials)
	_, err = NewSpotify(context.Background(), "", "", WithSpotifyEndpoints(server.URL+"/token", server.URL+"/v1/"))
	assert.ErrorIs(t, err, ErrCredentials)

	source, err := NewSpotify(context.Background(), "id", "secret", WithSpotifyEndpoints(server.URL+"/token", server.URL+"/v1/"))
	require.Nil(t, err)
	candidates, err := source.Search(context.Background(), "Discovery", "Daft Punk")
	assert.Nil(t, err)
	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].Reliable)
	assert.Equal(t, cover.High, candidates[0].Quality)
	assert.Equal(t, 640, candidates[0].Width)
	assert.Equal(t, 300, candidates[1].Height)
	assert.Equal(t, *candidates[0].Rank, *candidates[1].Rank)
	assert.Nil(t, source.Close())
}
