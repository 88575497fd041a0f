package provider

import (
	"strings"
	"testing"

	"github.com/ppartarr/songfiler/entity"
	"github.com/ppartarr/songfiler/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func url(id string) string {
	return watchURL + id
}

func TestRankBetterWeight(t *testing.T) {
	var (
		rc   = DefaultWords().Context("Artist", "Song", false)
		good = RawHit{ID: "good", Title: "Artist - Song", Channel: "ArtistVEVO", Views: "2,000,000 views"}
	)
	assert.Equal(t, []string{url("good"), url("better")}, Rank(rc, []RawHit{
		{ID: "better", Title: "Artist - Song (Official Audio)", Channel: "Artist", Views: "1,000 views"},
		good,
	}))
	assert.Equal(t, []string{url("better"), url("good")}, Rank(rc, []RawHit{
		good,
		{ID: "better", Title: "Artist - Song (Official Audio)", Channel: "Artist", Views: "10,000 views"},
	}))
}

func TestRankDiscards(t *testing.T) {
	rc := DefaultWords().Context("Twenty One Pilots", "Heathens", false)
	assert.Equal(t, []string{url("match")}, Rank(rc, []RawHit{
		{ID: "noartist", Title: "Heathens", Channel: "Lyrics Channel", Views: "9,999,999 views"},
		{ID: "notitle", Title: "twenty one pilots - Stressed Out", Channel: "Fueled By Ramen", Views: "5 views"},
		{ID: "wrong", Title: "twenty one pilots - Heathens (Karaoke Version)", Channel: "Sing King", Views: "100 views"},
		{ID: "wrongchannel", Title: "twentyonepilots heathens", Channel: "Reaction Time", Views: "100 views"},
		{ID: "match", Title: "Heathens", Channel: "twenty one pilots", Views: "1 view"},
	}))
}

func TestRankWrongWordsInRequest(t *testing.T) {
	rc := DefaultWords().Context("Artist", "Song (Remix)", false)
	assert.Equal(t, "song", rc.Title)
	assert.NotContains(t, rc.Wrong, "remix")
	assert.Equal(t, []string{url("remix")}, Rank(rc, []RawHit{
		{ID: "remix", Title: "Artist - Song (Remix)", Channel: "Artist", Views: "10 views"},
	}))
}

func TestRankOkayFallback(t *testing.T) {
	rc := DefaultWords().Context("Artist", "Song", false)
	assert.Equal(t, []string{url("first"), url("second")}, Rank(rc, []RawHit{
		{ID: "first", Title: "Artist - Song (Music Video)", Channel: "Artist", Views: "1 view"},
		{ID: "second", Title: "Artist - Song [Official Music Video]", Channel: "Artist", Views: "100 views"},
	}))
	assert.Equal(t, []string{url("plain")}, Rank(rc, []RawHit{
		{ID: "video", Title: "Artist - Song (Music Video)", Channel: "Artist", Views: "100 views"},
		{ID: "plain", Title: "Artist - Song", Channel: "Artist", Views: "1 view"},
	}))
}

func TestRankPreferExplicit(t *testing.T) {
	hits := []RawHit{{ID: "clean", Title: "Artist - Song (Clean)", Channel: "Artist", Views: "10 views"}}
	assert.Empty(t, Rank(DefaultWords().Context("Artist", "Song", true), hits))
	assert.Equal(t, []string{url("clean")}, Rank(DefaultWords().Context("Artist", "Song", false), hits))
	assert.Equal(t, []string{url("clean")}, Rank(DefaultWords().Context("Artist", "Song (Clean)", true), hits))
}

func TestRankHugeViews(t *testing.T) {
	rc := DefaultWords().Context("Artist", "Song", false)
	assert.Equal(t, []string{url("better"), url("good")}, Rank(rc, []RawHit{
		{ID: "good", Title: "Artist - Song", Channel: "Artist", Views: "9,999,999,999,999,999 views"},
		{ID: "better", Title: "Artist - Song (Official Audio)", Channel: "Artist", Views: "99,999,999,999,999,999,999 views"},
	}))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(DefaultWords().Context("Artist", "Song", false), nil))
}

func TestWordsImmutable(t *testing.T) {
	words := DefaultWords()
	first := words.Context("Artist", "Song", true)
	for i := 0; i < 5; i++ {
		words.Context("Artist", "Song", true)
	}
	last := words.Context("Artist", "Song", true)
	assert.Equal(t, first.Wrong, last.Wrong)
	assert.Len(t, words.wrong, 15)
	assert.NotContains(t, words.wrong, "clean")

	kept := []string{"feat"}
	words = NewWords(nil, nil, nil, kept)
	kept[0] = "remix"
	assert.Equal(t, []string{"feat"}, words.Kept())
	assert.Equal(t, "song (feat. b)", words.Context("Artist", "Song (feat. B)", false).Title)
}

func TestRankFeaturing(t *testing.T) {
	track, err := entity.Parse("Post Malone - Sunflower feat. Swae Lee")
	require.Nil(t, err)
	require.Equal(t, "Sunflower (feat. Swae Lee)", track.Title)

	rc := DefaultWords().Context(track.Artist, track.Title, true)
	assert.Equal(t, "sunflower", rc.Title)
	assert.Equal(t, []string{url("audio"), url("vevo"), url("lyrics")}, Rank(rc, []RawHit{
		{ID: "vevo", Title: "Post Malone, Swae Lee - Sunflower (Spider-Man: Into the Spider-Verse)", Channel: "PostMaloneVEVO", Views: "900,000,000 views"},
		{ID: "audio", Title: "Sunflower ft. Swae Lee (Official Audio)", Channel: "Post Malone", Views: "2,000,000 views"},
		{ID: "lyrics", Title: "Post Malone - Sunflower (Lyrics) ft. Swae Lee", Channel: "Lyrics Hub", Views: "30,000,000 views"},
	}))
}

func TestRankNeverReturnsForeignArtist(t *testing.T) {
	var (
		rc   = DefaultWords().Context("The Band", "Song", false)
		hits = []RawHit{
			{ID: "a", Title: "The Band - Song", Channel: "x", Views: "1"},
			{ID: "b", Title: "Song", Channel: "theband", Views: "2"},
			{ID: "c", Title: "Song (Official Audio)", Channel: "Other", Views: "3"},
			{ID: "d", Title: "Other Band - Song", Channel: "Other", Views: "4"},
			{ID: "e", Title: "song by THE  BAND", Channel: "", Views: "5"},
		}
		byURL = make(map[string]RawHit)
	)
	for _, hit := range hits {
		byURL[url(hit.ID)] = hit
	}
	urls := Rank(rc, hits)
	assert.Len(t, urls, 3)
	for _, u := range urls {
		hit := byURL[u]
		assert.True(t, strings.Contains(normalize.Fold(hit.Title+hit.Channel), normalize.Fold(rc.Artist)))
	}
}
