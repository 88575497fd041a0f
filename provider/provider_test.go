package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ppartarr/songfiler/util/web"
	"github.com/stretchr/testify/assert"
)

type searcherMock struct {
	name string
	hits []RawHit
	err  error
}

func (mock searcherMock) Name() string {
	return mock.name
}

func (mock searcherMock) Search(context.Context, string) ([]RawHit, error) {
	return mock.hits, mock.err
}

func TestSearch(t *testing.T) {
	provider := New(DefaultWords(), false,
		searcherMock{name: "first", hits: []RawHit{
			{ID: "a", Title: "Artist - Song", Channel: "Artist", Views: "10"},
			{ID: "b", Title: "Artist - Song (Official Audio)", Channel: "Artist", Views: "20"},
		}},
		searcherMock{name: "second", hits: []RawHit{
			{ID: "a", Title: "Artist - Song", Channel: "Artist", Views: "999999999"},
			{ID: "c", Title: "Artist - Song", Channel: "Artist", Views: "5"},
		}},
		searcherMock{name: "broken", err: errors.New("quota exceeded")},
	)
	urls, err := provider.Search(context.Background(), "Artist", "Song")
	assert.Nil(t, err)
	assert.Equal(t, []string{url("b"), url("a"), url("c")}, urls)
}

func TestSearchFailure(t *testing.T) {
	provider := New(DefaultWords(), false,
		searcherMock{name: "first", err: errors.New("unreachable")},
		searcherMock{name: "second", err: errors.New("quota exceeded")},
	)
	urls, err := provider.Search(context.Background(), "Artist", "Song")
	assert.Nil(t, urls)

	var searchErr *SearchError
	assert.ErrorAs(t, err, &searchErr)
	assert.Equal(t, "Artist Song audio", searchErr.Query)
	assert.EqualError(t, errors.Unwrap(err), "quota exceeded")
}

func TestSearchNoResults(t *testing.T) {
	urls, err := New(DefaultWords(), false, searcherMock{name: "empty"}).
		Search(context.Background(), "Artist", "Song")
	assert.Nil(t, err)
	assert.Empty(t, urls)
}

func TestSearchRefusedCredentials(t *testing.T) {
	provider := New(DefaultWords(), false,
		searcherMock{name: "scraper", hits: []RawHit{{ID: "a", Title: "Artist - Song", Channel: "Artist", Views: "10"}}},
		searcherMock{name: "youtube-api", err: fmt.Errorf("%w: API key not valid", web.ErrCredentials)},
	)
	urls, err := provider.Search(context.Background(), "Artist", "Song")
	assert.Empty(t, urls)
	assert.ErrorIs(t, err, web.ErrCredentials)
	var searchErr *SearchError
	assert.ErrorAs(t, err, &searchErr)
}
