package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/ppartarr/songfiler/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(t *testing.T, path, artist, title string) {
	require.Nil(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.Nil(t, os.WriteFile(path, []byte{0xff, 0xfb, 0x90, 0x00}, 0o644))
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.Nil(t, err)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(artist)
	tag.SetTitle(title)
	require.Nil(t, tag.Save())
	require.Nil(t, tag.Close())
}

func TestBuild(t *testing.T) {
	library := t.TempDir()
	tagged(t, filepath.Join(library, "Daft Punk", "Discovery", "One More Time.mp3"), "Daft Punk", "One More Time")
	tagged(t, filepath.Join(library, "Unknown", "untitled.mp3"), "", "Untitled")
	require.Nil(t, os.WriteFile(filepath.Join(library, "notes.txt"), []byte("not music"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(library, "broken.mp3"), []byte("x"), 0o644))

	index := New()
	assert.Nil(t, index.Build(library))
	assert.Equal(t, 1, index.Size())

	status, ok := index.Get(entity.New("daft punk", "One more time"))
	assert.True(t, ok)
	assert.Equal(t, Offline, status)

	path, ok := index.Path(entity.New("Daft Punk", "One More Time"))
	assert.True(t, ok)
	assert.Equal(t, "One More Time.mp3", filepath.Base(path))
}

func TestBuildMissingLibrary(t *testing.T) {
	assert.Nil(t, New().Build(filepath.Join(t.TempDir(), "missing")))
}

func TestSetSize(t *testing.T) {
	var (
		index = New()
		first = entity.New("Artist", "First")
	)
	index.Set(first, Online)
	index.Set(entity.New("Artist", "Second"), Installed)
	index.Set(entity.New("Artist", "Third"), Installed)
	assert.Equal(t, 3, index.Size())
	assert.Equal(t, 2, index.Size(Installed))
	assert.Equal(t, 3, index.Size(Online, Installed))

	_, ok := index.Get(entity.New("Artist", "Fourth"))
	assert.False(t, ok)
	index.Set(first, Installed)
	assert.Equal(t, 3, index.Size(Installed))
}
