package id3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyMp3(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "track.mp3")
	require.Nil(t, os.WriteFile(path, []byte{0xff, 0xfb, 0x90, 0x00}, 0o644))
	return path
}

func TestTag(t *testing.T) {
	path := emptyMp3(t)
	tag, err := Open(path, id3v2.Options{Parse: true})
	require.Nil(t, err)
	tag.SetTitle("One More Time")
	tag.SetArtist("Daft Punk")
	tag.SetAlbumArtist("Daft Punk")
	tag.SetAlbum("Discovery")
	tag.SetUnsynchronizedLyrics("One More Time", "one more time")
	tag.SetUnsynchronizedLyrics("One More Time", "one more time\nwe're gonna celebrate")
	tag.SetUpstreamURL("https://www.youtube.com/watch?v=first")
	tag.SetUpstreamURL("https://www.youtube.com/watch?v=FGBhQbmPwH8")
	tag.SetAttachedPicture([]byte{0xff, 0xd8, 0xff}, "image/jpeg")
	require.Nil(t, tag.Save())
	require.Nil(t, tag.Close())

	tag, err = Open(path, id3v2.Options{Parse: true})
	require.Nil(t, err)
	defer tag.Close()
	assert.Equal(t, "One More Time", tag.Title())
	assert.Equal(t, "Daft Punk", tag.Artist())
	assert.Equal(t, "Daft Punk", tag.AlbumArtist())
	assert.Equal(t, "Discovery", tag.Album())
	assert.Equal(t, "one more time\nwe're gonna celebrate", tag.UnsynchronizedLyrics())
	assert.Len(t, tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription")), 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=FGBhQbmPwH8", tag.UpstreamURL())
	assert.Len(t, tag.GetFrames(tag.CommonID("User defined text information frame")), 1)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, tag.AttachedPicture())
}

func TestTagEmpty(t *testing.T) {
	tag, err := Open(emptyMp3(t), id3v2.Options{Parse: true})
	require.Nil(t, err)
	defer tag.Close()
	assert.Empty(t, tag.UpstreamURL())
	assert.Empty(t, tag.UnsynchronizedLyrics())
	assert.Nil(t, tag.AttachedPicture())
}
