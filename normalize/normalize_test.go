package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveJunk(t *testing.T) {
	assert.Equal(t, "Song (feat. Artist B)", RemoveJunk("Song (feat. Artist B)", LyricsKeptWords))
	assert.Equal(t, "Song", RemoveJunk("Song (From Movie Soundtrack)", LyricsKeptWords))
	assert.Equal(t, "Song", RemoveJunk("Song (feat. Artist B)", nil))
	assert.Equal(t, "Song (INSTRUMENTAL)", RemoveJunk("Song (INSTRUMENTAL)", LyricsKeptWords))
	assert.Equal(t, "Song", RemoveJunk("Song | Official Video", nil))
	assert.Equal(t, "(Untitled)", RemoveJunk("(Untitled)", nil))
	assert.Equal(t, "Song (", RemoveJunk("Song (", nil))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Song (feat. B)", Format("Song [feat. B]"))
	assert.Equal(t, "Song (feat. B)", Format("Song(feat. B)"))
	assert.Equal(t, "Song (feat. B)", Format("Song (FEAT B)"))
	assert.Equal(t, "Song (feat. B)", Format("Song (featuring B)"))
	assert.Equal(t, "Song (feat. B)", Format("Song (with B)"))
	assert.Equal(t, "Song (feat. B)", Format("Song feat. B"))
	assert.Equal(t, "Song (feat. B)", Format("Song ft. B"))
	assert.Equal(t, "Song (Remastered) [2011]", Format("Song (Remastered) [2011]"))
}

func TestCensorship(t *testing.T) {
	assert.Equal(t, "Fuck You", Uncensor("F*ck You"))
	assert.Equal(t, "no shit", Uncensor("no sh*t"))
	assert.Equal(t, "F*ck you", Censor("Fuck you"))
	assert.Equal(t, "assassin", Censor("assassin"))
	assert.Equal(t, "nothing to hide", Censor("nothing to hide"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "twentyonepilots", Fold("Twenty One  Pilots"))
	assert.Equal(t, "ac/dc", Fold("AC/DC"))
}

func TestComparable(t *testing.T) {
	assert.Equal(t, "beyonce", Comparable("Beyoncé"))
	assert.Equal(t, "acdc back in black", Comparable("AC/DC:  Back in Black!"))
	assert.Equal(t, "sigur ros", Comparable("Sigur Rós"))
}
