package cmd

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
)

func TestYouTubeDl(t *testing.T) {
	defer gomonkey.ApplyMethodReturn(&exec.Cmd{}, "Run", nil).Reset()
	assert.Nil(t, YouTubeDl(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "/tmp/track.mp3"))
}

func TestYouTubeDlFailure(t *testing.T) {
	defer gomonkey.ApplyMethodReturn(&exec.Cmd{}, "Run", errors.New("exit status 1")).Reset()
	assert.NotNil(t, YouTubeDl(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "/tmp/track.mp3"))
}

func TestYouTubeDlNoExtension(t *testing.T) {
	assert.EqualError(t,
		YouTubeDl(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "/tmp/track"),
		"cannot infer audio format from /tmp/track")
}
