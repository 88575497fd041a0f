package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// YouTubeDlTimeout bounds a single yt-dlp invocation
var YouTubeDlTimeout = 10 * time.Minute

// YouTubeDl extracts the audio track of the video at url into path,
// the audio format being inferred from the path extension
func YouTubeDl(ctx context.Context, url, path string) error {
	ctx, cancel := context.WithTimeout(ctx, YouTubeDlTimeout)
	defer cancel()

	var (
		output bytes.Buffer
		ext    = strings.TrimPrefix(filepath.Ext(path), ".")
		stem   = strings.TrimSuffix(path, filepath.Ext(path))
		cmd    = exec.CommandContext(ctx, "yt-dlp",
			"--format", "bestaudio",
			"--extract-audio",
			"--audio-format", ext,
			"--audio-quality", "0",
			"--output", stem+".%(ext)s",
			"--continue",
			"--no-overwrites",
			"--no-playlist",
			"--retry-sleep", "exp=1::2",
			url,
		)
	)
	if len(ext) == 0 {
		return errors.New("cannot infer audio format from " + path)
	}

	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.New(strings.TrimSpace(output.String()))
	}
	return nil
}
