// Package index keeps track of the songs a library already holds,
// so that requesting them again does not download them twice.
package index

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhowden/tag"
	"github.com/ppartarr/songfiler/entity"
	"github.com/sirupsen/logrus"
)

const (
	Offline   = iota // found in the library
	Online           // requested, not installed yet
	Installed        // installed during the current run
	Flush            // found in the library, to be replaced
)

var extensions = map[string]bool{".mp3": true, ".flac": true, ".m4a": true, ".ogg": true, ".opus": true}

type Index struct {
	lock  sync.RWMutex
	data  map[string]int
	paths map[string]string
}

func New() *Index {
	return &Index{
		data:  make(map[string]int),
		paths: make(map[string]string),
	}
}

// Build walks the library and marks as Offline every song whose tags
// carry both artist and title
func (index *Index) Build(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		artist, title, err := read(path)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Debug("cannot index file")
			return nil
		}
		if artist == "" || title == "" {
			return nil
		}

		id := entity.ID(artist, title)
		index.lock.Lock()
		index.data[id] = Offline
		index.paths[id] = path
		index.lock.Unlock()
		return nil
	})
}

func read(path string) (string, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return "", "", err
	}
	return metadata.Artist(), metadata.Title(), nil
}

func (index *Index) Get(track *entity.Track) (int, bool) {
	index.lock.RLock()
	defer index.lock.RUnlock()
	status, ok := index.data[track.ID]
	return status, ok
}

// Path returns the location a library song was found at
func (index *Index) Path(track *entity.Track) (string, bool) {
	index.lock.RLock()
	defer index.lock.RUnlock()
	path, ok := index.paths[track.ID]
	return path, ok
}

func (index *Index) Set(track *entity.Track, status int) {
	index.lock.Lock()
	defer index.lock.Unlock()
	index.data[track.ID] = status
}

// Size returns the number of songs in any of the given statuses,
// or all of them if none is given
func (index *Index) Size(statuses ...int) int {
	index.lock.RLock()
	defer index.lock.RUnlock()
	if len(statuses) == 0 {
		return len(index.data)
	}

	counter := 0
	for _, status := range index.data {
		for _, wanted := range statuses {
			if status == wanted {
				counter++
				break
			}
		}
	}
	return counter
}
