package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const cacheDirName = "songfiler"

// characters that cannot (or should not) end up in
// file names, some mapped to a similar-looking valid one
var legalizeMap = map[rune]string{
	'$':  "S",
	'/':  " ",
	'#':  "",
	'%':  "",
	'&':  "and",
	'\\': " ",
	'<':  "",
	'>':  "",
	'*':  "",
	'?':  "",
	'!':  "",
	'\'': "",
	'"':  "",
	':':  "",
	'@':  "",
	'+':  "and",
	'`':  "",
	'|':  " ",
	'=':  "",
	'{':  "",
	'}':  "",
}

// LegalizeFilename maps the given name into one that can be used
// as a single path component: do not pass whole paths in,
// slashes are translated as well
func LegalizeFilename(name string) string {
	var builder strings.Builder
	for _, char := range name {
		if replacement, ok := legalizeMap[char]; ok {
			builder.WriteString(replacement)
			continue
		}
		builder.WriteRune(char)
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// CacheDirectory returns the application cache directory
func CacheDirectory() string {
	return filepath.Join(xdg.CacheHome, cacheDirName)
}

// CacheFile returns a path for the given name inside the cache
// directory, falling back to the system temporary directory
func CacheFile(name string) string {
	path, err := xdg.CacheFile(filepath.Join(cacheDirName, name))
	if err != nil {
		return filepath.Join(os.TempDir(), name)
	}
	return path
}

// FileBaseStem returns the base name of the path, without extension
func FileBaseStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileExists reports whether the path exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FileMoveOrCopy moves source to target, falling back to copy and delete
// when a rename is not possible (e.g. across devices).
// If overwrite is false and target exists, os.ErrExist is returned
func FileMoveOrCopy(source, target string, overwrite bool) error {
	if !overwrite && FileExists(target) {
		return fmt.Errorf("%s: %w", target, os.ErrExist)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	if err := os.Rename(source, target); err == nil {
		return nil
	}

	if err := FileCopy(source, target); err != nil {
		return err
	}
	return os.Remove(source)
}

// FileCopy copies source contents to target, truncating it
func FileCopy(source, target string) (err error) {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}

// DirPrune removes every empty directory under root, root excluded
func DirPrune(root string) error {
	var dirs []string
	if err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	}); err != nil {
		return err
	}

	// deepest first
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			if err := os.Remove(dirs[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
