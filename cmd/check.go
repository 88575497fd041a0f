package cmd

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	jsoniter "github.com/json-iterator/go"
	"github.com/ppartarr/songfiler/util"
	"github.com/spf13/cobra"
)

var checkExtensions = map[string]bool{".mp3": true, ".flac": true}

type goodFile struct {
	File   string `json:"file"`
	Artist string `json:"artist"`
	Album  string `json:"album_name"`
	Title  string `json:"title"`
}

type badFile struct {
	File    string   `json:"file"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type checkReport struct {
	GoodFiles []goodFile `json:"goodFiles"`
	BadFiles  []badFile  `json:"badFiles"`
}

func init() {
	cmdRoot.AddCommand(cmdCheck())
}

func cmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report library files with incomplete metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				library = util.ErrWrap("")(cmd.Flags().GetString("library"))
				output  = util.ErrWrap("")(cmd.Flags().GetString("output"))
			)
			if library == "" {
				library = cfg.Library
			}

			tui.Lot("check").Printf("%s", library)
			report, err := checkLibrary(library)
			if err != nil {
				return err
			}
			tui.Lot("check").Close()
			tui.Printf("%d good files, %d bad files", len(report.GoodFiles), len(report.BadFiles))

			var writer io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}
			encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(writer)
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		},
	}
	cmd.Flags().StringP("library", "l", "", "Library path (default from configuration)")
	cmd.Flags().StringP("output", "o", "", "Write the report to file instead of standard output")
	return cmd
}

// checkLibrary sorts every song under library into good and bad files,
// the latter lacking any of artist, title, album, lyrics or picture
func checkLibrary(library string) (checkReport, error) {
	report := checkReport{GoodFiles: []goodFile{}, BadFiles: []badFile{}}
	err := filepath.WalkDir(library, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !checkExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		metadata, err := readMetadata(path)
		if err != nil {
			report.BadFiles = append(report.BadFiles, badFile{File: path, Error: err.Error()})
			return nil
		}

		var missing []string
		for _, field := range []struct {
			name    string
			present bool
		}{
			{"artist", metadata.Artist() != ""},
			{"title", metadata.Title() != ""},
			{"album", metadata.Album() != ""},
			{"lyrics", metadata.Lyrics() != ""},
			{"picture", metadata.Picture() != nil && len(metadata.Picture().Data) > 0},
		} {
			if !field.present {
				missing = append(missing, field.name)
			}
		}
		if len(missing) > 0 {
			report.BadFiles = append(report.BadFiles, badFile{File: path, Missing: missing})
			return nil
		}
		report.GoodFiles = append(report.GoodFiles, goodFile{
			File:   path,
			Artist: metadata.Artist(),
			Album:  metadata.Album(),
			Title:  metadata.Title(),
		})
		return nil
	})
	return report, err
}

func readMetadata(path string) (tag.Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return tag.ReadFrom(file)
}
