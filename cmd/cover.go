package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/ppartarr/songfiler/cover"
	"github.com/ppartarr/songfiler/downloader"
	"github.com/ppartarr/songfiler/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	cmdRoot.AddCommand(cmdCover())
}

func cmdCover() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover <artist> <album>",
		Short: "Look for the cover art of an album",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				artist, album = args[0], args[1]
				output        = util.ErrWrap("")(cmd.Flags().GetString("output"))
				ctx           = cmd.Context()
				artwork       = newArtworkProcessor(cfg)
			)
			if output == "" {
				output = util.LegalizeFilename(artist+" - "+album) + artwork.Format.Extension()
			}

			finder, err := newFinder(ctx, cfg, newCache(cfg))
			if err != nil {
				return err
			}

			tui.Lot("search").Printf("%s by %s", album, artist)
			candidates, err := finder.Rank(ctx, album, artist)
			if err != nil {
				return err
			}
			tui.Lot("search").Close(fmt.Sprintf("%d candidates", len(candidates)))
			renderCandidates(cmd.OutOrStdout(), candidates)

			tui.Lot("pick").Printf("downloading candidates")
			candidate, err := finder.Pick(ctx, candidates)
			if err != nil {
				return err
			}
			if candidate == nil {
				tui.Lot("pick").Close()
				tui.AnchorPrintf("no cover art found for %s by %s", album, artist)
				return nil
			}
			tui.Lot("pick").Close(candidate.String())

			if err := downloader.Write(output, candidate.Data, artwork); err != nil {
				return err
			}
			tui.Printf("cover art saved to %s", output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Path the cover art is saved to (default \"<artist> - <album>\" in the working directory)")
	return cmd
}

func renderCandidates(w io.Writer, candidates []*cover.Candidate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Source", "Size", "Format", "Quality", "Reliable", "URL"})
	table.SetAutoWrapText(false)
	table.AppendBulk(lo.Map(candidates, func(candidate *cover.Candidate, i int) []string {
		size := "?"
		if candidate.Width > 0 && candidate.Height > 0 {
			size = fmt.Sprintf("%dx%d", candidate.Width, candidate.Height)
		}
		url := candidate.URLs[0]
		if len(candidate.URLs) > 1 {
			url = fmt.Sprintf("%s (+%d tiles)", url, len(candidate.URLs)-1)
		}
		return []string{
			strconv.Itoa(i + 1),
			candidate.Source,
			size,
			strings.ToUpper(candidate.Format.String()),
			candidate.Quality.String(),
			strconv.FormatBool(candidate.Reliable),
			url,
		}
	}))
	table.Render()
}
