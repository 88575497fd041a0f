package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ppartarr/songfiler/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	cmdRoot.AddCommand(cmdOrganize())
}

func cmdOrganize() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <origin> [destination]",
		Short: "Move a library tree into another library",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				origin      = args[0]
				destination = cfg.Library
				overwrite   = util.ErrWrap(false)(cmd.Flags().GetBool("overwrite"))
			)
			if len(args) > 1 {
				destination = args[1]
			}

			moved, err := organizeLibrary(origin, destination, overwrite)
			tui.Lot("organize").Close(fmt.Sprintf("%d tracks", moved))
			return err
		},
	}
	cmd.Flags().BoolP("overwrite", "f", false, "Replace songs already in the destination")
	return cmd
}

// organizeLibrary moves every <artist>/<album>/<song> file found under
// origin to the same relative path under destination, then prunes the
// directories left empty in origin. Songs already in the destination
// are left in place unless overwrite is set
func organizeLibrary(origin, destination string, overwrite bool) (int, error) {
	var moved int
	if err := filepath.WalkDir(origin, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !checkExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		relative, err := filepath.Rel(origin, path)
		if err != nil {
			return err
		}
		if len(strings.Split(relative, string(filepath.Separator))) != 3 {
			logrus.WithField("path", path).Debug("not in an artist/album tree, skipping")
			return nil
		}

		tui.Lot("organize").Print(relative)
		if err := util.FileMoveOrCopy(path, filepath.Join(destination, relative), overwrite); err != nil {
			tui.AnchorPrintf("cannot move %s: %s", relative, err)
			return nil
		}
		moved++
		return nil
	}); err != nil {
		return moved, err
	}
	return moved, util.DirPrune(origin)
}
