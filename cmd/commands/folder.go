package commands

// Command to print the top-level folder name of a selection
// A directory argument is selected whole; otherwise arguments are relative paths

import (
	"fmt"
	"os"

	"hyperboard/internal/folder"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder <dir | relative/path...>",
	Short: "Print the top-level folder name of a selection",
	Long: `Print the name of the top-level folder of a selection. With a single existing
directory every file under it is selected; otherwise each argument is taken as a
'/'-separated relative path and the first one decides.`,
	RunE: runFolder,
}

func runFolder(cmd *cobra.Command, args []string) error {
	sel := folder.FromPaths(args...)
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			if sel, err = folder.SelectDir(args[0]); err != nil {
				return err
			}
		}
	}

	name, err := folder.ExtractTopFolderName(sel)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
