package commands

// Root command for Cobra CLI
// Registers the plot and folder subcommands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hyperboard",
	Short: "Hyperboard - step charts for metric histories",
	Long: `Hyperboard renders step-after line charts of metric histories to SVG and PNG,
optionally delivering them to a Telegram chat.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(folderCmd)
}
