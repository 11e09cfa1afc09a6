package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mki",
	Short: "Reads and writes MKI score files",
	Long: `mki converts performances between MIDI and the MKI score format,
inspects and edits score palettes, and serves scores over HTTP.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
