package cmd

import (
	"fmt"

	"github.com/jsphweid/mki/model"
	"github.com/spf13/cobra"
)

var (
	importOpts    model.Options
	importPalette paletteFlags
)

func init() {
	addOptionFlags(importCmd, &importOpts)
	addPaletteFlags(importCmd, &importPalette)
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import MIDI [OUT]",
	Short: "Converts one MIDI file to a score file",
	Long: `Converts one MIDI file to a score file. OUT defaults to the MIDI file's
name with the .mki extension, in the current directory.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		out := scoreName(args[0])
		if len(args) == 2 {
			out = args[1]
		}
		path, err := convertFile(args[0], out, importOpts, importPalette)
		cobra.CheckErr(err)
		fmt.Printf("Wrote %v\n", path)
	},
}
