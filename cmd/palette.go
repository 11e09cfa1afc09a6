package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/palette"
	"github.com/spf13/cobra"
)

func init() {
	paletteCmd.AddCommand(paletteExportCmd)
	paletteCmd.AddCommand(paletteApplyCmd)
	rootCmd.AddCommand(paletteCmd)
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Reads or replaces the palettes of a score file",
}

var paletteExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Prints the palettes of a score file as YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, _, err := file.Load(args[0])
		cobra.CheckErr(err)
		cobra.CheckErr(palette.FromScore(s).Write(os.Stdout))
	},
}

var paletteApplyCmd = &cobra.Command{
	Use:   "apply FILE PALETTE",
	Short: "Replaces the palettes of a score file with a YAML palette",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s, opts, err := file.Load(args[0])
		cobra.CheckErr(err)

		p := paletteFlags{file: args[1]}
		cobra.CheckErr(p.apply(s))

		path, warnings, err := file.Save(args[0], s, opts)
		printWarnings(path, warnings)
		cobra.CheckErr(err)
		fmt.Printf("Updated %v\n", path)
	},
}
