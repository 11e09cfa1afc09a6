package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/sample"
	"github.com/spf13/cobra"
)

var sampleSize int

func init() {
	sampleCmd.Flags().IntVarP(&sampleSize, "notes", "n", constants.SampleSize, "notes to keep")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample FILE FROM OUT",
	Short: "Cuts a short excerpt out of a score file",
	Long:  `Saves the first notes starting at tick FROM as a new score file.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		from, err := strconv.ParseFloat(args[1], 64)
		cobra.CheckErr(err)

		s, opts, err := file.Load(args[0])
		cobra.CheckErr(err)

		path, warnings, err := file.Save(args[2], sample.Create(s, from, sampleSize), opts)
		printWarnings(path, warnings)
		cobra.CheckErr(err)
		fmt.Printf("Wrote %v\n", path)
	},
}
