package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/model"
	"github.com/spf13/cobra"
)

var inspectNotes bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectNotes, "notes", false, "list every note")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Inspects a score file",
	Long:  `Prints the options, palettes and note summary of a score file.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, opts, err := file.Load(args[0])
		cobra.CheckErr(err)
		inspect(os.Stdout, s, opts, inspectNotes)
	},
}

func inspect(w io.Writer, s *model.Score, opts model.Options, notes bool) {
	fmt.Fprintf(w, "options: colorByPart=%v drawLine=%v songTime=%v invertColor=%v\n",
		opts.ColorByPart, opts.DrawLine, opts.SongTime, opts.InvertColor)
	fmt.Fprintf(w, "notes: %v\n", len(s.Notes))
	fmt.Fprintf(w, "tracks: %v\n", s.Derived.TrackCount)
	fmt.Fprintf(w, "pitch: %v-%v\n", s.Derived.PitchMin, s.Derived.PitchMax)
	fmt.Fprintf(w, "last tick: %v\n", s.Derived.LastTick)

	for i, c := range s.OnColors {
		fmt.Fprintf(w, "on  %2d: %s\n", i, swatch(c))
	}
	for i, c := range s.OffColors {
		fmt.Fprintf(w, "off %2d: %s\n", i, swatch(c))
	}

	if !notes {
		return
	}
	for i, n := range s.Notes {
		fmt.Fprintf(w, "%5d: track %3d tempo %5d x %10.2f duration %8.2f y %3d\n",
			i, n.Track, n.Tempo, n.X, n.Duration, n.Y)
	}
}
