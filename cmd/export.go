package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/midi"
	"github.com/jsphweid/mki/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export FILE OUT",
	Short: "Writes the notes of a score file as a MIDI file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s, _, err := file.Load(args[0])
		cobra.CheckErr(err)
		cobra.CheckErr(exportMidi(args[1], s))
		fmt.Printf("Wrote %v\n", args[1])
	},
}

func exportMidi(path string, s *model.Score) error {
	for _, i := range midi.Unexportable(s) {
		fmt.Fprintf(os.Stderr, "warn: %s: note %d: pitch %d is not a MIDI key, skipped\n", path, i, s.Notes[i].Y)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	if err := midi.WriteScore(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
