package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/mki"
	"github.com/jsphweid/mki/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [DIR]",
	Short: "Creates a report",
	Long:  `Summarizes every score file in DIR (MKI_DIR by default).`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := constants.GetScoreDir()
		if len(args) == 1 {
			dir = args[0]
		}
		r, err := analyzeScores(dir)
		cobra.CheckErr(err)
		r.print(os.Stdout)
	},
}

type scoresReport struct {
	dir         string
	numFiles    int64
	numInvalid  int64
	numNotes    int64
	numColors   int64
	totalBytes  int64
	noteBytes   int64
	notesByFile []uint32
	maxTracks   int
	longestTick float64
}

func analyzeScores(dir string) (scoresReport, error) {
	report := scoresReport{dir: dir}

	paths, err := file.GatherScorePaths(dir)
	if err != nil {
		return report, err
	}

	for _, path := range paths {
		report.numFiles += 1
		stats, err := os.Stat(path)
		if err != nil {
			return report, err
		}
		report.totalBytes += stats.Size()

		s, _, err := file.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warn: %v\n", err)
			report.numInvalid += 1
			continue
		}
		report.numNotes += int64(len(s.Notes))
		report.numColors += int64(len(s.OnColors) + len(s.OffColors))
		report.noteBytes += int64(len(s.Notes) * mki.NoteRecordSize)
		report.notesByFile = append(report.notesByFile, uint32(len(s.Notes)))
		report.maxTracks = util.Max(report.maxTracks, s.Derived.TrackCount)
		report.longestTick = util.Max(report.longestTick, s.Derived.LastTick)
	}
	return report, nil
}

func (r scoresReport) print(w io.Writer) {
	fmt.Fprintf(w, "numFiles: %v\n", r.numFiles)
	fmt.Fprintf(w, "numInvalid: %v\n", r.numInvalid)
	fmt.Fprintf(w, "numNotes: %v\n", r.numNotes)
	fmt.Fprintf(w, "numNotes from files: %v\n", util.Sum(r.notesByFile))
	fmt.Fprintf(w, "numColors: %v\n", r.numColors)
	fmt.Fprintf(w, "totalBytes: %v\n", r.totalBytes)
	if r.totalBytes > 0 {
		fmt.Fprintf(w, "note data share of bytes: %v\n", float32(r.noteBytes)/float32(r.totalBytes))
	}
	fmt.Fprintf(w, "maxTracks: %v\n", r.maxTracks)
	fmt.Fprintf(w, "longest score (ticks): %v\n", r.longestTick)
	fmt.Fprintf(w, "dir: %v\n", filepath.Clean(r.dir))
}
