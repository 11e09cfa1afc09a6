package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/midi"
	"github.com/jsphweid/mki/model"
	"github.com/jsphweid/mki/util"
	"github.com/spf13/cobra"
)

var (
	convertOpts    model.Options
	convertPalette paletteFlags
)

func init() {
	addOptionFlags(convertCmd, &convertOpts)
	addPaletteFlags(convertCmd, &convertPalette)
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [MAX]",
	Short: "Converts MIDI files to score files",
	Long: `Converts every MIDI file under MEDIA_PATH into a score file in MKI_DIR.
An optional argument limits how many files are converted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			cobra.CheckErr(err)
			maxNum = arg1
		}

		Convert(maxNum)
	},
}

// Convert writes one score file per MIDI file and returns the paths written.
// Files that fail to parse are skipped.
func Convert(maxNum int) []string {
	outDir := constants.GetScoreDir()
	cobra.CheckErr(util.EnsureDir(outDir))

	paths, err := util.GatherAllMidiPaths(constants.GetMediaDir(), maxNum)
	cobra.CheckErr(err)

	var written []string
	for i, path := range paths {
		fmt.Printf("Processing %v of %v midi files\n", i+1, len(paths))
		out, err := convertFile(path, filepath.Join(outDir, scoreName(path)), convertOpts, convertPalette)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		written = append(written, out)
	}
	return written
}

func convertFile(in, out string, opts model.Options, p paletteFlags) (string, error) {
	s, err := midi.ReadScore(in)
	if err != nil {
		return "", err
	}
	if err := p.apply(s); err != nil {
		return "", err
	}
	path, warnings, err := file.Save(out, s, opts)
	printWarnings(path, warnings)
	return path, err
}

func scoreName(midiPath string) string {
	base := filepath.Base(midiPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + constants.FileExtension
}
