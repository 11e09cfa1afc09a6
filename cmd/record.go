package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/model"
	"github.com/jsphweid/mki/record"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	recordPort       int
	recordTempo      int
	recordResolution int
	recordOpts       model.Options
	recordPalette    paletteFlags
)

func init() {
	recordCmd.Flags().IntVar(&recordPort, "port", 0, "MIDI in port number")
	recordCmd.Flags().IntVar(&recordTempo, "tempo", constants.DefaultTempo, "tempo in beats per minute")
	recordCmd.Flags().IntVar(&recordResolution, "resolution", 960, "ticks per quarter note")
	addOptionFlags(recordCmd, &recordOpts)
	addPaletteFlags(recordCmd, &recordPalette)
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record OUT",
	Short: "Records a score from a MIDI input",
	Long: `Listens on a MIDI in port and saves what is played to OUT.
The file is saved shortly after playing pauses and again on interrupt.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		startRecording(args[0])
	},
}

// recording saves the recorder's notes under one path. Saves are serialized
// since the debounced autosave runs on its own goroutine.
type recording struct {
	mu   sync.Mutex
	path string
	rec  *record.Recorder
	opts model.Options
	p    paletteFlags
}

func (r *recording) save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.rec.Score(nil, nil)
	if err := r.p.apply(s); err != nil {
		return err
	}
	path, warnings, err := file.Save(r.path, s, r.opts)
	printWarnings(path, warnings)
	if err != nil {
		return err
	}
	r.path = path
	fmt.Printf("Saved %v notes to %v\n", len(s.Notes), path)
	return nil
}

func startRecording(out string) {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(recordPort)
	if err != nil {
		fmt.Printf("can't find MIDI in port %v\n", recordPort)
		return
	}

	r := &recording{
		path: out,
		rec:  record.New(recordTempo, recordResolution),
		opts: recordOpts,
		p:    recordPalette,
	}
	debounced := debounce.New(2 * time.Second)
	autosave := func() {
		if err := r.save(); err != nil {
			fmt.Printf("ERROR: %s\n", err)
		}
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			r.rec.NoteStart(ch, key, timestampms)
		case msg.GetNoteEnd(&ch, &key):
			if r.rec.NoteEnd(ch, key, timestampms) {
				debounced(autosave)
			}
		default:
			// ignore
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	fmt.Printf("Recording from %v, interrupt to stop\n", in)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	stop()
	if held := r.rec.Held(); held > 0 {
		fmt.Printf("Dropping %v notes still held\n", held)
	}
	cobra.CheckErr(r.save())
}
