package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nicolaou-labs/blockcodec/bzip2"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
)

var bzip2Flags struct {
	decompress bool
	output     string
	level      int
	progress   bool
	verbose    bool
}

// runProgressBar drains ch onto a byte-count progress bar, advancing it
// by each completed block's reported Size (the decoded bytes when
// decompressing, the block's RLE1-encoded length when compressing), until
// the channel is closed. Grounded on progressBar in the teacher's cmd/pbzip2/main.go;
// size is the known total to scale the bar against, or 0 if unknown
// (stdin input, where the bar falls back to an unscaled counter).
func runProgressBar(ch <-chan bzip2.Progress, size int64) {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetBytes64(size),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(size > 0))
	bar.RenderBlank()
	for p := range ch {
		bar.Add(p.Size)
	}
	fmt.Fprintln(os.Stderr)
}

var bzip2Cmd = &cobra.Command{
	Use:   "bzip2 [file]",
	Short: "compress or decompress a bzip2 stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(inputArg(args))
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := createOutput(bzip2Flags.output)
		if err != nil {
			return err
		}
		defer out.Close()

		var opts []bzip2.Option
		if bzip2Flags.verbose {
			opts = append(opts, bzip2.Verbose(log.New(os.Stderr, "bzip2: ", 0)))
		}

		var progressCh chan bzip2.Progress
		if bzip2Flags.progress {
			var size int64
			if f, ok := in.(*os.File); ok {
				if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
					size = info.Size()
				}
			}

			progressCh = make(chan bzip2.Progress, 8)
			opts = append(opts, bzip2.WithProgress(progressCh))
			done := make(chan struct{})
			go func() {
				runProgressBar(progressCh, size)
				close(done)
			}()
			defer func() {
				close(progressCh)
				<-done
			}()
		}

		if bzip2Flags.decompress {
			r := bzip2.NewDecoder(in, opts...)
			_, err := io.Copy(out, r)
			return err
		}

		opts = append(opts, bzip2.WithBlockSize(bzip2Flags.level))
		w := bzip2.NewEncoder(out, opts...)
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	f := bzip2Cmd.Flags()
	f.BoolVarP(&bzip2Flags.decompress, "decompress", "d", false, "decompress instead of compress")
	f.StringVarP(&bzip2Flags.output, "output", "o", "", "output file (default stdout)")
	f.IntVarP(&bzip2Flags.level, "level", "l", 9, "block size level, 1-9 (100k-900k bytes per block)")
	f.BoolVar(&bzip2Flags.progress, "progress", false, "display a block-progress bar on stderr")
	f.BoolVarP(&bzip2Flags.verbose, "verbose", "v", false, "log per-block trace information")
}
