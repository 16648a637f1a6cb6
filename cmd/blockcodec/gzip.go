package main

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/gzip"
	"github.com/spf13/cobra"
)

var gzipFlags struct {
	decompress bool
	output     string
}

var gzipCmd = &cobra.Command{
	Use:   "gzip [file]",
	Short: "compress or decompress an RFC 1952 gzip stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(inputArg(args))
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := createOutput(gzipFlags.output)
		if err != nil {
			return err
		}
		defer out.Close()

		if gzipFlags.decompress {
			r, err := gzip.NewReader(in)
			if err != nil {
				return err
			}
			_, err = io.Copy(out, r)
			return err
		}

		w := gzip.NewWriter(out)
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	f := gzipCmd.Flags()
	f.BoolVarP(&gzipFlags.decompress, "decompress", "d", false, "decompress instead of compress")
	f.StringVarP(&gzipFlags.output, "output", "o", "", "output file (default stdout)")
}
