package main

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/zlib"
	"github.com/spf13/cobra"
)

var zlibFlags struct {
	decompress bool
	output     string
}

var zlibCmd = &cobra.Command{
	Use:   "zlib [file]",
	Short: "compress or decompress an RFC 1950 zlib stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(inputArg(args))
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := createOutput(zlibFlags.output)
		if err != nil {
			return err
		}
		defer out.Close()

		if zlibFlags.decompress {
			r, err := zlib.NewReader(in)
			if err != nil {
				return err
			}
			_, err = io.Copy(out, r)
			return err
		}

		w, err := zlib.NewWriter(out)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	f := zlibCmd.Flags()
	f.BoolVarP(&zlibFlags.decompress, "decompress", "d", false, "decompress instead of compress")
	f.StringVarP(&zlibFlags.output, "output", "o", "", "output file (default stdout)")
}
