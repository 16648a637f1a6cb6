package main

import (
	"io"

	"github.com/nicolaou-labs/blockcodec/deflate"
	"github.com/spf13/cobra"
)

var deflateFlags struct {
	decompress bool
	output     string
	lazy       int
}

var deflateCmd = &cobra.Command{
	Use:   "deflate [file]",
	Short: "compress or decompress a raw RFC 1951 deflate stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(inputArg(args))
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := createOutput(deflateFlags.output)
		if err != nil {
			return err
		}
		defer out.Close()

		if deflateFlags.decompress {
			r := deflate.NewReader(in)
			_, err := io.Copy(out, r)
			return err
		}

		var opts []deflate.Option
		if deflateFlags.lazy > 0 {
			opts = append(opts, deflate.WithLazyLevel(deflateFlags.lazy))
		}
		w := deflate.NewWriter(out, opts...)
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	f := deflateCmd.Flags()
	f.BoolVarP(&deflateFlags.decompress, "decompress", "d", false, "decompress instead of compress")
	f.StringVarP(&deflateFlags.output, "output", "o", "", "output file (default stdout)")
	f.IntVar(&deflateFlags.lazy, "lazy", 0, "lazy-matching lookahead depth (0 uses the package default)")
}
