package main

import (
	"fmt"
	"io"

	"github.com/nicolaou-labs/blockcodec/lzhuf"
	"github.com/spf13/cobra"
)

var lzhufFlags struct {
	decompress bool
	output     string
	method     string
}

func parseLZHUFMethod(s string) (lzhuf.Method, error) {
	switch s {
	case "lh4":
		return lzhuf.LH4, nil
	case "lh5":
		return lzhuf.LH5, nil
	case "lh6":
		return lzhuf.LH6, nil
	case "lh7":
		return lzhuf.LH7, nil
	default:
		return 0, fmt.Errorf("unknown lzhuf method %q (want lh4, lh5, lh6 or lh7)", s)
	}
}

var lzhufCmd = &cobra.Command{
	Use:   "lzhuf [file]",
	Short: "compress or decompress an LZHUF (lh4/lh5/lh6/lh7) stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := parseLZHUFMethod(lzhufFlags.method)
		if err != nil {
			return err
		}

		in, err := openInput(inputArg(args))
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := createOutput(lzhufFlags.output)
		if err != nil {
			return err
		}
		defer out.Close()

		if lzhufFlags.decompress {
			r := lzhuf.NewReader(in, method)
			_, err := io.Copy(out, r)
			return err
		}

		w := lzhuf.NewWriter(out, method)
		if _, err := io.Copy(w, in); err != nil {
			return err
		}
		return w.Close()
	},
}

func init() {
	f := lzhufCmd.Flags()
	f.BoolVarP(&lzhufFlags.decompress, "decompress", "d", false, "decompress instead of compress")
	f.StringVarP(&lzhufFlags.output, "output", "o", "", "output file (default stdout)")
	f.StringVarP(&lzhufFlags.method, "method", "m", "lh5", "lzhuf variant: lh4, lh5, lh6 or lh7")
}
