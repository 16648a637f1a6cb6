// Command blockcodec compresses and decompresses streams using the
// deflate, gzip, zlib, lzhuf and bzip2 packages, one subcommand per
// codec. Modeled on the teacher's cmd/pbzip2, trading its
// cloudeng.io/cmdutil/subcmd flag-struct convention for spf13/cobra,
// the CLI dependency named in the teacher's own go.mod.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
