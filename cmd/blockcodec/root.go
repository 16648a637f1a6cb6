package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "blockcodec",
	Short: "compress and decompress streams with deflate, gzip, zlib, lzhuf or bzip2",
	Long: `blockcodec is a small front end over the blockcodec library: one
subcommand per codec, each accepting -d to decompress (the default is
to compress) and reading/writing stdin/stdout unless a file is named.`,
}

func init() {
	rootCmd.AddCommand(deflateCmd, gzipCmd, zlibCmd, lzhufCmd, bzip2Cmd)
}
