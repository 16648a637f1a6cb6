package deflate

// options configures an Encoder/Decoder, built via functional options —
// the same pattern the teacher uses for ScannerOption/DecompressorOption
// in _examples/cosnicolaou-pbzip2/scanner.go and parallel.go.
type options struct {
	dict  []byte
	lazy  int
}

// Option configures a Writer or Reader.
type Option func(*options)

func defaultOptions() *options {
	return &options{lazy: 4}
}

// WithDict seeds the encoder/decoder with a preset dictionary (spec.md
// §12's preset-dictionary support).
func WithDict(dict []byte) Option {
	return func(o *options) { o.dict = dict }
}

// WithLazyLevel sets the lazy-evaluation level passed to lzss.NewEncoder:
// the match finder tries n-1 further positions before committing to a
// match, and n=1 disables lazy matching. Default is 4.
func WithLazyLevel(n int) Option {
	return func(o *options) { o.lazy = n }
}
