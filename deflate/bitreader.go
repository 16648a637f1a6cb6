package deflate

import "github.com/nicolaou-labs/blockcodec/bitio"

// BitReader exposes the decoder's underlying bit reader so container
// formats (gzip, zlib) can align to the next byte boundary and read their
// own trailer once the DEFLATE stream's final block has been consumed.
func (r *Reader) BitReader() *bitio.Reader { return r.br }
