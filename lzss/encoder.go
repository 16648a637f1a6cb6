package lzss

// Code is one parsed LZSS symbol: either a literal byte, or a
// length/distance back-reference into the already-emitted output.
type Code struct {
	Literal  byte
	IsRef    bool
	Length   int
	Distance int
}

// Encoder turns a byte stream into a sequence of Codes using a sliding
// dictionary and lazy matching, grounded on LzssEncoder::encode in
// original_source/src/lzss/encoder.rs: at each position, search for a
// match, then before committing, try the next lazyLevel-1 positions and
// take whichever produces the longest match (emitting the skipped bytes
// as literals).
type Encoder struct {
	dict     *SlideDict
	lazy     int
	minMatch int
	maxLen   int

	buf        []byte
	cursor     int
	headPushed int
}

// NewEncoder creates an encoder with an LZ window of 1<<windowBits bytes,
// matches capped at maxDistance bytes back and maxLen bytes long, a
// minimum match length of minMatch, lazyLevel positions of lookahead
// before committing to a match (lazyLevel=1 disables lazy evaluation),
// and cmp deciding, within a single SearchDic call, whether a longer
// candidate replaces the current best (equal-length candidates never do).
func NewEncoder(windowBits, maxDistance, minMatch, maxLen, lazyLevel int, cmp Comparator) *Encoder {
	if lazyLevel < 1 {
		lazyLevel = 1
	}
	return &Encoder{
		dict:     NewSlideDict(1<<uint(windowBits), maxDistance, minMatch, cmp),
		lazy:     lazyLevel,
		minMatch: minMatch,
		maxLen:   maxLen,
	}
}

// NewEncoderWithDict is like NewEncoder but seeds the window with a
// preset dictionary: back-references may point into dict, but dict's
// bytes are never themselves emitted as codes (spec.md §12).
func NewEncoderWithDict(windowBits, maxDistance, minMatch, maxLen, lazyLevel int, cmp Comparator, dict []byte) *Encoder {
	e := NewEncoder(windowBits, maxDistance, minMatch, maxLen, lazyLevel, cmp)
	e.buf = append(e.buf, dict...)
	e.cursor = len(dict)
	return e
}

// Write appends more input to be encoded by the next Encode call.
func (e *Encoder) Write(p []byte) {
	e.buf = append(e.buf, p...)
}

func (e *Encoder) pump(upTo int) {
	if upTo > e.headPushed {
		e.dict.Append(e.buf[e.headPushed:upTo])
		e.headPushed = upTo
	}
}

func (e *Encoder) search(at int) (MatchInfo, bool) {
	total := len(e.buf)
	offset := total - at
	maxMatch := total - at
	if maxMatch > e.maxLen {
		maxMatch = e.maxLen
	}
	return e.dict.SearchDic(offset, maxMatch)
}

// Encode parses as much of the buffered input as is currently safe to
// commit to output. When flush is false, the final minMatch-1 bytes are
// held back (more input may still extend a pending match); when flush is
// true (end of stream), everything buffered is parsed.
func (e *Encoder) Encode(flush bool) []Code {
	total := len(e.buf)
	e.pump(total)

	limit := total
	if !flush {
		limit = total - (e.minMatch - 1)
		if limit < 0 {
			limit = 0
		}
	}

	var codes []Code
	for e.cursor < limit {
		m, ok := e.search(e.cursor)
		if !ok || m.Len < e.minMatch {
			codes = append(codes, Code{Literal: e.buf[e.cursor]})
			e.cursor++
			continue
		}

		bestLen, bestPos, advance := m.Len, m.Pos, 1
		for step := 1; step < e.lazy && e.cursor+step < limit; step++ {
			m2, ok2 := e.search(e.cursor + step)
			if ok2 && m2.Len >= e.minMatch && m2.Len > bestLen {
				bestLen, bestPos, advance = m2.Len, m2.Pos, step+1
			}
		}

		for i := 0; i < advance-1; i++ {
			codes = append(codes, Code{Literal: e.buf[e.cursor+i]})
		}
		e.cursor += advance - 1
		codes = append(codes, Code{IsRef: true, Length: bestLen, Distance: bestPos})
		e.cursor += bestLen
	}

	if flush {
		e.buf = nil
		e.cursor = 0
		e.headPushed = 0
	} else if e.cursor > 0 {
		// Keep the unconsumed tail so buf doesn't grow without bound;
		// the sliding dictionary itself (not buf) holds the match
		// history, so trimming buf loses no matchable context.
		e.buf = append([]byte(nil), e.buf[e.cursor:]...)
		e.headPushed -= e.cursor
		e.cursor = 0
	}
	return codes
}
