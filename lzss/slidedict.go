// Package lzss implements the LZ77/LZSS sliding-dictionary matcher shared
// by deflate and lzhuf: a hashed-chain match finder with lazy evaluation
// on the encode side, and a back-reference window on the decode side.
package lzss

import "github.com/nicolaou-labs/blockcodec/internal/ring"

const (
	hashBits         = 16
	tabLen           = 1 << hashBits
	hashFrac         = 0x7A7C4F9F7A7C4F9F
	matchSearchCount = 256
)

// hashTab is a direct port of HashTab in
// original_source/src/lzss/slidedict.rs: a 64K-slot hash table whose
// 2-bit-per-slot flagTab tracks which of two "generations" a slot's entry
// belongs to, so the table can be aged out (gen_change) instead of
// cleared, without ever losing track of which entries are stale.
type hashTab struct {
	searchTab []uint16
	flagTab   []uint8
	length    int
}

func newHashTab() *hashTab {
	return &hashTab{
		searchTab: make([]uint16, tabLen),
		flagTab:   make([]uint8, tabLen/4),
	}
}

func (h *hashTab) genChange() {
	for i := range h.flagTab {
		h.flagTab[i] = (h.flagTab[i] & 0b0101_0101) << 1
	}
	h.length = 0
}

func hashOf(data []byte) int {
	hash := uint64(0)
	for _, d := range data {
		hash = (hash<<8 | hash>>56) ^ uint64(d)
	}
	return int((hash * hashFrac) >> (64 - hashBits))
}

func (h *hashTab) pushTab(hash int) {
	h.searchTab[hash] = uint16(h.length)
	h.flagTab[hash>>2] |= 1 << uint((hash&0b11)<<1)
	h.length++
	if h.length >= tabLen {
		h.genChange()
	}
}

// push records data's hash at the current position and returns the delta
// back to the previous occurrence of the same hash, if any is still live
// in either generation.
func (h *hashTab) push(data []byte) (int, bool) {
	hash := hashOf(data)
	f := (h.flagTab[hash>>2] >> uint((hash&0b11)<<1)) & 0b11
	var (
		ret int
		ok  bool
	)
	if f != 0 {
		p := int(h.searchTab[hash])
		if f&1 == 1 {
			ret = h.length - p
		} else {
			ret = tabLen + h.length - p
		}
		ok = true
	}
	h.pushTab(hash)
	return ret, ok
}

// MatchInfo describes one candidate back-reference found in the
// dictionary: Len bytes matched, Pos bytes back from the search anchor.
type MatchInfo struct {
	Len int
	Pos int
}

// Comparator ranks two candidate matches of otherwise acceptable length,
// so SearchDic can pick the cheaper one under a caller-specific cost
// model rather than always taking the longest. It returns a negative
// number if a is preferred over b, a positive number if b is preferred,
// and zero if the two tie. Ported from the pluggable
// `F: Fn(LzssCode, LzssCode) -> Ordering` comparison closure threaded
// through SlideDict in original_source/src/lzss/slidedict.rs (there
// applied via compare_match_info, which wraps both candidates as
// LzssCode::Reference before calling the closure) — DEFLATE, LZHUF's four
// window variants, and any other LZSS consumer each supply their own.
type Comparator func(a, b MatchInfo) int

// Greedy prefers the longest match, breaking ties in favor of the nearer
// (smaller Pos) candidate. This is DEFLATE's cost model: its length/
// distance Huffman tables are built after the fact from whatever the
// parse produces, so there is no per-candidate bit cost to weigh during
// matching, just "longest wins".
func Greedy(a, b MatchInfo) int {
	if a.Len != b.Len {
		return b.Len - a.Len
	}
	return a.Pos - b.Pos
}

// SlideDict is the sliding-window match finder: a circular byte buffer
// plus a circular buffer of hash-chain position deltas, both grounded on
// SlideDict in original_source/src/lzss/slidedict.rs.
type SlideDict struct {
	buf      *ring.Buffer[byte]
	pos      *ring.Buffer[int]
	maxPos   int
	minMatch int
	cmp      Comparator
	hashTab  *hashTab
	appendBuf []byte
}

// NewSlideDict creates a match finder with a bufSize-byte sliding window,
// matches capped at maxPos bytes back, a minimum match length of minMatch
// bytes (3 for DEFLATE and LZHUF alike), and cmp deciding, within one
// SearchDic call, whether a longer candidate replaces the current best.
func NewSlideDict(bufSize, maxPos, minMatch int, cmp Comparator) *SlideDict {
	return &SlideDict{
		buf:      ring.NewBuffer[byte](bufSize),
		pos:      ring.NewBuffer[int](bufSize),
		maxPos:   maxPos,
		minMatch: minMatch,
		cmp:      cmp,
		hashTab:  newHashTab(),
	}
}

func (s *SlideDict) pushPos(data []byte) {
	if d, ok := s.hashTab.push(data); ok {
		s.pos.Push(d)
	} else {
		s.pos.Push(s.maxPos + 1)
	}
}

// checkMatch walks the dictionary from two distances-behind-head
// (pos1, pos2) forward, byte by byte, wrapping at the circular buffer's
// physical boundary, counting how far they agree (capped at maxMatch).
func (s *SlideDict) checkMatch(pos1, pos2, maxMatch int) int {
	i1 := s.buf.RawIndex(pos1)
	i2 := s.buf.RawIndex(pos2)
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	rawLen := s.buf.RawLen()
	cap := rawLen - 1
	l := 0
	for l < maxMatch && s.buf.RawAt(i1) == s.buf.RawAt(i2) {
		l++
		if i2 == cap {
			i2 = i1 + 1
			i1 = 0
		} else {
			i1++
			i2++
		}
	}
	return l
}

// Append feeds more bytes into the dictionary: the sliding byte window and
// the hash chains both advance, minMatch-length windows at a time.
func (s *SlideDict) Append(data []byte) {
	s.buf.PushAll(data)
	mm := s.minMatch
	s.appendBuf = append(s.appendBuf, data...)
	if s.buf.Len() >= mm {
		for i := 0; i+mm <= len(s.appendBuf); i++ {
			s.pushPos(s.appendBuf[i : i+mm])
		}
	}
	if len(s.appendBuf) >= mm {
		bl := mm - 1
		copy(s.appendBuf[:bl], s.appendBuf[len(s.appendBuf)-mm+1:])
		s.appendBuf = s.appendBuf[:bl]
	}
}

// Seed primes the dictionary with preset-dictionary bytes: they become
// match history exactly as with Append, and the caller emits no codes for
// them (spec.md §12). NewEncoderWithDict does not call it; it feeds its
// dictionary through Append along with the input.
func (s *SlideDict) Seed(dict []byte) {
	s.Append(dict)
}

// SearchDic looks for the best back-reference for the input position offset
// bytes back from the current write head (offset 1 is the most recently
// appended byte, which checkMatch addresses as distance 0), searching at most matchSearchCount hash
// chain entries and capping the match length at maxMatch. Among
// candidates found in one call, s.cmp picks the preferred one: the
// existing best is kept whenever it's at least as long as the new
// candidate, or cmp still ranks it ahead of the new candidate; otherwise
// the new candidate takes over. Same keep-unless-beaten structure as
// search_dic's `info.and_then(...).or_else(...)` chain in
// original_source/src/lzss/slidedict.rs (cmp here uses the opposite sign
// convention from Ordering::Less there: a negative result means its first
// argument is preferred).
func (s *SlideDict) SearchDic(offset, maxMatch int) (MatchInfo, bool) {
	if offset < s.minMatch {
		return MatchInfo{}, false
	}
	posOffset := offset - s.minMatch
	if posOffset >= s.pos.Len() {
		return MatchInfo{}, false
	}
	pos := s.pos.At(posOffset)
	if maxMatch > offset {
		maxMatch = offset
	}

	var best MatchInfo
	found := false
	posCount := matchSearchCount - 1
	for pos <= s.maxPos && posCount > 0 {
		idx := posOffset + pos
		if idx >= s.pos.Len() {
			break
		}
		nlen := s.checkMatch(offset-1, offset-1+pos, maxMatch)
		cand := MatchInfo{Len: nlen, Pos: pos}
		if !found || (best.Len < nlen && s.cmp(best, cand) >= 0) {
			best, found = cand, true
		}
		if nlen == maxMatch {
			break
		}
		posCount--
		pos += s.pos.At(idx)
	}
	return best, found
}
