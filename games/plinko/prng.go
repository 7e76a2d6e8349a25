package plinko

import "math"

// Xorshift32 is the 32-bit xorshift generator that drives a round. It holds a
// single register and must be owned by exactly one outcome computation; the
// peg field and the path draw from it in sequence.
type Xorshift32 struct {
	state uint32
}

// NewXorshift32 seeds the generator from the first 8 hex characters of seed.
// A zero or unparsable prefix falls back to state 1, since zero is a fixed
// point of xorshift.
func NewXorshift32(seed string) *Xorshift32 {
	s := parseSeedPrefix(seed)
	if s == 0 {
		s = 1
	}
	return &Xorshift32{state: s}
}

// Next advances the register and returns state / 2^32, in [0, 1).
func (x *Xorshift32) Next() float64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return float64(s) / 4294967296.0
}

// NextInt returns an integer in [min, max].
func (x *Xorshift32) NextInt(min, max int) int {
	return int(math.Floor(x.Next()*float64(max-min+1))) + min
}

// Round6 rounds to 6 decimal places, halves up.
func Round6(v float64) float64 {
	return math.Floor(v*1e6+0.5) / 1e6
}

// parseSeedPrefix reads the first 8 characters of seed the way the published
// reference verifier does: leading whitespace, an optional sign and an optional
// 0x prefix are accepted, then the longest run of hex digits. Negative values
// wrap to their 32-bit two's complement. No digits yields 0.
func parseSeedPrefix(seed string) uint32 {
	r := []rune(seed)
	if len(r) > 8 {
		r = r[:8]
	}
	i := 0
	for i < len(r) && isSpace(r[i]) {
		i++
	}
	neg := false
	if i < len(r) && (r[i] == '+' || r[i] == '-') {
		neg = r[i] == '-'
		i++
	}
	if i+1 < len(r) && r[i] == '0' && (r[i+1] == 'x' || r[i+1] == 'X') {
		i += 2
	}
	var v uint64
	digits := 0
	for ; i < len(r); i++ {
		d, ok := hexDigit(r[i])
		if !ok {
			break
		}
		v = v<<4 | uint64(d)
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return uint32(-int64(v))
	}
	return uint32(v)
}

func hexDigit(c rune) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint8(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint8(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint8(c-'A') + 10, true
	}
	return 0, false
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\ufeff':
		return true
	}
	return false
}
