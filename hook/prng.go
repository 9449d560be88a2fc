// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package hook

// twoPow53Inv is 2^-53, the canonical scale for converting a 53-bit
// integer into a uniform double in [0,1).
const twoPow53Inv = 1.0 / (1 << 53)

// prngState is the xoshiro256+ state, seeded with the fixed
// constant of spec.md §6 so that two Objects parsed from the same
// document produce identical "random" sequences.
type prngState [4]uint64

var seedConstant = prngState{
	0xb76d71f9443c228a,
	0x93a02092fc4807e8,
	0x06d81748f838bd07,
	0x9381ee129dddce6c,
}

func rotl(x uint64, k uint) uint64 { return (x << k) | (x >> (64 - k)) }

// next advances s and returns the next xoshiro256+ output.
func (s *prngState) next() uint64 {
	result := s[0] + s[3]

	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = rotl(s[3], 45)

	return result
}

// randomFloat32 returns the next uniform value in [0,1), matching
// the canonical double-conversion: (result >> 11) * 2^-53, then
// narrowed to float32 for use as the "random" shader uniform.
func (s *prngState) randomFloat32() float32 {
	r := s.next() >> 11
	return float32(float64(r) * twoPow53Inv)
}
