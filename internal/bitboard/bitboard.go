/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package bitboard implements the 64-bit occupancy primitives the rest of
// the engine is built on: population counts, single-bit extraction and
// selection, and the eight directional occluded-fill and single-step shift
// operators used to generate and resolve Othello moves.
package bitboard

import "math/bits"

// Bitboard is a 64-bit word with one bit per square of an 8x8 board.
// Square (x, y), both in [0, 7], maps to bit (7-y)*8 + (7-x): the top
// row occupies the high byte, and within a row x=0 is the most
// significant bit of that byte.
type Bitboard uint64

// Zero and All are the empty and fully occupied boards.
const (
	Zero Bitboard = 0
	All  Bitboard = 0xFFFFFFFFFFFFFFFF
)

// File masks. NotAFile clears column x=7 (the least significant bit of
// each row's byte) before an East/NE/SE-style shift so fills never wrap from the
// H-file to the A-file of the next row; NotHFile is the mirror for
// West/NW/SW-style shifts. Process-wide constants, not state.
const (
	NotAFile Bitboard = 0xFEFEFEFEFEFEFEFE
	NotHFile Bitboard = 0x7F7F7F7F7F7F7F7F
)

// CornerMask has a bit set at each of the four corner squares (a1, h1,
// a8, h8 in the external addressing convention).
const CornerMask Bitboard = 0x8100000000000081

// rank masks used to seed the stability flood fills in package board.
const (
	Rank1Mask Bitboard = 0x00000000000000FF // bottom row, y=7 internally
	Rank8Mask Bitboard = 0xFF00000000000000 // top row, y=0 internally
	FileAMask Bitboard = 0x8080808080808080 // leftmost column, x=0
	FileHMask Bitboard = 0x0101010101010101 // rightmost column, x=7
)

// PopCount returns the number of set bits in b. Backed by a hardware
// popcount instruction on supported architectures via math/bits.
func PopCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

// ExtractDisk returns a bitboard containing only the least significant
// set bit of b, or Zero if b is Zero. Equivalent to b & (-b) in two's
// complement arithmetic over 64 bits.
func ExtractDisk(b Bitboard) Bitboard {
	return b & Bitboard(-int64(b))
}

// SelectBit returns the 1-based bit position (1 = LSB, 64 = MSB) of the
// rank-th set bit of b, where rank is in [1, PopCount(b)]. Used to turn
// a uniformly drawn index into a specific move.
func SelectBit(b Bitboard, rank int) int {
	pos := 0
	for rank > 0 {
		pos++
		if b&1 != 0 {
			rank--
		}
		b >>= 1
	}
	return pos
}

// Square returns the singleton bitboard naming the bit at the given
// 1-based position, as returned by SelectBit.
func Square(pos int) Bitboard {
	return 1 << uint(pos-1)
}

// The eight single-step shift operators. Each moves every set bit of b
// by one square in the named compass direction, masking off the file
// that would otherwise wrap around the row boundary.
func ShiftN(b Bitboard) Bitboard  { return b << 8 }
func ShiftS(b Bitboard) Bitboard  { return b >> 8 }
func ShiftE(b Bitboard) Bitboard  { return (b & NotAFile) >> 1 }
func ShiftW(b Bitboard) Bitboard  { return (b & NotHFile) << 1 }
func ShiftNE(b Bitboard) Bitboard { return (b & NotAFile) << 7 }
func ShiftNW(b Bitboard) Bitboard { return (b & NotHFile) << 9 }
func ShiftSE(b Bitboard) Bitboard { return (b & NotAFile) >> 9 }
func ShiftSW(b Bitboard) Bitboard { return (b & NotHFile) >> 7 }

// The eight directional fills below all follow the classical Kogge-Stone
// doubling-shift pattern: three iterations doubling the shift distance
// (1/2/4 squares orthogonally, 7/14/28 or 9/18/36 diagonally), with the
// propagator masked against the relevant file before the loop so fills
// never wrap across a row boundary. They are written out individually
// rather than parameterised, since the shift direction (<< vs >>) and
// doubling distance differ per direction and a generic higher-order
// version reads worse than eight short functions.

// OcclN floods gen through propagator pro northward (toward y=0 / the
// high-order byte), including gen's own bits.
func OcclN(gen, pro Bitboard) Bitboard {
	flood := gen
	flood |= pro & (flood << 8)
	pro &= pro << 8
	flood |= pro & (flood << 16)
	pro &= pro << 16
	flood |= pro & (flood << 32)
	return flood
}

// OcclS floods gen through propagator pro southward.
func OcclS(gen, pro Bitboard) Bitboard {
	flood := gen
	flood |= pro & (flood >> 8)
	pro &= pro >> 8
	flood |= pro & (flood >> 16)
	pro &= pro >> 16
	flood |= pro & (flood >> 32)
	return flood
}

// OcclE floods gen through propagator pro eastward (toward x=7). The
// propagator is masked with NotHFile, not NotAFile: shifting east walks
// bit values downward, and a bit at x=7 shifted past the row boundary
// lands on x=0 of the next row down, so it's that landing file (x=0)
// that must be cleared from pro to block the wrap.
func OcclE(gen, pro Bitboard) Bitboard {
	pro &= NotHFile
	flood := gen
	flood |= pro & (flood >> 1)
	pro &= pro >> 1
	flood |= pro & (flood >> 2)
	pro &= pro >> 2
	flood |= pro & (flood >> 4)
	return flood
}

// OcclW floods gen through propagator pro westward (toward x=0). The
// wrap destination for a west shift is x=7, so the mask is NotAFile
// (clears x=7), the mirror image of the OcclE case.
func OcclW(gen, pro Bitboard) Bitboard {
	pro &= NotAFile
	flood := gen
	flood |= pro & (flood << 1)
	pro &= pro << 1
	flood |= pro & (flood << 2)
	pro &= pro << 2
	flood |= pro & (flood << 4)
	return flood
}

// OcclNE floods gen northeast (toward y=0, x=7); see OcclE for why the
// wrap-blocking mask is NotHFile rather than NotAFile.
func OcclNE(gen, pro Bitboard) Bitboard {
	pro &= NotHFile
	flood := gen
	flood |= pro & (flood << 7)
	pro &= pro << 7
	flood |= pro & (flood << 14)
	pro &= pro << 14
	flood |= pro & (flood << 28)
	return flood
}

// OcclNW floods gen northwest (toward y=0, x=0); see OcclW for why the
// wrap-blocking mask is NotAFile.
func OcclNW(gen, pro Bitboard) Bitboard {
	pro &= NotAFile
	flood := gen
	flood |= pro & (flood << 9)
	pro &= pro << 9
	flood |= pro & (flood << 18)
	pro &= pro << 18
	flood |= pro & (flood << 36)
	return flood
}

// OcclSE floods gen southeast (toward y=7, x=7); see OcclE for why the
// wrap-blocking mask is NotHFile rather than NotAFile.
func OcclSE(gen, pro Bitboard) Bitboard {
	pro &= NotHFile
	flood := gen
	flood |= pro & (flood >> 9)
	pro &= pro >> 9
	flood |= pro & (flood >> 18)
	pro &= pro >> 18
	flood |= pro & (flood >> 36)
	return flood
}

// OcclSW floods gen southwest (toward y=7, x=0); see OcclW for why the
// wrap-blocking mask is NotAFile.
func OcclSW(gen, pro Bitboard) Bitboard {
	pro &= NotAFile
	flood := gen
	flood |= pro & (flood >> 7)
	pro &= pro >> 7
	flood |= pro & (flood >> 14)
	pro &= pro >> 14
	flood |= pro & (flood >> 28)
	return flood
}

// String renders b as 8 rows of 8 characters, '1' for an occupied
// square and '0' for empty, in bit order from the MSB (top-left, x=0
// y=0) to the LSB (bottom-right, x=7 y=7) - useful for debugging and
// mirrored by the teacher's own Bitboard.String().
func (b Bitboard) String() string {
	out := make([]byte, 0, 64+8)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			bit := uint(63 - (row*8 + col))
			if b&(1<<bit) != 0 {
				out = append(out, '1')
			} else {
				out = append(out, '0')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
