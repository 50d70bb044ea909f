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

// Package adapter holds the boundary conversions between the bitboard
// core and the outside world: plain boolean matrices, external (x, y)
// coordinates, square notation, and human-readable board text. Nothing
// in here is on the solver's hot path.
package adapter

import (
	"fmt"
	"strings"

	"github.com/frankkopp/gothello/internal/bitboard"
	"github.com/frankkopp/gothello/internal/board"
)

// Serialize packs a row-major 8x8 boolean matrix (row 0 = top, column 0
// = left, both external coordinates) into a bitboard.
func Serialize(matrix [8][8]bool) bitboard.Bitboard {
	var b bitboard.Bitboard
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if matrix[y][x] {
				ix, iy := ToInternal(x, y)
				b |= board.MakeSingleton(ix, iy)
			}
		}
	}
	return b
}

// Deserialize is the inverse of Serialize.
func Deserialize(b bitboard.Bitboard) [8][8]bool {
	var matrix [8][8]bool
	for iy := 0; iy < 8; iy++ {
		for ix := 0; ix < 8; ix++ {
			if board.MakeSingleton(ix, iy)&b != 0 {
				x, y := ToExternal(ix, iy)
				matrix[y][x] = true
			}
		}
	}
	return matrix
}

// ToExternal converts internal (x, y) coordinates - as used by
// board.MakeSingleton and the solver - to the external coordinates a
// caller sees, reversing both axes.
func ToExternal(xInt, yInt int) (xExt, yExt int) {
	return 7 - xInt, 7 - yInt
}

// ToInternal is the inverse of ToExternal; the reversal is its own
// inverse, but the two names exist so call sites read correctly in
// either direction.
func ToInternal(xExt, yExt int) (xInt, yInt int) {
	return 7 - xExt, 7 - yExt
}

// Render draws an 8x8 text board in external coordinates: "X" for
// player's disks, "O" for opp's, "." for empty squares, one line per
// row with no separators, suitable for CLI or log output.
func Render(player, opp bitboard.Bitboard) string {
	var sb strings.Builder
	for yExt := 0; yExt < 8; yExt++ {
		for xExt := 0; xExt < 8; xExt++ {
			ix, iy := ToInternal(xExt, yExt)
			disk := board.MakeSingleton(ix, iy)
			switch {
			case disk&player != 0:
				sb.WriteByte('X')
			case disk&opp != 0:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsAlpha reports whether l is an ASCII letter, used when parsing
// square notation like "e3" into coordinates.
func IsAlpha(l byte) bool {
	return (l >= 'a' && l <= 'z') || (l >= 'A' && l <= 'Z')
}

// IsDigit reports whether l is an ASCII digit 0-9.
func IsDigit(l byte) bool {
	return l >= '0' && l <= '9'
}

// ParseSquare parses algebraic square notation (column letter a-h,
// row digit 1-8, e.g. "c4") into external coordinates, matching the
// convention column a / row 1 sits at the bottom-left of the printed
// board.
func ParseSquare(s string) (x, y int, err error) {
	if len(s) != 2 || !IsAlpha(s[0]) || !IsDigit(s[1]) {
		return 0, 0, fmt.Errorf("adapter: invalid square notation %q", s)
	}
	col := s[0]
	if col >= 'A' && col <= 'Z' {
		col += 'a' - 'A'
	}
	x = int(col - 'a')
	y = 8 - int(s[1]-'0')
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return 0, 0, fmt.Errorf("adapter: square %q out of range", s)
	}
	return x, y, nil
}
