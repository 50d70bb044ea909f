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

package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/gothello/internal/bitboard"
)

func standardOpening() (player, opp bitboard.Bitboard) {
	player = MakeSingleton(3, 4) | MakeSingleton(4, 3)
	opp = MakeSingleton(3, 3) | MakeSingleton(4, 4)
	return
}

func TestFindMovesOpeningPosition(t *testing.T) {
	player, opp := standardOpening()
	moves := FindMoves(player, opp)

	var got []bitboard.Bitboard
	for _, sq := range [][2]int{{2, 3}, {3, 2}, {4, 5}, {5, 4}} {
		got = append(got, MakeSingleton(sq[0], sq[1]))
	}
	var want bitboard.Bitboard
	for _, m := range got {
		want |= m
		assert.NotZero(t, moves&m, "expected opening move missing")
	}
	assert.Equal(t, want, moves, "opening position must have exactly the 4 canonical moves")
	assert.Equal(t, 4, bitboard.PopCount(moves))
}

func TestResolveMoveOpeningPosition(t *testing.T) {
	player, opp := standardOpening()
	moves := FindMoves(player, opp)
	for bit := 0; bit < 64; bit++ {
		sq := bitboard.Bitboard(1) << uint(bit)
		if moves&sq == 0 {
			continue
		}
		flipped := ResolveMove(player, opp, sq)
		assert.Equal(t, 1, bitboard.PopCount(flipped), "every opening move flips exactly one disk")
	}
}

func TestApplyMoveSwapsSides(t *testing.T) {
	player, opp := standardOpening()
	mv := MakeSingleton(2, 3)
	next := ApplyMove(Position{Player: player, Opp: opp}, mv)
	assert.Zero(t, next.Player&next.Opp, "post-move position must remain disjoint")
	assert.Equal(t, bitboard.PopCount(player)+bitboard.PopCount(opp)+1, bitboard.PopCount(next.Player)+bitboard.PopCount(next.Opp))
}

func TestTerminalFalseAtOpening(t *testing.T) {
	player, opp := standardOpening()
	assert.False(t, Terminal(player, opp))
}

func TestTerminalTrueOnFullBoard(t *testing.T) {
	var player, opp bitboard.Bitboard
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if (x+y)%2 == 0 {
				player |= MakeSingleton(x, y)
			} else {
				opp |= MakeSingleton(x, y)
			}
		}
	}
	assert.True(t, Terminal(player, opp))
}

func TestDiskCount(t *testing.T) {
	player, opp := standardOpening()
	p, o, e := DiskCount(player, opp)
	assert.Equal(t, 2, p)
	assert.Equal(t, 2, o)
	assert.Equal(t, 60, e)
}

func TestStabilityCornerOnly(t *testing.T) {
	player := MakeSingleton(0, 0)
	assert.Equal(t, player, Stability(player, bitboard.Zero))
}

func TestStabilityFullBoard(t *testing.T) {
	var player, opp bitboard.Bitboard
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if (x+y)%2 == 0 {
				player |= MakeSingleton(x, y)
			} else {
				opp |= MakeSingleton(x, y)
			}
		}
	}
	assert.Equal(t, player, Stability(player, opp), "a fully occupied board makes every disk stable")
}

func TestStabilitySubsetOfPlayer(t *testing.T) {
	player, opp := standardOpening()
	stable := Stability(player, opp)
	assert.Zero(t, stable&^player, "stability can never include a disk the player doesn't own")
}

// TestRandomGamesStayLegal plays out many uniformly-random games from the
// standard opening and checks, at every ply, that the two bitboards never
// overlap and that every move FindMoves reports actually flips at least
// one opponent disk.
func TestRandomGamesStayLegal(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		rng := rand.New(rand.NewSource(seed))
		active, other := standardOpening()
		passes := 0
		for ply := 0; ply < 200 && passes < 2; ply++ {
			assert.Zero(t, active&other, "seed %d ply %d: sides overlap", seed, ply)
			moves := FindMoves(active, other)
			if moves == 0 {
				passes++
				active, other = other, active
				continue
			}
			passes = 0
			n := bitboard.PopCount(moves)
			pos := bitboard.SelectBit(moves, rng.Intn(n)+1)
			mv := bitboard.Square(pos)
			flipped := ResolveMove(active, other, mv)
			assert.NotZero(t, flipped, "seed %d ply %d: legal move produced no flips", seed, ply)
			active = (active ^ flipped) | mv
			other ^= flipped
			active, other = other, active
		}
	}
}
