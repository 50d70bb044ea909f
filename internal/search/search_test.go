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

package search

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/gothello/internal/bitboard"
	"github.com/frankkopp/gothello/internal/board"
	"github.com/frankkopp/gothello/internal/config"
)

// withFullWidthSearch temporarily raises the root alpha-beta window wide
// enough that no real position's score can exceed it, so Solve returns the
// exact minimax value instead of a win/loss/draw-only bound. SolveWithStats
// ties the root window to config.Settings.Search.Benchmark (bound 1 vs.
// 64), and that's the only knob the public API exposes for it.
func withFullWidthSearch(t *testing.T) {
	t.Helper()
	prev := config.Settings.Search.Benchmark
	config.Settings.Search.Benchmark = true
	t.Cleanup(func() { config.Settings.Search.Benchmark = prev })
}

// referenceSolve is a full-width negamax with no pruning and no move
// ordering, used as an independent oracle for Solve: alpha-beta over the
// same tree with the same leaf evaluation must return the same score as
// plain minimax, regardless of which side is ahead.
func referenceSolve(player, opp bitboard.Bitboard, passed bool) int {
	moves := board.FindMoves(player, opp)
	if moves == 0 {
		if passed {
			return Evaluate(player, opp)
		}
		return -referenceSolve(opp, player, true)
	}
	best := -InfinitySentinel
	for b := moves; b != 0; {
		mv := bitboard.ExtractDisk(b)
		b &^= mv
		flipped := board.ResolveMove(player, opp, mv)
		p2 := (player ^ flipped) | mv
		o2 := opp ^ flipped
		score := -referenceSolve(o2, p2, false)
		if score > best {
			best = score
		}
	}
	return best
}

// positionWithEmpties builds a position with exactly len(empties) empty
// squares at the given internal coordinates and the rest of the board
// split between player and opp in a fixed, deterministic checkerboard
// pattern (x+y even -> player, odd -> opp). The pattern has no game-history
// meaning; it exists purely to exercise the solver on few-empties
// positions without having to play out a full game by hand.
func positionWithEmpties(empties ...[2]int) (player, opp bitboard.Bitboard) {
	isEmpty := func(x, y int) bool {
		for _, e := range empties {
			if e[0] == x && e[1] == y {
				return true
			}
		}
		return false
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if isEmpty(x, y) {
				continue
			}
			sq := board.MakeSingleton(x, y)
			if (x+y)%2 == 0 {
				player |= sq
			} else {
				opp |= sq
			}
		}
	}
	return player, opp
}

func TestSolveAgreesWithExhaustiveMinimaxFewEmpties(t *testing.T) {
	withFullWidthSearch(t)
	cases := [][][2]int{
		{{0, 0}},
		{{0, 0}, {7, 7}},
		{{3, 3}, {4, 4}, {3, 4}},
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}},
		{{0, 0}, {0, 7}, {7, 0}, {7, 7}, {3, 3}, {4, 4}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}},
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6}, {7, 7}, {1, 0}, {0, 1}, {6, 7}, {7, 6}},
	}
	for _, empties := range cases {
		assert.LessOrEqual(t, len(empties), 12)
		player, opp := positionWithEmpties(empties...)
		want := referenceSolve(player, opp, false)
		got := Solve(player, opp)
		assert.Equal(t, want, got.Score, "empties=%v", empties)
	}
}

// rotate180 maps a bitboard to its 180-degree board rotation: bit i
// packs internal square (x, y) as (7-y)*8+(7-x), so reversing the 64
// bits maps square (x, y) to (7-x, 7-y), the rotated square, since
// 63-i = 8y+x is exactly the index formula evaluated at (7-x, 7-y).
func rotate180(b bitboard.Bitboard) bitboard.Bitboard {
	return bitboard.Bitboard(bits.Reverse64(uint64(b)))
}

func TestSolveSymmetryUnderBoardRotation(t *testing.T) {
	withFullWidthSearch(t)
	cases := [][][2]int{
		{{3, 3}, {4, 4}, {3, 4}, {4, 3}},
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}},
	}
	for _, empties := range cases {
		player, opp := positionWithEmpties(empties...)
		direct := Solve(player, opp)
		rotated := Solve(rotate180(player), rotate180(opp))
		assert.Equal(t, direct.Score, rotated.Score, "empties=%v", empties)
	}
}

// TestSolveForcedWinTwoEmptyEndgame constructs a position with exactly two
// empty squares where the player to move has a single legal move, and
// that move forces a position where the opponent has no reply, the
// player then has no further squares to play either (the remaining
// empty square is a hole with no adjacent opponent disk on any axis),
// and the game ends with the player owning every disk but that hole.
func TestSolveForcedWinTwoEmptyEndgame(t *testing.T) {
	var player, opp bitboard.Bitboard
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			switch {
			case (x == 1 && y == 0) || (x == 2 && y == 0):
				opp |= board.MakeSingleton(x, y)
			case (x == 3 && y == 0) || (x == 7 && y == 7):
				// left empty: (3,0) is the forced move, (7,7) is an
				// unreachable hole surrounded entirely by player disks.
			default:
				player |= board.MakeSingleton(x, y)
			}
		}
	}

	moves := board.FindMoves(player, opp)
	assert.Equal(t, 1, bitboard.PopCount(moves), "position must have exactly one legal move")

	move := Solve(player, opp)
	assert.Equal(t, 3, move.X)
	assert.Equal(t, 0, move.Y)
	assert.Equal(t, 63, move.Score)
}

func TestSolveNoLegalMoveAtRoot(t *testing.T) {
	move := Solve(bitboard.Bitboard(0), bitboard.All)
	assert.Equal(t, Move{X: -1, Y: -1, Score: InfinitySentinel}, move)
}

// nearlyFullPositionWithGuaranteedMove builds on the same flank pattern as
// the forced-win test (guaranteeing player has at least the move at (3,0))
// but leaves a few additional, unrelated holes empty. The move at (3,0)
// is still the only legal one and flips both opp disks, so the game ends
// right after it and the search follows that single forced line.
func nearlyFullPositionWithGuaranteedMove(extraHoles ...[2]int) (player, opp bitboard.Bitboard) {
	holes := append([][2]int{{3, 0}, {7, 7}}, extraHoles...)
	isHole := func(x, y int) bool {
		for _, h := range holes {
			if h[0] == x && h[1] == y {
				return true
			}
		}
		return false
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			switch {
			case (x == 1 && y == 0) || (x == 2 && y == 0):
				opp |= board.MakeSingleton(x, y)
			case isHole(x, y):
				// left empty
			default:
				player |= board.MakeSingleton(x, y)
			}
		}
	}
	return player, opp
}

func TestSolveWithStatsCountsVisitedNodes(t *testing.T) {
	player, opp := nearlyFullPositionWithGuaranteedMove([2]int{7, 6}, [2]int{6, 7}, [2]int{5, 7}, [2]int{7, 5})
	move, stats := SolveWithStats(player, opp)
	assert.GreaterOrEqual(t, move.Score, -InfinitySentinel)
	assert.Greater(t, stats.NodesVisited, int64(0))
	assert.GreaterOrEqual(t, stats.Elapsed.Nanoseconds(), int64(0))
}

func TestSolveRootsConcurrentlyMatchesSequentialSolve(t *testing.T) {
	p1, o1 := positionWithEmpties([2]int{3, 3}, [2]int{4, 4}, [2]int{3, 4})
	p2, o2 := positionWithEmpties([2]int{0, 0}, [2]int{7, 7})
	positions := []board.Position{
		{Player: p1, Opp: o1},
		{Player: p2, Opp: o2},
	}

	got := SolveRootsConcurrently(positions)

	assert.Len(t, got, 2)
	assert.Equal(t, Solve(p1, o1), got[0])
	assert.Equal(t, Solve(p2, o2), got[1])
}
