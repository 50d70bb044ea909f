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

// Package board implements move generation, move resolution and stability
// analysis on top of the two-bitboard (player, opp) representation of an
// Othello position.
package board

import "github.com/frankkopp/gothello/internal/bitboard"

// Position is the unit of state threaded through the rollout engine and
// the solver: the disks belonging to the player to move and the disks
// belonging to the opponent. Always passed and returned by value - every
// method here builds a new Position rather than mutating through
// aliasing.
type Position struct {
	Player bitboard.Bitboard
	Opp    bitboard.Bitboard
}

type direction struct {
	occl  func(gen, pro bitboard.Bitboard) bitboard.Bitboard
	shift func(b bitboard.Bitboard) bitboard.Bitboard
}

// the eight compass directions, used by FindMoves; opposite pairs are
// adjacent in this list so ResolveMove can walk it two at a time.
var directions = [8]direction{
	{bitboard.OcclN, bitboard.ShiftN},
	{bitboard.OcclS, bitboard.ShiftS},
	{bitboard.OcclE, bitboard.ShiftE},
	{bitboard.OcclW, bitboard.ShiftW},
	{bitboard.OcclNE, bitboard.ShiftNE},
	{bitboard.OcclSW, bitboard.ShiftSW},
	{bitboard.OcclNW, bitboard.ShiftNW},
	{bitboard.OcclSE, bitboard.ShiftSE},
}

// FindMoves returns the set of empty squares where player may legally
// play: squares adjacent, in any of the 8 directions, to a contiguous run
// of opp disks that ends at one of player's own disks.
func FindMoves(player, opp bitboard.Bitboard) bitboard.Bitboard {
	empty := ^(player | opp)
	var moves bitboard.Bitboard
	for _, d := range directions {
		t := d.occl(player, opp) & opp
		moves |= d.shift(t) & empty
	}
	return moves
}

// ResolveMove returns the set of opp disks that flip when player plays
// the singleton newDisk (assumed to be a legal move). The caller applies
// the result as player' = (player ^ flipped) | newDisk, opp' = opp ^
// flipped - see ApplyMove.
func ResolveMove(player, opp, newDisk bitboard.Bitboard) bitboard.Bitboard {
	var flipped bitboard.Bitboard
	for i := 0; i < len(directions); i += 2 {
		pos, neg := directions[i], directions[i+1]
		flipped |= pos.occl(player, opp) & neg.occl(newDisk, opp)
		flipped |= neg.occl(player, opp) & pos.occl(newDisk, opp)
	}
	return flipped
}

// ApplyMove plays newDisk for pos.Player and returns the resulting
// position with sides swapped, ready for the opponent's turn.
func ApplyMove(pos Position, newDisk bitboard.Bitboard) Position {
	flipped := ResolveMove(pos.Player, pos.Opp, newDisk)
	player := (pos.Player ^ flipped) | newDisk
	opp := pos.Opp ^ flipped
	return Position{Player: opp, Opp: player}
}

// Terminal reports whether neither side has a legal move, i.e. the game
// at this position is over.
func Terminal(player, opp bitboard.Bitboard) bool {
	return FindMoves(player, opp) == 0 && FindMoves(opp, player) == 0
}

// DiskCount returns the population counts of player, opp, and the empty
// squares.
func DiskCount(player, opp bitboard.Bitboard) (playerCount, oppCount, empties int) {
	return bitboard.PopCount(player), bitboard.PopCount(opp), bitboard.PopCount(^(player | opp))
}

// MakeSingleton returns the singleton bitboard for internal square (x, y);
// adapter.ToInternal converts external coordinates first.
func MakeSingleton(x, y int) bitboard.Bitboard {
	return bitboard.Bitboard(1) << uint((7-y)*8+(7-x))
}

// axis groups the two occluded-fill terms that determine line-stability
// along one of the board's four axes, plus the single-step shifts used
// to test a square's two neighbours along that axis during expansion.
type axis struct {
	seedA, seedB bitboard.Bitboard
	occlA, occlB func(gen, pro bitboard.Bitboard) bitboard.Bitboard
	neighbor1    func(b bitboard.Bitboard) bitboard.Bitboard
	neighbor2    func(b bitboard.Bitboard) bitboard.Bitboard
}

func (a axis) lineStable(pcs bitboard.Bitboard) bitboard.Bitboard {
	return a.occlA(a.seedA&pcs, pcs) & a.occlB(a.seedB&pcs, pcs)
}

var axes = [4]axis{
	// vertical: top row / bottom row
	{bitboard.Rank8Mask, bitboard.Rank1Mask, bitboard.OcclS, bitboard.OcclN, bitboard.ShiftN, bitboard.ShiftS},
	// horizontal: left column / right column
	{bitboard.FileAMask, bitboard.FileHMask, bitboard.OcclE, bitboard.OcclW, bitboard.ShiftE, bitboard.ShiftW},
	// anti-diagonal (bottom-left to top-right): bottom+left / top+right
	{bitboard.Rank1Mask | bitboard.FileAMask, bitboard.Rank8Mask | bitboard.FileHMask, bitboard.OcclNE, bitboard.OcclSW, bitboard.ShiftNE, bitboard.ShiftSW},
	// main diagonal (top-left to bottom-right): top+left / bottom+right
	{bitboard.Rank8Mask | bitboard.FileAMask, bitboard.Rank1Mask | bitboard.FileHMask, bitboard.OcclSE, bitboard.OcclNW, bitboard.ShiftSE, bitboard.ShiftNW},
}

// Stability returns the subset of player's disks that can never be
// flipped for the remainder of the game: a disk is stable if it is a
// corner, or if it is line-stable on all four axes (its line runs
// unbroken from edge to edge through it), or if it can be reached from
// already-stable disks by the 16-iteration neighbour-expansion below.
func Stability(player, opp bitboard.Bitboard) bitboard.Bitboard {
	pcs := player | opp

	var lineStable [4]bitboard.Bitboard
	allAxesStable := bitboard.All
	for i, a := range axes {
		lineStable[i] = a.lineStable(pcs)
		allAxesStable &= lineStable[i]
	}

	stable := player & (bitboard.CornerMask | allAxesStable)

	for iter := 0; iter < 16; iter++ {
		candidate := player &^ stable
		if candidate == 0 {
			break
		}
		allOK := bitboard.All
		for i, a := range axes {
			allOK &= lineStable[i] | a.neighbor1(stable) | a.neighbor2(stable)
		}
		newlyStable := candidate & allOK
		if newlyStable == 0 {
			break
		}
		stable |= newlyStable
	}
	return stable
}
