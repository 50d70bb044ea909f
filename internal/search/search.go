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

// Package search implements the endgame solver: alpha-beta negamax over
// the full remaining game tree, with a fastest-first move-ordering
// heuristic applied while enough empty squares remain to make it pay
// for itself.
package search

import (
	"math/bits"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frankkopp/gothello/internal/bitboard"
	"github.com/frankkopp/gothello/internal/board"
	"github.com/frankkopp/gothello/internal/config"
	"github.com/frankkopp/gothello/internal/logging"
	"github.com/frankkopp/gothello/internal/util"
)

var slog = logging.GetSearchLog()

// InfinitySentinel marks a score outside any real evaluation range; it
// is what Solve reports for a root with no legal move.
const InfinitySentinel = 999

// Move is the solver's result: the chosen square in internal (x, y)
// coordinates (those board.MakeSingleton takes; adapter.ToExternal
// converts them) and its negamax score from the mover's perspective.
type Move struct {
	X, Y  int
	Score int
}

// Statistics is purely observational bookkeeping collected during a
// Solve call; it never influences which move is chosen.
type Statistics struct {
	NodesVisited         int64
	BetaCutoffs          int64
	FastestFirstReorders int64
	Elapsed              time.Duration
}

// Solve finds the best move for player at (player, opp) by searching to
// the end of the game. Returns {X: -1, Y: -1, Score: InfinitySentinel}
// if player has no legal move.
func Solve(player, opp bitboard.Bitboard) Move {
	move, _ := SolveWithStats(player, opp)
	return move
}

// SolveWithStats behaves like Solve but also returns node-count and
// cutoff statistics gathered during the search.
func SolveWithStats(player, opp bitboard.Bitboard) (Move, Statistics) {
	slog.Debug(util.GcWithStats())
	start := time.Now()
	s := &solver{cutoff: config.Settings.Search.FastestFirstCutoff, maxMoves: config.Settings.Search.MaxMoves}

	bound := 1
	if config.Settings.Search.Benchmark {
		bound = 64
	}

	moves := board.FindMoves(player, opp)
	if moves == 0 {
		s.stats.Elapsed = time.Since(start)
		slog.Debug("Solve: no legal move at root")
		return Move{X: -1, Y: -1, Score: InfinitySentinel}, s.stats
	}

	depth := 64 - bitboard.PopCount(player) - bitboard.PopCount(opp)
	slog.Debugf("Solve: %d empties, fastest-first cutoff at depth %d", depth, s.cutoff)
	best := Move{Score: -InfinitySentinel}
	alpha, beta := -bound, bound

	for b := moves; b != 0; {
		mv := bitboard.ExtractDisk(b)
		b &^= mv
		flipped := board.ResolveMove(player, opp, mv)
		p2 := (player ^ flipped) | mv
		o2 := opp ^ flipped
		s.stats.NodesVisited++
		score := -s.search(o2, p2, -beta, -alpha, false, depth, bound)
		if score > best.Score || best.X < 0 {
			best = Move{X: xyFromBit(mv).x, Y: xyFromBit(mv).y, Score: score}
		}
		if score > alpha {
			alpha = score
		}
	}

	s.stats.Elapsed = time.Since(start)
	slog.Infof("Solve finished: move (%d,%d) score %d, %d nodes, %d cutoffs, %d reorders in %s",
		best.X, best.Y, best.Score, s.stats.NodesVisited, s.stats.BetaCutoffs, s.stats.FastestFirstReorders, s.stats.Elapsed)
	return best, s.stats
}

type xy struct{ x, y int }

// xyFromBit recovers the (x, y) that board.MakeSingleton would have
// taken to produce the singleton bit, the inverse of
// 1 << ((7-y)*8 + (7-x)): the linear index splits into (7-x, 7-y), so
// each component needs one more reversal to land back on (x, y).
func xyFromBit(bit bitboard.Bitboard) xy {
	idx := bits.TrailingZeros64(uint64(bit))
	return xy{x: 7 - idx%8, y: 7 - idx/8}
}

type solver struct {
	cutoff   int
	maxMoves int
	stats    Statistics
}

// search is the negamax core shared by both move-ordering variants.
// passed records whether the previous ply had no legal move, so two
// consecutive passes can be recognised as game end.
func (s *solver) search(player, opp bitboard.Bitboard, alpha, beta int, passed bool, depth, bound int) int {
	moves := board.FindMoves(player, opp)
	if moves == 0 {
		if passed {
			return Evaluate(player, opp)
		}
		return -s.search(opp, player, -beta, -alpha, true, depth, bound)
	}

	if depth >= s.cutoff {
		return s.searchFastestFirst(player, opp, moves, alpha, beta, depth, bound)
	}
	return s.searchPlain(player, opp, moves, alpha, beta, depth, bound)
}

// searchPlain visits children in raw bit-extraction (LSB-first) order,
// cheapest per node but with no move-ordering benefit.
func (s *solver) searchPlain(player, opp, moves bitboard.Bitboard, alpha, beta, depth, bound int) int {
	best := -bound - 1
	for b := moves; b != 0; {
		mv := bitboard.ExtractDisk(b)
		b &^= mv
		flipped := board.ResolveMove(player, opp, mv)
		p2 := (player ^ flipped) | mv
		o2 := opp ^ flipped
		s.stats.NodesVisited++
		val := -s.search(o2, p2, -beta, -alpha, false, depth-1, bound)
		if val > best {
			best = val
		}
		if val > alpha {
			alpha = val
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			slog.Debugf("beta cutoff in searchPlain at depth %d after %d nodes", depth, s.stats.NodesVisited)
			break
		}
	}
	return best
}

type child struct {
	p2, o2   bitboard.Bitboard
	mobility int
	visited  bool
}

// searchFastestFirst orders children by ascending opponent mobility
// (fewest replies first), recomputed each ply via a fixed-size scratch
// array and an O(n^2) selection loop rather than a general sort - the
// candidate count per node is small (<= maxMoves) so the simplicity of
// picking the minimum each round outweighs any sort overhead.
func (s *solver) searchFastestFirst(player, opp, moves bitboard.Bitboard, alpha, beta, depth, bound int) int {
	var children [32]child
	limit := util.Min(s.maxMoves, len(children))
	n := 0
	for b := moves; b != 0 && n < limit; {
		mv := bitboard.ExtractDisk(b)
		b &^= mv
		flipped := board.ResolveMove(player, opp, mv)
		p2 := (player ^ flipped) | mv
		o2 := opp ^ flipped
		children[n] = child{p2: p2, o2: o2, mobility: bitboard.PopCount(board.FindMoves(o2, p2))}
		n++
	}
	if n > 1 {
		s.stats.FastestFirstReorders++
		slog.Debugf("reordered %d children by mobility at depth %d", n, depth)
	}

	best := -bound - 1
	for visitedCount := 0; visitedCount < n; visitedCount++ {
		pick := -1
		for i := 0; i < n; i++ {
			if children[i].visited {
				continue
			}
			if pick == -1 || children[i].mobility < children[pick].mobility {
				pick = i
			}
		}
		children[pick].visited = true

		s.stats.NodesVisited++
		val := -s.search(children[pick].o2, children[pick].p2, -beta, -alpha, false, depth-1, bound)
		if val > best {
			best = val
		}
		if val > alpha {
			alpha = val
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			slog.Debugf("beta cutoff in searchFastestFirst at depth %d after %d nodes", depth, s.stats.NodesVisited)
			break
		}
	}
	return best
}

// Evaluate scores a terminal or leaf position for player. In production
// it's the simple disk differential; in benchmark mode the remaining
// empty squares are added to the leading side's margin ("winner takes
// the empties"), matching the full score-maximizing variant used for
// tuning rather than pure win/loss/draw play.
func Evaluate(player, opp bitboard.Bitboard) int {
	score := bitboard.PopCount(player) - bitboard.PopCount(opp)
	if !config.Settings.Search.Benchmark {
		return score
	}
	if score == 0 {
		return 0
	}
	empties := bitboard.PopCount(^(player | opp))
	margin := util.Abs(score) + empties
	if score < 0 {
		return -margin
	}
	return margin
}

// SolveRootsConcurrently runs Solve independently across several
// positions in parallel, e.g. to evaluate sibling positions during
// benchmarking. Each call remains single-threaded internally.
func SolveRootsConcurrently(positions []board.Position) []Move {
	slog.Debugf("solving %d root positions concurrently", len(positions))
	moves := make([]Move, len(positions))
	var g errgroup.Group
	for i, pos := range positions {
		i, pos := i, pos
		g.Go(func() error {
			moves[i] = Solve(pos.Player, pos.Opp)
			return nil
		})
	}
	_ = g.Wait()
	return moves
}
