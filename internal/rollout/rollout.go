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

// Package rollout implements uniform-random playout to game end, used to
// estimate a position's outcome without a full endgame search.
package rollout

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/frankkopp/gothello/internal/bitboard"
	"github.com/frankkopp/gothello/internal/board"
	"github.com/frankkopp/gothello/internal/config"
	"github.com/frankkopp/gothello/internal/logging"
)

var rlog = logging.GetRolloutLog()

// RandSource is the minimal random source Random needs. *rand.Rand
// satisfies it; callers inject their own so a rollout's outcome is
// reproducible from a known seed instead of depending on global state.
type RandSource interface {
	Intn(n int) int
}

// Outcome is the three-valued result of a rollout, tagged relative to
// the player to move at the start of the rollout (Active), not to
// either side's final color.
type Outcome int

const (
	ActiveWins Outcome = iota
	OpponentWins
	Draw
)

// Random simulates uniform-random play to game end starting from
// (active, other), with active to move first, and reports the outcome
// relative to the original active side.
func Random(active, other bitboard.Bitboard, rng RandSource) Outcome {
	sameSide := true
	justPassed := false

	for {
		moves := board.FindMoves(active, other)
		if moves == 0 {
			if justPassed {
				break
			}
			justPassed = true
		} else {
			justPassed = false
			n := bitboard.PopCount(moves)
			pos := bitboard.SelectBit(moves, rng.Intn(n)+1)
			mv := bitboard.Square(pos)
			flipped := board.ResolveMove(active, other, mv)
			active = (active ^ flipped) | mv
			other ^= flipped
		}
		sameSide = !sameSide
		active, other = other, active
	}

	score := bitboard.PopCount(active) - bitboard.PopCount(other)
	switch {
	case score == 0:
		return Draw
	case (score > 0) == sameSide:
		return ActiveWins
	default:
		return OpponentWins
	}
}

// BulkSummary tallies the outcomes of a batch of independent rollouts
// from the same starting position.
type BulkSummary struct {
	Wins, Losses, Draws int
}

// Bulk runs n independent Random rollouts from (active, other), one
// goroutine per rollout, with a semaphore letting at most
// config.Settings.Search.RolloutWorkers of them play at once; each
// rollout gets its own freshly seeded RandSource so the batch
// is reproducible from newRNG alone without rollouts contending over
// shared state. Returns once all n rollouts complete or ctx is
// cancelled.
func Bulk(ctx context.Context, active, other bitboard.Bitboard, n int, newRNG func(seed int64) RandSource) (BulkSummary, error) {
	results := make([]Outcome, n)

	workers := config.Settings.Search.RolloutWorkers
	if workers <= 0 {
		workers = 1
	}
	rlog.Debugf("starting %d rollouts across %d workers", n, workers)
	sem := make(chan struct{}, workers)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()
			results[i] = Random(active, other, newRNG(int64(i)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		rlog.Warningf("rollouts cancelled after %d requested: %v", n, err)
		return BulkSummary{}, err
	}

	var summary BulkSummary
	for _, outcome := range results {
		switch outcome {
		case ActiveWins:
			summary.Wins++
		case OpponentWins:
			summary.Losses++
		case Draw:
			summary.Draws++
		}
	}
	rlog.Infof("rollouts finished: %d wins, %d losses, %d draws", summary.Wins, summary.Losses, summary.Draws)
	return summary, nil
}
