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

package config

import "runtime"

// searchConfig is a data structure to hold the configuration of an
// instance of the endgame solver.
type searchConfig struct {
	// FastestFirstCutoff is the remaining-depth threshold at or above
	// which the solver reorders children by ascending opponent
	// mobility instead of visiting them in raw extraction order.
	FastestFirstCutoff int

	// Benchmark switches Evaluate from plain disk differential to the
	// empties-added-to-the-margin variant used for tuning, and widens
	// the root alpha-beta bound accordingly.
	Benchmark bool

	// MaxMoves bounds the fastest-first scratch array; a node can
	// never have more legal moves than empty squares on an 8x8 board,
	// so this only needs to be large enough to cover that.
	MaxMoves int

	// RolloutWorkers is the default goroutine fan-out used by
	// rollout.Bulk when a caller doesn't override it.
	RolloutWorkers int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.FastestFirstCutoff = 5
	Settings.Search.Benchmark = false
	Settings.Search.MaxMoves = 32
	Settings.Search.RolloutWorkers = runtime.NumCPU()
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {
	if Settings.Search.MaxMoves <= 0 {
		Settings.Search.MaxMoves = 32
	}
	if Settings.Search.RolloutWorkers <= 0 {
		Settings.Search.RolloutWorkers = runtime.NumCPU()
	}
}
