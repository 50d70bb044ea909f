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

package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/gothello/internal/adapter"
	"github.com/frankkopp/gothello/internal/bitboard"
	"github.com/frankkopp/gothello/internal/board"
	"github.com/frankkopp/gothello/internal/config"
	"github.com/frankkopp/gothello/internal/logging"
	"github.com/frankkopp/gothello/internal/rollout"
	"github.com/frankkopp/gothello/internal/search"
	"github.com/frankkopp/gothello/internal/util"
)

var out = message.NewPrinter(language.German)

func main() {
	// defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	// go tool pprof -http=localhost:8080 othello cpu.pprof

	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	benchmark := flag.Bool("benchmark", false, "use the empties-to-the-margin evaluation and a wider search bound")
	rollouts := flag.Int("rollouts", 0, "run N random rollouts from the starting position instead of solving it")
	applyX := flag.Int("x", -1, "apply a move at column x (external coordinates) before solving/rolling out")
	applyY := flag.Int("y", -1, "apply a move at row y (external coordinates) before solving/rolling out")
	applyMove := flag.String("move", "", "apply a move in algebraic notation (e.g. c4) before solving/rolling out, instead of -x/-y")
	flag.Parse()

	config.ConfFile = *configFile
	config.Setup()
	if *benchmark {
		config.Settings.Search.Benchmark = true
	}

	logging.GetLog()

	player, opp := startingPosition()
	xExt, yExt, haveMove := *applyX, *applyY, *applyX >= 0 && *applyY >= 0
	if *applyMove != "" {
		var err error
		xExt, yExt, err = adapter.ParseSquare(*applyMove)
		if err != nil {
			out.Printf("%v\n", err)
			os.Exit(1)
		}
		haveMove = true
	}
	if haveMove {
		ix, iy := adapter.ToInternal(xExt, yExt)
		mv := board.MakeSingleton(ix, iy)
		if board.FindMoves(player, opp)&mv == 0 {
			out.Printf("move (%d,%d) is not legal in the starting position\n", xExt, yExt)
			os.Exit(1)
		}
		pos := board.ApplyMove(board.Position{Player: player, Opp: opp}, mv)
		player, opp = pos.Player, pos.Opp
	}

	out.Print(adapter.Render(player, opp))

	if *rollouts > 0 {
		runRollouts(player, opp, *rollouts)
		return
	}

	runSolve(player, opp)
}

func startingPosition() (player, opp bitboard.Bitboard) {
	player = board.MakeSingleton(4, 3) | board.MakeSingleton(3, 4)
	opp = board.MakeSingleton(3, 3) | board.MakeSingleton(4, 4)
	return player, opp
}

func runSolve(player, opp bitboard.Bitboard) {
	defer util.TimeTrack(time.Now(), "solve")

	move, stats := search.SolveWithStats(player, opp)

	if move.X < 0 {
		out.Println("no legal move")
	} else {
		xe, ye := adapter.ToExternal(move.X, move.Y)
		out.Printf("best move: (%d,%d) score: %d\n", xe, ye, move.Score)
	}
	out.Printf("nodes: %d  cutoffs: %d  reorders: %d  nps: %d\n",
		stats.NodesVisited, stats.BetaCutoffs, stats.FastestFirstReorders,
		util.Nps(uint64(stats.NodesVisited), stats.Elapsed))
	if config.Settings.Search.Benchmark {
		out.Println(util.MemStat())
	}
}

func runRollouts(player, opp bitboard.Bitboard, n int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	cancelled := util.NewBool(false)
	go func() {
		<-sigCh
		cancelled.Store(true)
		cancel()
	}()

	var seedCounter int64
	summary, err := rollout.Bulk(ctx, player, opp, n, func(seed int64) rollout.RandSource {
		s := atomic.AddInt64(&seedCounter, 1)
		return rand.New(rand.NewSource(seed + s))
	})
	if err != nil {
		if cancelled.Load() {
			out.Println("rollouts cancelled")
		} else {
			out.Printf("rollouts failed: %v\n", err)
		}
		os.Exit(1)
	}

	out.Printf("rollouts: %d  wins: %d  losses: %d  draws: %d\n", n, summary.Wins, summary.Losses, summary.Draws)
}
