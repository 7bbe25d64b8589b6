/*
 * KlondikeGo - Klondike solitaire engine and solver in GO
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

// Package solver implements the concrete depth-first solver on top
// of the generic traversal. It produces a winning move history,
// collects statistics and supports cooperative cancellation. A
// solver instance owns its transposition table - independent
// instances may run in parallel on independent states.
package solver

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/KlondikeGo/internal/config"
	"github.com/frankkopp/KlondikeGo/internal/logging"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/state"
	"github.com/frankkopp/KlondikeGo/internal/tracking"
	"github.com/frankkopp/KlondikeGo/internal/transpositiontable"
	"github.com/frankkopp/KlondikeGo/internal/traverse"
)

var log = logging.GetSolverLog()

// Solver represents the data structure for a solitaire solve run.
// Create new instance with NewSolver().
type Solver struct {
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt     *transpositiontable.TtTable
	stats  *tracking.AtomicSearchStats
	signal *tracking.AtomicSearchSignal

	startTime  time.Time
	lastResult *Result
	hasResult  bool
}

// solveCallbacks adapts one solve run to the traversal callback set.
type solveCallbacks struct {
	stats      tracking.SearchStatistics
	signal     tracking.SearchSignal
	depth      int
	history    moveslice.MoveSlice
	win        moveslice.MoveSlice
	solved     bool
	terminated bool
}

func (cb *solveCallbacks) OnWin(g *state.State, revMove moves.Move) traverse.Result {
	cb.solved = true
	cb.win = cb.history.Clone()
	return traverse.Halted
}

func (cb *solveCallbacks) OnVisit(g *state.State, revMove moves.Move, encode state.Encode) traverse.Result {
	if cb.signal.IsTerminated() {
		cb.terminated = true
		return traverse.Halted
	}
	cb.stats.HitAState(cb.depth)
	return traverse.Ok
}

func (cb *solveCallbacks) OnMoveGen(ml *moveslice.MoveSlice, encode state.Encode) {
	cb.stats.HitUniqueState(cb.depth, ml.Len())
}

func (cb *solveCallbacks) OnDoMove(pos int, m moves.Move, encode state.Encode) {
	cb.history.PushBack(m)
	cb.depth++
}

func (cb *solveCallbacks) OnUndoMove(pos int, m moves.Move, encode state.Encode) {
	cb.depth--
	cb.history.PopBack()
	cb.stats.FinishMove(cb.depth, pos)
}

func (cb *solveCallbacks) OnStart() {}

func (cb *solveCallbacks) OnFinish(r traverse.Result) {
	cb.signal.SearchFinish()
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewSolver creates a new Solver instance.
func NewSolver() *Solver {
	ttSize := config.Settings.Solver.TTSize
	if !config.Settings.Solver.UseTT {
		// without a bounded cache the exact path set still guards
		// the recursion
		ttSize = 0
	}
	return &Solver{
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		tt:            transpositiontable.NewTtTable(ttSize),
		stats:         tracking.NewAtomicSearchStats(),
		signal:        tracking.NewAtomicSearchSignal(),
	}
}

// Solve runs the search on the given state synchronously and returns
// the result. On Solved the result holds the winning history. The
// state is restored to its initial value on every outcome except
// Crashed.
func (s *Solver) Solve(g *state.State) *Result {
	s.startTime = time.Now()
	s.tt.Clear()
	s.stats = tracking.NewAtomicSearchStats()

	cb := &solveCallbacks{
		stats:   s.stats,
		signal:  s.signal,
		history: moveslice.New(moveslice.MaxMoves),
	}

	result := &Result{SearchResult: Crashed}

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Solver crashed: ", r)
			}
		}()
		t := traverse.NewTraverser(s.tt, cb, config.Settings.Solver.UseDominance)
		res := t.TraverseGame(g)
		switch {
		case cb.solved:
			result.SearchResult = Solved
			result.History = cb.win
		case cb.terminated:
			result.SearchResult = Terminated
		case res == traverse.Ok:
			result.SearchResult = Unsolvable
		}
	}()

	result.SearchTime = time.Since(s.startTime)
	s.lastResult = result
	s.hasResult = true
	return result
}

// StartSolve starts the search on the given state in a separate
// goroutine. The search can be stopped with StopSolve() and awaited
// with WaitWhileSolving(). This takes a copy of the state.
func (s *Solver) StartSolve(g state.State) {
	// acquire init phase lock
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	go s.run(&g)
	// wait until the search is running and initialization is done
	// before returning
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSolve stops a running search as quickly as possible. The
// search stops gracefully and a result will be available.
func (s *Solver) StopSolve() {
	s.signal.Terminate()
	s.WaitWhileSolving()
}

// IsSolving checks if a search is running.
func (s *Solver) IsSolving() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSolving blocks until a running search has stopped.
func (s *Solver) WaitWhileSolving() {
	// get and release semaphore. Will block if search is running
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// LastResult returns the result of the last finished solve or nil.
func (s *Solver) LastResult() *Result {
	if !s.hasResult {
		return nil
	}
	return s.lastResult
}

// Statistics returns the statistics of the current or last solve.
func (s *Solver) Statistics() *tracking.AtomicSearchStats {
	return s.stats
}

// TranspositionTable returns the transposition table of the solver.
func (s *Solver) TranspositionTable() *transpositiontable.TtTable {
	return s.tt
}

// Signal returns the cancel signal of the solver.
func (s *Solver) Signal() *tracking.AtomicSearchSignal {
	return s.signal
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// run is called by StartSolve() in a separate go-routine.
func (s *Solver) run(g *state.State) {
	// check if there is already a search running on this instance
	// and if not grab the isRunning semaphore
	if !s.isRunning.TryAcquire(1) {
		log.Error("Solve already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.hasResult = false
	s.signal = tracking.NewAtomicSearchSignal()

	// progress reporting until the search signals finish
	done := make(chan struct{})
	interval := time.Duration(config.Settings.Solver.ProgressInterval) * time.Millisecond
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Info(s.stats.String())
			}
		}
	}()

	// release the init phase lock to signal the calling go routine
	// waiting in StartSolve() to return
	s.initSemaphore.Release(1)

	result := s.Solve(g)
	close(done)

	log.Info("Search result: ", result.SearchResult.String())
	log.Debug(s.tt.String())
}
