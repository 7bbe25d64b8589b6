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

// Package tracking contains the observer interfaces of the search:
// statistics collection and the cooperative cancel signal. Both must
// not affect search semantics - the solver works the same with the
// empty implementations.
package tracking

import (
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/KlondikeGo/internal/util"
)

var out = message.NewPrinter(language.German)

// TrackDepth is the number of levels near the root for which the
// per-move progress is tracked.
const TrackDepth = 8

// SearchStatistics collects counters during a search.
type SearchStatistics interface {
	// HitAState is called on every visited state.
	HitAState(depth int)
	// HitUniqueState is called when a state is expanded the first time.
	HitUniqueState(depth int, nMoves int)
	// FinishMove is called after a child of a state has been searched.
	FinishMove(depth int, pos int)

	TotalVisit() uint64
	UniqueVisit() uint64
	MaxDepth() uint64
}

// EmptySearchStats collects nothing.
type EmptySearchStats struct{}

// HitAState collects nothing.
func (*EmptySearchStats) HitAState(int) {}

// HitUniqueState collects nothing.
func (*EmptySearchStats) HitUniqueState(int, int) {}

// FinishMove collects nothing.
func (*EmptySearchStats) FinishMove(int, int) {}

// TotalVisit returns 0.
func (*EmptySearchStats) TotalVisit() uint64 { return 0 }

// UniqueVisit returns 0.
func (*EmptySearchStats) UniqueVisit() uint64 { return 0 }

// MaxDepth returns 0.
func (*EmptySearchStats) MaxDepth() uint64 { return 0 }

// AtomicSearchStats collects counters with atomic operations so a
// progress reporter may read them while the search is running.
// Create with NewAtomicSearchStats().
type AtomicSearchStats struct {
	totalVisit  uint64
	uniqueVisit uint64
	maxDepth    uint64
	moveState   [TrackDepth]struct{ cur, total uint32 }
}

// NewAtomicSearchStats creates a new statistics instance.
func NewAtomicSearchStats() *AtomicSearchStats {
	return &AtomicSearchStats{}
}

// HitAState counts the visit and raises the maximum depth.
func (s *AtomicSearchStats) HitAState(depth int) {
	atomic.AddUint64(&s.totalVisit, 1)
	for {
		max := atomic.LoadUint64(&s.maxDepth)
		if uint64(depth) <= max || atomic.CompareAndSwapUint64(&s.maxDepth, max, uint64(depth)) {
			break
		}
	}
}

// HitUniqueState counts the first expansion of a state and resets the
// progress tracking of its level.
func (s *AtomicSearchStats) HitUniqueState(depth int, nMoves int) {
	atomic.AddUint64(&s.uniqueVisit, 1)
	if depth < TrackDepth {
		atomic.StoreUint32(&s.moveState[depth].cur, 0)
		atomic.StoreUint32(&s.moveState[depth].total, uint32(nMoves))
	}
}

// FinishMove advances the progress tracking of the given level.
func (s *AtomicSearchStats) FinishMove(depth int, pos int) {
	if depth < TrackDepth {
		atomic.StoreUint32(&s.moveState[depth].cur, uint32(pos+1))
	}
}

// TotalVisit returns the number of visited states.
func (s *AtomicSearchStats) TotalVisit() uint64 {
	return atomic.LoadUint64(&s.totalVisit)
}

// UniqueVisit returns the number of expanded states.
func (s *AtomicSearchStats) UniqueVisit() uint64 {
	return atomic.LoadUint64(&s.uniqueVisit)
}

// MaxDepth returns the deepest visited level.
func (s *AtomicSearchStats) MaxDepth() uint64 {
	return atomic.LoadUint64(&s.maxDepth)
}

// String returns a string representation of the statistics.
func (s *AtomicSearchStats) String() string {
	total := s.TotalVisit()
	unique := s.UniqueVisit()
	hit := total - unique
	var os strings.Builder
	os.WriteString(out.Sprintf("Total visit: %d Transposition hit: %d (rate %.3f) Unique: %d Max depth: %d Progress:",
		total, hit, float64(hit)/float64(total+1), unique, s.MaxDepth()))
	for i := range s.moveState {
		os.WriteString(out.Sprintf(" %d/%d",
			atomic.LoadUint32(&s.moveState[i].cur), atomic.LoadUint32(&s.moveState[i].total)))
	}
	return os.String()
}

// SearchSignal is the cooperative cancellation contract of a search.
// The search consults IsTerminated at every recursion entry and calls
// SearchFinish once when it returns.
type SearchSignal interface {
	Terminate()
	IsTerminated() bool
	SearchFinish()
}

// DefaultSearchSignal never terminates.
type DefaultSearchSignal struct{}

// Terminate does nothing.
func (*DefaultSearchSignal) Terminate() {}

// IsTerminated always returns false.
func (*DefaultSearchSignal) IsTerminated() bool { return false }

// SearchFinish does nothing.
func (*DefaultSearchSignal) SearchFinish() {}

// AtomicSearchSignal is a SearchSignal on an atomic flag. The caller
// may terminate from any goroutine at any time.
// Create with NewAtomicSearchSignal().
type AtomicSearchSignal struct {
	terminated *util.Bool
	finished   *util.Bool
}

// NewAtomicSearchSignal creates a new signal instance.
func NewAtomicSearchSignal() *AtomicSearchSignal {
	return &AtomicSearchSignal{
		terminated: util.NewBool(false),
		finished:   util.NewBool(false),
	}
}

// Terminate asks the search to stop as soon as possible.
func (s *AtomicSearchSignal) Terminate() {
	s.terminated.Store(true)
}

// IsTerminated checks if the search has been asked to stop.
func (s *AtomicSearchSignal) IsTerminated() bool {
	return s.terminated.Load()
}

// SearchFinish marks the search as finished.
func (s *AtomicSearchSignal) SearchFinish() {
	s.finished.Store(true)
}

// IsFinished checks if the search has finished.
func (s *AtomicSearchSignal) IsFinished() bool {
	return s.finished.Load()
}
