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

// Package graph builds the reachable search graph of a deal as an
// edge list over state encodings. It is the second consumer of the
// generic traversal next to the solver and shares its recursion,
// transposition handling and pruning unchanged.
package graph

import (
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/state"
	"github.com/frankkopp/KlondikeGo/internal/tracking"
	"github.com/frankkopp/KlondikeGo/internal/transpositiontable"
	"github.com/frankkopp/KlondikeGo/internal/traverse"
)

// WinNode is the encoding used as the target of edges into winning
// states.
const WinNode = ^state.Encode(0)

// Edge is one transition between two states.
type Edge struct {
	From state.Encode
	To   state.Encode
}

type builderCallback struct {
	graph   []Edge
	stats   tracking.SearchStatistics
	sign    tracking.SearchSignal
	depth   int
	prevEnc state.Encode
}

func (b *builderCallback) OnWin(g *state.State, revMove moves.Move) traverse.Result {
	b.graph = append(b.graph, Edge{b.prevEnc, WinNode})
	return traverse.Ok
}

func (b *builderCallback) OnVisit(g *state.State, revMove moves.Move, encode state.Encode) traverse.Result {
	if b.sign.IsTerminated() {
		return traverse.Halted
	}
	b.stats.HitAState(b.depth)
	b.graph = append(b.graph, Edge{b.prevEnc, encode})
	return traverse.Ok
}

func (b *builderCallback) OnMoveGen(ml *moveslice.MoveSlice, encode state.Encode) {
	b.stats.HitUniqueState(b.depth, ml.Len())
}

func (b *builderCallback) OnDoMove(pos int, m moves.Move, encode state.Encode) {
	b.prevEnc = encode
	b.depth++
}

func (b *builderCallback) OnUndoMove(pos int, m moves.Move, encode state.Encode) {
	b.depth--
	b.stats.FinishMove(b.depth, pos)
}

func (b *builderCallback) OnStart() {}

func (b *builderCallback) OnFinish(r traverse.Result) {
	b.sign.SearchFinish()
}

// BuildWithTracking walks the state space of the given state as the
// traversal sees it - dominance move generation and pruning applied -
// and returns the edge list. Statistics and signal allow
// observing and cancelling the walk.
func BuildWithTracking(g *state.State, stats tracking.SearchStatistics, sign tracking.SearchSignal) (traverse.Result, []Edge) {
	callback := &builderCallback{
		stats:   stats,
		sign:    sign,
		prevEnc: g.Encode(),
	}
	t := traverse.NewTraverser(transpositiontable.NewSetTable(), callback, true)
	res := t.TraverseGame(g)
	return res, callback.graph
}

// Build walks the state space of the given state like
// BuildWithTracking without statistics and cancellation.
func Build(g *state.State) (traverse.Result, []Edge) {
	return BuildWithTracking(g, &tracking.EmptySearchStats{}, &tracking.DefaultSearchSignal{})
}
