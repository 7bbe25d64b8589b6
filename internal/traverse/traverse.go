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

// Package traverse implements the generic depth-first recursion over
// the solitaire state space. It owns the transposition handling, the
// pruner threading and the do/undo discipline; consumers provide a
// callback set. The solver and the graph builder are two such
// consumers sharing this one recursion.
package traverse

import (
	"github.com/frankkopp/KlondikeGo/internal/movegen"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/pruning"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// Result is the outcome of a traversal step.
type Result int8

// Result values
const (
	// Ok - the subtree has been traversed completely
	Ok Result = iota
	// Skip - the callback asked to not expand this state
	Skip
	// Halted - the traversal has been stopped and is unwinding
	Halted
)

// TranspositionTable is the visited-state cache contract of the
// traversal. Insert reports a state and returns true when it was
// new; Release takes a state off the current path when its subtree
// is done. Membership must be monotone within a single branch.
type TranspositionTable interface {
	Insert(encode state.Encode) bool
	Release(encode state.Encode)
	Clear()
}

// Callbacks is the capability set a consumer of the traversal
// implements. The callbacks must not mutate the state.
type Callbacks interface {
	// OnWin is called in a winning state.
	OnWin(s *state.State, revMove moves.Move) Result
	// OnVisit is called on entry of every non winning state.
	OnVisit(s *state.State, revMove moves.Move, encode state.Encode) Result
	// OnMoveGen is called after the filtered move list of a newly
	// expanded state has been generated.
	OnMoveGen(ml *moveslice.MoveSlice, encode state.Encode)
	// OnDoMove is called before a move is applied.
	OnDoMove(pos int, m moves.Move, encode state.Encode)
	// OnUndoMove is called after a move has been reverted.
	OnUndoMove(pos int, m moves.Move, encode state.Encode)
	// OnStart is called once before the root is visited.
	OnStart()
	// OnFinish is called once with the final result.
	OnFinish(r Result)
}

// Traverser holds the recursion state of one traversal.
// Create with NewTraverser().
type Traverser struct {
	mg        movegen.Movegen
	tp        TranspositionTable
	callbacks Callbacks
	dominance bool
	moveLists []moveslice.MoveSlice
}

// NewTraverser creates a traverser with the given transposition
// table and callback set.
func NewTraverser(tp TranspositionTable, callbacks Callbacks, dominance bool) *Traverser {
	return &Traverser{
		mg:        movegen.New(),
		tp:        tp,
		callbacks: callbacks,
		dominance: dominance,
	}
}

// TraverseGame runs the traversal from the given state. The state is
// guaranteed to be restored on every exit path.
func (t *Traverser) TraverseGame(g *state.State) Result {
	t.callbacks.OnStart()
	res := t.traverse(g, pruning.Root(), 0)
	t.callbacks.OnFinish(res)
	return res
}

func (t *Traverser) traverse(g *state.State, prune pruning.PruneInfo, depth int) Result {
	if g.IsWin() {
		return t.callbacks.OnWin(g, prune.RevMove())
	}

	encode := g.Encode()

	switch t.callbacks.OnVisit(g, prune.RevMove(), encode) {
	case Halted:
		return Halted
	case Skip:
		return Skip
	}

	if !t.tp.Insert(encode) {
		return Ok
	}

	if depth >= len(t.moveLists) {
		t.moveLists = append(t.moveLists, moveslice.New(moveslice.MaxMoves))
	}
	ml := &t.moveLists[depth]
	t.mg.GenerateMoves(g, t.dominance, ml)
	prune.FilterMoves(g, ml)
	t.callbacks.OnMoveGen(ml, encode)

	for pos := 0; pos < ml.Len(); pos++ {
		m := ml.At(pos)

		childPrune := pruning.Next(g, &prune, m)

		t.callbacks.OnDoMove(pos, m, encode)
		undo := g.DoMove(m)

		res := t.traverse(g, childPrune, depth+1)

		g.UndoMove(m, undo)
		t.callbacks.OnUndoMove(pos, m, encode)

		if res == Halted {
			return Halted
		}
	}

	t.tp.Release(encode)
	return Ok
}
