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

// Package engine wraps the compact state into a forward-playing
// facade for consumers that never undo: the heuristic ranking and
// the Monte-Carlo advisor. The wrapper validates moves against the
// generator and threads the pruning state across moves the same way
// the solver does.
package engine

import (
	"github.com/frankkopp/KlondikeGo/internal/movegen"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/pruning"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// SolitaireEngine is a forward-playing facade over a game state.
// Create with New().
type SolitaireEngine struct {
	state *state.State
	mg    movegen.Movegen
	prune pruning.PruneInfo
}

// New creates an engine owning the given state.
func New(s *state.State) *SolitaireEngine {
	return &SolitaireEngine{
		state: s,
		mg:    movegen.New(),
		prune: pruning.Root(),
	}
}

// State returns the wrapped state.
func (e *SolitaireEngine) State() *state.State {
	return e.state
}

// Clone returns an independent engine on a copy of the state.
func (e *SolitaireEngine) Clone() *SolitaireEngine {
	return &SolitaireEngine{
		state: e.state.Clone(),
		mg:    movegen.New(),
		prune: e.prune,
	}
}

// ListMoves returns the legal moves of the current state.
func (e *SolitaireEngine) ListMoves() moveslice.MoveSlice {
	ml := moveslice.New(moveslice.MaxMoves)
	e.mg.GenerateMoves(e.state, false, &ml)
	return ml
}

// ListMovesDom returns the legal moves of the current state with
// dominance and branch pruning applied.
func (e *SolitaireEngine) ListMovesDom() moveslice.MoveSlice {
	ml := moveslice.New(moveslice.MaxMoves)
	e.mg.GenerateMoves(e.state, true, &ml)
	e.prune.FilterMoves(e.state, &ml)
	return ml
}

// DoMove validates and applies the given move. Returns false and
// leaves the state unchanged when the move is not currently legal.
func (e *SolitaireEngine) DoMove(m moves.Move) bool {
	ml := e.ListMoves()
	if !ml.Contains(m) {
		return false
	}
	e.prune = pruning.Next(e.state, &e.prune, m)
	e.state.DoMove(m)
	return true
}

// IsWon checks if the wrapped state is won.
func (e *SolitaireEngine) IsWon() bool {
	return e.state.IsWin()
}
