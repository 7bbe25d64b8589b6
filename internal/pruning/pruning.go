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

// Package pruning implements the per-branch filter of provably
// redundant moves. Each search branch carries the last move, the
// most recent waste card dealt to the tableau which has not been
// consumed yet, and the reverse of the last move. From these a
// five-entry bitboard filter is built - one bitboard per move
// variant - and a move is dropped when its card hits the bitboard
// of its variant.
package pruning

import (
	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// PruneInfo carries the per-branch pruning state.
type PruneInfo struct {
	revMove  moves.Move
	lastMove moves.Move
	lastDraw card.Card // card.Fake when no deal is pending
}

// Root returns the pruning state of the search root.
func Root() PruneInfo {
	return PruneInfo{
		revMove:  moves.MoveNone,
		lastMove: moves.MoveNone,
		lastDraw: card.Fake,
	}
}

// Next returns the pruning state of the child branch reached by the
// given move. Must be called before the move is applied to the state.
//
// The pending deal survives foundation moves, is replaced by a further
// deal, is consumed by a StackPile onto it and invalidated by a Reveal.
func Next(s *state.State, prev *PruneInfo, m moves.Move) PruneInfo {
	lastDraw := card.Fake
	switch m.Type() {
	case moves.DeckPile:
		lastDraw = m.Card()
	case moves.PileStack, moves.DeckStack:
		lastDraw = prev.lastDraw
	case moves.StackPile:
		if prev.lastDraw == card.Fake || !prev.lastDraw.GoesBefore(m.Card()) {
			lastDraw = prev.lastDraw
		}
	case moves.Reveal:
		// lastDraw cleared
	}
	return PruneInfo{
		revMove:  s.RevMove(m),
		lastMove: m,
		lastDraw: lastDraw,
	}
}

// RevMove returns the reverse of the last move or MoveNone.
func (p *PruneInfo) RevMove() moves.Move {
	return p.revMove
}

// LastMove returns the last move of the branch.
func (p *PruneInfo) LastMove() moves.Move {
	return p.lastMove
}

// PruneMoves builds the filter bitboards for the given state. A move
// is redundant when the bitboard of its variant contains its card.
func (p *PruneInfo) PruneMoves(s *state.State) [moves.NMoveTypes]uint64 {
	firstLayer := s.Hidden().FirstLayerMask()
	var filter [moves.NMoveTypes]uint64

	// after a reveal onto the first hidden layer the opened column is
	// already playable for a king - placing one now is redundant
	if p.lastMove.Type() == moves.Reveal && firstLayer&p.lastMove.Card().Mask() != 0 {
		filter[moves.StackPile] |= card.KingMask
		filter[moves.DeckPile] |= card.KingMask
		filter[moves.Reveal] |= card.KingMask
	}

	if p.lastDraw != card.Fake {
		m := p.lastDraw.Mask()
		mm := card.PairMask(m)
		// stacking the twin of the dealt card should have happened
		// before the deal
		filter[moves.PileStack] |= mm &^ m
		// a reveal is only useful when the freed run lands on the
		// dealt card - except reveals opening the first hidden layer
		// which may be forced to happen now or never
		filter[moves.Reveal] |= ^((mm >> 4) | firstLayer)
	}

	if p.revMove != moves.MoveNone {
		filter[p.revMove.Type()] |= p.revMove.Card().Mask()
	}
	return filter
}

// FilterMoves removes all redundant moves of the given list in place.
func (p *PruneInfo) FilterMoves(s *state.State, ml *moveslice.MoveSlice) {
	filter := p.PruneMoves(s)
	ml.Filter(func(i int) bool {
		m := ml.At(i)
		return filter[m.Type()]&m.Card().Mask() == 0
	})
}
