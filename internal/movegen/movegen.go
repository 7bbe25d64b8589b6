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

// Package movegen contains the move generator of the solitaire
// engine. Legality is decided on the bitboard level: the bitboard
// layout groups the two cards of equal rank and color into a 2-bit
// lane and puts the cards they may be placed on exactly four bits
// up. Destination existence therefore reduces to lane counting and
// a shift - no per-column scanning happens on the hot path.
package movegen

import (
	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/deck"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// Movegen is a data structure for the move generation.
// Keeps a reusable buffer for deck moves to avoid allocations.
// Create with New().
type Movegen struct {
	deckPileBuffer []moves.Move
}

// New creates a new instance of a move generator
func New() Movegen {
	return Movegen{
		deckPileBuffer: make([]moves.Move, 0, deck.NFullDeck),
	}
}

// GenerateMoves generates all legal moves of the given state into the
// given move slice. The slice is cleared first. Moves are grouped by
// variant in a stable order.
// With dominance set, provably safe foundation moves dominate: when
// one exists only safe foundation moves are produced, foundation
// cards that are safe are not offered back to the tableau and the
// deck iteration leaves out positions reachable more cheaply from an
// earlier cursor.
func (mg *Movegen) GenerateMoves(s *state.State, dominance bool, ml *moveslice.MoveSlice) {
	ml.Clear()

	vis := s.VisibleMask()
	top := s.TopMask()
	nonBase := vis &^ s.BaseMask()
	st := s.Stack()

	// Per 2-bit lane: visible members minus run cards lying on the
	// lane. A lane with spare capacity has a member free to receive a
	// run or to move away (a covered member is freed by relocating the
	// covering run to its twin).
	visCnt := (vis & card.AltMask) + ((vis >> 1) & card.AltMask)
	atkCnt := ((nonBase << 4) & card.AltMask) + ((nonBase << 3) & card.AltMask)
	free2 := visCnt - atkCnt
	freeLanes := ((free2 | (free2 >> 1)) & card.AltMask) * 0b11

	// cards with an available tableau destination
	placeable := freeLanes >> 4
	if s.NumEmptyColumns() > 0 {
		placeable |= card.KingMask
	}

	// 1. tableau to foundation
	pileStack := vis & st.Mask() & freeLanes
	if dominance {
		if safe := pileStack & st.DominanceMask(); safe != 0 {
			// a safe foundation move can always be played first
			for m := safe; m != 0; m &= m - 1 {
				ml.PushBack(moves.MakeMove(moves.PileStack, card.FromMask(m)))
			}
			return
		}
	}
	for m := pileStack; m != 0; m &= m - 1 {
		ml.PushBack(moves.MakeMove(moves.PileStack, card.FromMask(m)))
	}

	// 2. waste to foundation and 4. waste to tableau
	mg.deckPileBuffer = mg.deckPileBuffer[:0]
	s.Deck().IterCallback(dominance, func(pos uint8, c card.Card) bool {
		if c.Rank() == st.Get(c.Suit()) {
			ml.PushBack(moves.MakeMove(moves.DeckStack, c))
		}
		if c.Mask()&placeable != 0 {
			mg.deckPileBuffer = append(mg.deckPileBuffer, moves.MakeMove(moves.DeckPile, c))
		}
		return true
	})

	// 3. foundation back to tableau
	for suit := uint8(0); suit < card.NSuits; suit++ {
		if st.Get(suit) == 0 {
			continue
		}
		c := card.New(st.Get(suit)-1, suit)
		if c.Mask()&placeable == 0 {
			continue
		}
		if dominance && isSafe(st, c) {
			// safe cards never return to the tableau
			continue
		}
		ml.PushBack(moves.MakeMove(moves.StackPile, c))
	}

	for _, m := range mg.deckPileBuffer {
		ml.PushBack(m)
	}

	// 5. run to another column revealing a hidden card
	for m := top & placeable; m != 0; m &= m - 1 {
		ml.PushBack(moves.MakeMove(moves.Reveal, card.FromMask(m)))
	}
}

// CountMoves returns the number of legal moves of the given state.
func (mg *Movegen) CountMoves(s *state.State, dominance bool) int {
	ml := moveslice.New(moveslice.MaxMoves)
	mg.GenerateMoves(s, dominance, &ml)
	return ml.Len()
}

// HasMove checks if the given state has at least one legal move.
func (mg *Movegen) HasMove(s *state.State, dominance bool) bool {
	return mg.CountMoves(s, dominance) > 0
}

// isSafe checks if the given card could have been dropped as a safe
// dominance move: both opposite color foundations at most one rank
// behind.
func isSafe(st *state.Stack, c card.Card) bool {
	o1 := st.Get(c.Suit() ^ 2)
	o2 := st.Get(c.Suit() ^ 3)
	opp := o1
	if o2 < o1 {
		opp = o2
	}
	return c.Rank() <= opp+1
}
