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

// Package state implements the compact solitaire game state. The
// tableau columns are not tracked explicitly: the state keeps a
// bitboard of all face-up tableau cards plus a bitboard of the cards
// lying directly on the face-down piles. Together with the hidden
// pile counts and the foundations this determines all future play,
// which is what makes the 61-bit state encoding a true search key.
package state

import (
	"errors"
	"math/bits"
	"strings"

	"github.com/frankkopp/KlondikeGo/internal/assert"
	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/deck"
	"github.com/frankkopp/KlondikeGo/internal/hidden"
	"github.com/frankkopp/KlondikeGo/internal/moves"
)

// Encode is the canonical transposition key of a state.
//  Bits 0-28: deck encoding
//  Bits 29-44: hidden pile counts
//  Bits 45-60: foundation counters
type Encode uint64

const (
	deckEncodeBits   = 29
	hiddenEncodeBits = 16

	// allCardsMask covers the bitboard bits of all 52 cards.
	allCardsMask = (uint64(1) << card.NCards) - 1
)

// ErrInvalidConstruction is returned when the dealt cards are not a
// permutation of all 52 cards or the draw step is out of range.
var ErrInvalidConstruction = errors.New("cards are not a permutation of the deck or draw step is invalid")

// State is the full game state of a solitaire game. It is a value
// type: assignment creates an independent copy.
// Create with NewState().
type State struct {
	deck        deck.Deck
	hidden      hidden.Hidden
	stack       Stack
	visibleMask uint64
	topMask     uint64
}

// NewState creates a game state from a deal of 52 distinct cards and
// a draw step. The first 28 cards fill the hidden piles in triangular
// layout, the remaining 24 the stock.
func NewState(cards *[card.NCards]card.Card, drawStep uint8) (*State, error) {
	if drawStep == 0 || drawStep > deck.NFullDeck {
		return nil, ErrInvalidConstruction
	}
	var seen [card.NCards]bool
	for _, c := range cards {
		if c >= card.Fake || seen[c.Value()] {
			return nil, ErrInvalidConstruction
		}
		seen[c.Value()] = true
	}

	var hiddenCards [hidden.NPileCards]card.Card
	copy(hiddenCards[:], cards[:hidden.NPileCards])
	var deckCards [deck.NFullDeck]card.Card
	copy(deckCards[:], cards[hidden.NPileCards:])

	s := &State{
		deck:   *deck.New(&deckCards, drawStep),
		hidden: *hidden.New(&hiddenCards),
	}

	for pos := uint8(0); pos < hidden.NPiles; pos++ {
		top, _ := s.hidden.Peek(pos)
		s.visibleMask |= top.Mask()
		if top.Rank() < card.KingRank || s.hidden.Len(pos) > 1 {
			s.topMask |= top.Mask()
		}
	}
	return s, nil
}

// FromComponents assembles a state from an existing deck, hidden
// piles and foundations. The visible and top bitboards are derived:
// every card that is neither in the deck nor on a foundation nor
// face-down is on the tableau.
func FromComponents(d *deck.Deck, h *hidden.Hidden, st *Stack) *State {
	s := &State{
		deck:   *d,
		hidden: *h,
		stack:  *st,
	}
	s.rebuildMasks()
	return s
}

// Deck gives access to the stock and waste of the state.
func (s *State) Deck() *deck.Deck {
	return &s.deck
}

// Hidden gives access to the face-down piles of the state.
func (s *State) Hidden() *hidden.Hidden {
	return &s.hidden
}

// Stack gives access to the foundations of the state.
func (s *State) Stack() *Stack {
	return &s.stack
}

// VisibleMask returns the bitboard of all face-up tableau cards.
func (s *State) VisibleMask() uint64 {
	return s.visibleMask
}

// TopMask returns the bitboard of the face-up card dealt on every
// pile (the last counted card of each hidden pile). Moving such a
// card away reveals the next hidden card, or empties the column when
// no face-down card is left. A king that is the last card of its pile
// is left out - moving it frees a column only another king could use.
func (s *State) TopMask() uint64 {
	return s.topMask
}

// BaseMask returns the bitboard of the bottom card of every occupied
// tableau column. Kings start columns of their own when moved onto an
// empty column.
func (s *State) BaseMask() uint64 {
	return s.topMask | (s.visibleMask & card.KingMask)
}

// NumEmptyColumns returns the number of columns with no cards at all.
func (s *State) NumEmptyColumns() uint8 {
	return hidden.NPiles - uint8(bits.OnesCount64(s.BaseMask()))
}

// IsWin checks if all four foundations are complete.
func (s *State) IsWin() bool {
	return s.stack.IsFull()
}

// DoMove applies the given legal move to the state and returns the
// information needed to undo it.
func (s *State) DoMove(m moves.Move) moves.UndoInfo {
	c := m.Card()
	mask := c.Mask()
	switch m.Type() {
	case moves.DeckStack:
		offset := s.deck.GetOffset()
		pos, found := s.deck.FindCard(c)
		if assert.DEBUG {
			assert.Assert(found, "state.DoMove: card %s not in deck", c.String())
		}
		s.deck.Draw(pos)
		s.stack.Push(c.Suit())
		return moves.UndoInfo{Offset: offset}
	case moves.DeckPile:
		offset := s.deck.GetOffset()
		pos, found := s.deck.FindCard(c)
		if assert.DEBUG {
			assert.Assert(found, "state.DoMove: card %s not in deck", c.String())
		}
		s.deck.Draw(pos)
		s.visibleMask |= mask
		return moves.UndoInfo{Offset: offset}
	case moves.PileStack:
		s.visibleMask ^= mask
		revealed := s.topMask&mask != 0
		if revealed {
			s.makeReveal(c)
		}
		s.stack.Push(c.Suit())
		return moves.UndoInfo{Revealed: revealed}
	case moves.StackPile:
		s.stack.Pop(c.Suit())
		s.visibleMask |= mask
		return moves.UndoInfo{}
	case moves.Reveal:
		s.makeReveal(c)
		return moves.UndoInfo{}
	}
	return moves.UndoInfo{}
}

// UndoMove reverts the given move. The undo info must come from the
// matching DoMove and the state must not have been changed since.
func (s *State) UndoMove(m moves.Move, undo moves.UndoInfo) {
	c := m.Card()
	mask := c.Mask()
	switch m.Type() {
	case moves.DeckStack:
		s.stack.Pop(c.Suit())
		s.deck.Push(c)
		s.deck.SetOffset(undo.Offset)
	case moves.DeckPile:
		s.visibleMask ^= mask
		s.deck.Push(c)
		s.deck.SetOffset(undo.Offset)
	case moves.PileStack:
		s.stack.Pop(c.Suit())
		if undo.Revealed {
			s.unmakeReveal(c)
		}
		s.visibleMask |= mask
	case moves.StackPile:
		s.visibleMask ^= mask
		s.stack.Push(c.Suit())
	case moves.Reveal:
		s.unmakeReveal(c)
	}
}

// RevMove returns the move which would undo the given move right
// after it has been applied - when such a single move exists. Must be
// called before DoMove.
func (s *State) RevMove(m moves.Move) moves.Move {
	switch m.Type() {
	case moves.PileStack:
		// only reversible when no hidden card gets revealed
		if s.topMask&m.Card().Mask() == 0 {
			return moves.MakeMove(moves.StackPile, m.Card())
		}
	case moves.StackPile:
		return moves.MakeMove(moves.PileStack, m.Card())
	}
	return moves.MoveNone
}

// Encode returns the canonical transposition key of the state.
func (s *State) Encode() Encode {
	return Encode(s.deck.Encode()) |
		Encode(s.hidden.Encode())<<deckEncodeBits |
		Encode(s.stack.Encode())<<(deckEncodeBits+hiddenEncodeBits)
}

// Decode restores the state from an encoding produced by a state of
// the same deal.
func (s *State) Decode(encode Encode) {
	s.deck.Decode(uint32(encode & ((1 << deckEncodeBits) - 1)))
	s.hidden.Decode(uint16((encode >> deckEncodeBits) & ((1 << hiddenEncodeBits) - 1)))
	s.stack.Decode(uint16(encode >> (deckEncodeBits + hiddenEncodeBits)))
	s.rebuildMasks()
}

// EquivalentTo checks if both states are operationally
// indistinguishable for future play.
func (s *State) EquivalentTo(other *State) bool {
	return s.stack == other.stack &&
		s.visibleMask == other.visibleMask &&
		s.topMask == other.topMask &&
		s.hidden.Encode() == other.hidden.Encode() &&
		s.deck.EquivalentTo(&other.deck)
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	clone := *s
	return &clone
}

// VisiblePiles reconstructs explicit tableau columns from the
// bitboard representation. Cards of equal rank and color are
// interchangeable so any consistent assignment is returned.
func (s *State) VisiblePiles() [hidden.NPiles][]card.Card {
	var piles [hidden.NPiles][]card.Card
	nonBase := s.visibleMask &^ s.BaseMask()
	used := uint64(0)

	buildRun := func(base card.Card) []card.Card {
		run := []card.Card{base}
		cur := base
		for {
			children := (card.PairMask(cur.Mask()) >> 4) & nonBase &^ used
			if children == 0 {
				break
			}
			child := card.FromMask(children)
			used |= child.Mask()
			run = append(run, child)
			cur = child
		}
		return run
	}

	// columns still holding hidden cards keep their revealed top as
	// base - unless that top is a lone king which already reached a
	// foundation (its pile count is never decremented)
	freePiles := make([]uint8, 0, hidden.NPiles)
	for pos := uint8(0); pos < hidden.NPiles; pos++ {
		top, ok := s.hidden.Peek(pos)
		if !ok || s.visibleMask&top.Mask() == 0 {
			freePiles = append(freePiles, pos)
			continue
		}
		piles[pos] = buildRun(top)
	}

	// remaining bases are kings moved onto empty columns
	movedKings := s.visibleMask & card.KingMask &^ s.topMask
	for pos := uint8(0); pos < hidden.NPiles; pos++ {
		top, ok := s.hidden.Peek(pos)
		if ok && top.IsKing() && s.hidden.Len(pos) == 1 {
			// lone king revealed in place, not a moved king
			movedKings &^= top.Mask()
		}
	}
	for movedKings != 0 && len(freePiles) > 0 {
		king := card.FromMask(movedKings)
		movedKings &= movedKings - 1
		piles[freePiles[0]] = buildRun(king)
		freePiles = freePiles[1:]
	}
	return piles
}

// String returns a string representation of the state.
func (s *State) String() string {
	var os strings.Builder
	os.WriteString(s.stack.String())
	os.WriteString("\n")
	piles := s.VisiblePiles()
	for pos := uint8(0); pos < hidden.NPiles; pos++ {
		down := s.hidden.Len(pos)
		if down > 0 {
			down--
		}
		os.WriteString(strings.Repeat("## ", int(down)))
		for _, c := range piles[pos] {
			os.WriteString(c.String())
			os.WriteString(" ")
		}
		os.WriteString("\n")
	}
	os.WriteString(s.deck.String())
	return os.String()
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// makeReveal moves the top of the card's hidden pile away and turns
// the next card face up.
func (s *State) makeReveal(c card.Card) {
	pos := s.hidden.Find(c)
	s.topMask &^= c.Mask()
	newCard, ok := s.hidden.Pop(pos)
	if ok {
		revealed := newCard.Mask()
		s.visibleMask |= revealed
		if newCard.Rank() < card.KingRank || s.hidden.Len(pos) > 1 {
			s.topMask |= revealed
		}
	}
}

// unmakeReveal is the inverse of makeReveal.
func (s *State) unmakeReveal(c card.Card) {
	pos := s.hidden.Find(c)
	if newCard, ok := s.hidden.Peek(pos); ok {
		revealed := newCard.Mask()
		s.visibleMask &^= revealed
		s.topMask &^= revealed
	}
	s.hidden.Unpop(pos)
	s.topMask |= c.Mask()
}

// rebuildMasks recomputes the visible and top bitboards from deck,
// hidden counts and foundations.
func (s *State) rebuildMasks() {
	nonTableau := uint64(0)
	for suit := uint8(0); suit < card.NSuits; suit++ {
		for rank := uint8(0); rank < s.stack.Get(suit); rank++ {
			nonTableau |= card.New(rank, suit).Mask()
		}
	}
	s.deck.IterAll(func(_ uint8, c card.Card, _ deck.Drawable) {
		nonTableau |= c.Mask()
	})

	top := uint64(0)
	for pos := uint8(0); pos < hidden.NPiles; pos++ {
		pile := s.hidden.Get(pos)
		if len(pile) == 0 {
			continue
		}
		for _, c := range pile[:len(pile)-1] {
			nonTableau |= c.Mask()
		}
		topCard := pile[len(pile)-1]
		if topCard.Rank() < card.KingRank || len(pile) > 1 {
			top |= topCard.Mask()
		}
	}

	s.visibleMask = allCardsMask &^ nonTableau
	s.topMask = top
}
