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

// Package standard implements the column-accurate reference engine.
// Unlike the compact search state it tracks every tableau column
// explicitly and accepts only single-step operations the way a human
// would play them. It is the replay target of the converter and the
// bridge to the partial-information overlay.
package standard

import (
	"errors"

	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/deck"
	"github.com/frankkopp/KlondikeGo/internal/hidden"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// ErrInvalidMove is returned when a move can not be applied to the
// current state. The state stays unchanged.
var ErrInvalidMove = errors.New("invalid move")

// PosKind is the location class of a standard move end point.
type PosKind uint8

// PosKind values
const (
	PosDeck PosKind = iota
	PosStack
	PosPile
)

// Pos is one end point of a standard move: the deck, a foundation
// (by suit) or a tableau pile (by index).
type Pos struct {
	Kind PosKind
	Idx  uint8
}

// StandardMove is a single-step operation on the reference engine.
type StandardMove struct {
	From Pos
	To   Pos
	Card card.Card
}

// DrawNext is the operation revealing the next cards from the stock.
var DrawNext = StandardMove{From: Pos{Kind: PosDeck}, To: Pos{Kind: PosDeck}, Card: card.Fake}

// HistoryVec is a sequence of standard moves.
type HistoryVec []StandardMove

// StandardSolitaire is the column-accurate game state.
// Create with NewStandardSolitaire().
type StandardSolitaire struct {
	hiddenPiles [hidden.NPiles][]card.Card
	piles       [hidden.NPiles][]card.Card
	deck        deck.Deck
	stack       state.Stack
}

// NewStandardSolitaire creates a game from a deal of 52 cards. The
// first 28 cards fill the hidden piles in triangular layout with the
// top card of every pile turned up, the remaining 24 the stock.
func NewStandardSolitaire(cards *[card.NCards]card.Card, drawStep uint8) *StandardSolitaire {
	g := &StandardSolitaire{}
	for i := uint8(0); i < hidden.NPiles; i++ {
		start := i * (i + 1) / 2
		end := (i + 2) * (i + 1) / 2
		pile := cards[start:end]
		g.hiddenPiles[i] = append(g.hiddenPiles[i], pile[:len(pile)-1]...)
		g.piles[i] = append(g.piles[i], pile[len(pile)-1])
	}
	var deckCards [deck.NFullDeck]card.Card
	copy(deckCards[:], cards[hidden.NPileCards:])
	g.deck = *deck.New(&deckCards, drawStep)
	return g
}

// FromState creates a reference game from a compact search state.
// Twin cards of equal rank and color are interchangeable in the
// compact state so any consistent column assignment is produced.
func FromState(s *state.State) *StandardSolitaire {
	g := &StandardSolitaire{
		deck:  *s.Deck(),
		stack: *s.Stack(),
	}
	hiddenParts := s.Hidden().ToPiles()
	visible := s.VisiblePiles()
	for i := uint8(0); i < hidden.NPiles; i++ {
		g.hiddenPiles[i] = append(g.hiddenPiles[i], hiddenParts[i]...)
		g.piles[i] = append(g.piles[i], visible[i]...)
	}
	return g
}

// ToState converts the reference game into a compact search state.
func (g *StandardSolitaire) ToState() *state.State {
	var piles [hidden.NPiles][]card.Card
	var top [hidden.NPiles]card.Card
	for i := uint8(0); i < hidden.NPiles; i++ {
		piles[i] = g.hiddenPiles[i]
		top[i] = card.Fake
		if len(g.piles[i]) > 0 {
			top[i] = g.piles[i][0]
		}
	}
	h := hidden.FromPiles(&piles, &top)
	d := g.deck
	st := g.stack
	return state.FromComponents(&d, h, &st)
}

// Piles returns the visible tableau columns.
func (g *StandardSolitaire) Piles() *[hidden.NPiles][]card.Card {
	return &g.piles
}

// HiddenPiles returns the face-down parts of the tableau columns.
func (g *StandardSolitaire) HiddenPiles() *[hidden.NPiles][]card.Card {
	return &g.hiddenPiles
}

// Deck gives access to the stock and waste.
func (g *StandardSolitaire) Deck() *deck.Deck {
	return &g.deck
}

// Stack gives access to the foundations.
func (g *StandardSolitaire) Stack() *state.Stack {
	return &g.stack
}

// IsWin checks if all four foundations are complete.
func (g *StandardSolitaire) IsWin() bool {
	return g.stack.IsFull()
}

// Clone returns an independent copy of the game.
func (g *StandardSolitaire) Clone() *StandardSolitaire {
	clone := &StandardSolitaire{
		deck:  g.deck,
		stack: g.stack,
	}
	for i := uint8(0); i < hidden.NPiles; i++ {
		clone.hiddenPiles[i] = append([]card.Card(nil), g.hiddenPiles[i]...)
		clone.piles[i] = append([]card.Card(nil), g.piles[i]...)
	}
	return clone
}

// FindDeckCard returns the number of draw operations needed until
// the given card becomes the current waste card.
func (g *StandardSolitaire) FindDeckCard(c card.Card) (uint8, bool) {
	if offset := g.deck.GetOffset(); offset > 0 && g.deck.Peek(offset-1) == c {
		return 0, true
	}
	// one full cycle plus the steps to the wrap covers every
	// reachable cursor position from anywhere in the cycle
	totalSteps := 2 * ((g.deck.Len()+g.deck.DrawStep()-1)/g.deck.DrawStep() + 1)
	for n := uint8(1); n <= totalSteps; n++ {
		offset := g.deck.Offset(n)
		if offset > 0 && g.deck.Peek(offset-1) == c {
			return n, true
		}
	}
	return 0, false
}

// FindFreePile returns a tableau pile the given card may be moved
// onto: a pile whose top accepts the card or an empty pile for a
// king.
func (g *StandardSolitaire) FindFreePile(c card.Card) (uint8, bool) {
	emptyPile := hidden.NPiles
	for i := uint8(0); i < hidden.NPiles; i++ {
		if len(g.piles[i]) == 0 {
			if len(g.hiddenPiles[i]) == 0 && emptyPile == hidden.NPiles {
				emptyPile = i
			}
			continue
		}
		top := g.piles[i][len(g.piles[i])-1]
		if top.GoesBefore(c) {
			return i, true
		}
	}
	if c.IsKing() && emptyPile < hidden.NPiles {
		return emptyPile, true
	}
	return 0, false
}

// FindTopCard returns the pile whose deepest visible card is the
// given card.
func (g *StandardSolitaire) FindTopCard(c card.Card) (uint8, bool) {
	for i := uint8(0); i < hidden.NPiles; i++ {
		if len(g.piles[i]) > 0 && g.piles[i][0] == c {
			return i, true
		}
	}
	return 0, false
}

// FindCard returns the pile holding the given card and the visible
// run starting at it.
func (g *StandardSolitaire) FindCard(c card.Card) (uint8, []card.Card, bool) {
	for i := uint8(0); i < hidden.NPiles; i++ {
		for j, pc := range g.piles[i] {
			if pc == c {
				return i, g.piles[i][j:], true
			}
		}
	}
	return 0, nil, false
}

// DoMove applies a single standard operation. On error the state is
// unchanged.
func (g *StandardSolitaire) DoMove(m StandardMove) error {
	if m == DrawNext {
		g.deck.DealOnce()
		return nil
	}
	switch {
	case m.From.Kind == PosDeck && m.To.Kind == PosPile:
		return g.deckToPile(m.To.Idx, m.Card)
	case m.From.Kind == PosDeck && m.To.Kind == PosStack:
		return g.deckToStack(m.Card)
	case m.From.Kind == PosPile && m.To.Kind == PosStack:
		return g.pileToStack(m.From.Idx, m.Card)
	case m.From.Kind == PosStack && m.To.Kind == PosPile:
		return g.stackToPile(m.To.Idx, m.Card)
	case m.From.Kind == PosPile && m.To.Kind == PosPile:
		return g.pileToPile(m.From.Idx, m.To.Idx, m.Card)
	}
	return ErrInvalidMove
}

// DoMoves applies a sequence of standard operations stopping at the
// first invalid one.
func (g *StandardSolitaire) DoMoves(ms HistoryVec) error {
	for _, m := range ms {
		if err := g.DoMove(m); err != nil {
			return err
		}
	}
	return nil
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

func (g *StandardSolitaire) acceptsOnPile(pile uint8, c card.Card) bool {
	if len(g.piles[pile]) == 0 {
		return len(g.hiddenPiles[pile]) == 0 && c.IsKing()
	}
	top := g.piles[pile][len(g.piles[pile])-1]
	return top.GoesBefore(c)
}

func (g *StandardSolitaire) deckToPile(pile uint8, c card.Card) error {
	cur, ok := g.deck.PeekCurrent()
	if !ok || cur != c || !g.acceptsOnPile(pile, c) {
		return ErrInvalidMove
	}
	g.deck.DrawCurrent()
	g.piles[pile] = append(g.piles[pile], c)
	return nil
}

func (g *StandardSolitaire) deckToStack(c card.Card) error {
	cur, ok := g.deck.PeekCurrent()
	if !ok || cur != c || c.Rank() != g.stack.Get(c.Suit()) {
		return ErrInvalidMove
	}
	g.deck.DrawCurrent()
	g.stack.Push(c.Suit())
	return nil
}

func (g *StandardSolitaire) pileToStack(pile uint8, c card.Card) error {
	n := len(g.piles[pile])
	if n == 0 || g.piles[pile][n-1] != c || c.Rank() != g.stack.Get(c.Suit()) {
		return ErrInvalidMove
	}
	g.piles[pile] = g.piles[pile][:n-1]
	g.stack.Push(c.Suit())
	g.turnUp(pile)
	return nil
}

func (g *StandardSolitaire) stackToPile(pile uint8, c card.Card) error {
	if g.stack.Get(c.Suit()) != c.Rank()+1 || !g.acceptsOnPile(pile, c) {
		return ErrInvalidMove
	}
	g.stack.Pop(c.Suit())
	g.piles[pile] = append(g.piles[pile], c)
	return nil
}

func (g *StandardSolitaire) pileToPile(from, to uint8, c card.Card) error {
	if from == to {
		return ErrInvalidMove
	}
	pos := -1
	for j, pc := range g.piles[from] {
		if pc == c {
			pos = j
			break
		}
	}
	if pos < 0 || !g.acceptsOnPile(to, c) {
		return ErrInvalidMove
	}
	run := g.piles[from][pos:]
	g.piles[to] = append(g.piles[to], run...)
	g.piles[from] = g.piles[from][:pos]
	g.turnUp(from)
	return nil
}

// turnUp flips the next hidden card when a column lost its last
// visible card.
func (g *StandardSolitaire) turnUp(pile uint8) {
	if len(g.piles[pile]) == 0 && len(g.hiddenPiles[pile]) > 0 {
		n := len(g.hiddenPiles[pile])
		g.piles[pile] = append(g.piles[pile], g.hiddenPiles[pile][n-1])
		g.hiddenPiles[pile] = g.hiddenPiles[pile][:n-1]
	}
}
