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

// Package partial supports states with hidden information: face-down
// cards and undealt stock cards may be unknown. Unknown slots are
// filled from the remaining cards - uniformly or weighted by
// per-column probability estimates - to obtain complete games the
// engine can solve or roll out.
package partial

import (
	"math/rand"

	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/deck"
	"github.com/frankkopp/KlondikeGo/internal/hidden"
	"github.com/frankkopp/KlondikeGo/internal/standard"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// Unknown marks a card slot whose card is not known.
const Unknown = card.Fake

// PartialColumn is one tableau column with partially known cards.
type PartialColumn struct {
	// Hidden cards from bottom to top, Unknown for unknown slots.
	Hidden []card.Card
	// Visible cards from bottom to top.
	Visible []card.Card
}

// HiddenLen returns the number of unknown cards of the column.
func (c *PartialColumn) HiddenLen() int {
	n := 0
	for _, h := range c.Hidden {
		if h == Unknown {
			n++
		}
	}
	return n
}

// PartialState is a solitaire state with partially known cards.
type PartialState struct {
	Columns  [hidden.NPiles]PartialColumn
	Deck     []card.Card // Unknown for unknown slots
	DrawStep uint8
}

// FromStandard creates a fully known partial state from a reference
// game.
func FromStandard(g *standard.StandardSolitaire) *PartialState {
	p := &PartialState{DrawStep: g.Deck().DrawStep()}
	for i := uint8(0); i < hidden.NPiles; i++ {
		p.Columns[i].Hidden = append(p.Columns[i].Hidden, (*g.HiddenPiles())[i]...)
		p.Columns[i].Visible = append(p.Columns[i].Visible, (*g.Piles())[i]...)
	}
	g.Deck().IterAll(func(_ uint8, c card.Card, _ deck.Drawable) {
		p.Deck = append(p.Deck, c)
	})
	return p
}

// FromBlind creates a partial state from a compact state where all
// face-down cards and the never seen stock cards stay unknown.
func FromBlind(s *state.State) *PartialState {
	p := &PartialState{DrawStep: s.Deck().DrawStep()}
	hiddenParts := s.Hidden().ToPiles()
	visible := s.VisiblePiles()
	for i := uint8(0); i < hidden.NPiles; i++ {
		for range hiddenParts[i] {
			p.Columns[i].Hidden = append(p.Columns[i].Hidden, Unknown)
		}
		p.Columns[i].Visible = append(p.Columns[i].Visible, visible[i]...)
	}
	s.Deck().IterAll(func(_ uint8, c card.Card, drawable deck.Drawable) {
		if drawable == deck.DrawableNone {
			p.Deck = append(p.Deck, Unknown)
		} else {
			p.Deck = append(p.Deck, c)
		}
	})
	return p
}

// UnknownCount returns the number of unknown card slots.
func (p *PartialState) UnknownCount() int {
	n := 0
	for i := range p.Columns {
		n += p.Columns[i].HiddenLen()
	}
	for _, c := range p.Deck {
		if c == Unknown {
			n++
		}
	}
	return n
}

// RemainingCards returns the cards not placed anywhere in the
// partial state, ordered by their bitboard index.
func (p *PartialState) RemainingCards() []card.Card {
	used := p.usedMask()
	remaining := make([]card.Card, 0, card.NCards)
	for idx := uint8(0); idx < card.NCards; idx++ {
		if used&(uint64(1)<<idx) == 0 {
			remaining = append(remaining, card.FromMaskIndex(idx))
		}
	}
	return remaining
}

// FillUnknownsRandomly fills every unknown slot with a uniformly
// drawn remaining card and returns the resulting complete game.
func (p *PartialState) FillUnknownsRandomly(rng *rand.Rand) *standard.StandardSolitaire {
	remaining := p.RemainingCards()
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	next := 0
	take := func() card.Card {
		c := remaining[next]
		next++
		return c
	}
	return p.assemble(func(uint8) card.Card { return take() }, func() card.Card { return take() })
}

// FillUnknownsWeighted fills the unknown column slots using the given
// per-column card probabilities. Slots of columns with all-zero
// weights and unknown deck slots are filled uniformly.
func (p *PartialState) FillUnknownsWeighted(probs [][]CardProb, rng *rand.Rand) *standard.StandardSolitaire {
	remaining := p.RemainingCards()

	pick := func(idx int) card.Card {
		c := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		return c
	}

	columnFill := func(colIdx uint8) card.Card {
		var weights []float64
		sum := 0.0
		if int(colIdx) < len(probs) {
			weights = make([]float64, len(remaining))
			for i, c := range remaining {
				for _, cp := range probs[colIdx] {
					if cp.Card == c {
						weights[i] = cp.Prob
						break
					}
				}
				sum += weights[i]
			}
		}
		if sum == 0 {
			return pick(rng.Intn(len(remaining)))
		}
		r := rng.Float64() * sum
		choose := 0
		for i, w := range weights {
			if r <= w {
				choose = i
				break
			}
			r -= w
		}
		return pick(choose)
	}
	deckFill := func() card.Card {
		return pick(rng.Intn(len(remaining)))
	}
	return p.assemble(columnFill, deckFill)
}

// CardProb is a probability estimate for one card.
type CardProb struct {
	Card card.Card
	Prob float64
}

// ColumnProbabilities computes simplistic probability estimates for
// every hidden column: the chance mass of a column is proportional
// to its unknown slots and spread uniformly over the remaining cards.
func (p *PartialState) ColumnProbabilities() [][]CardProb {
	remaining := p.RemainingCards()
	totalUnknown := p.UnknownCount()
	nRemaining := float64(len(remaining))

	res := make([][]CardProb, 0, hidden.NPiles)
	for i := range p.Columns {
		nUnknown := p.Columns[i].HiddenLen()
		prob := 0.0
		if totalUnknown > 0 {
			prob = float64(nUnknown) / float64(totalUnknown)
		}
		col := make([]CardProb, 0, len(remaining))
		for _, c := range remaining {
			col = append(col, CardProb{Card: c, Prob: prob / nRemaining})
		}
		res = append(res, col)
	}
	return res
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// usedMask returns the bitboard of all known cards.
func (p *PartialState) usedMask() uint64 {
	used := uint64(0)
	for i := range p.Columns {
		for _, c := range p.Columns[i].Visible {
			used |= c.Mask()
		}
		for _, c := range p.Columns[i].Hidden {
			if c != Unknown {
				used |= c.Mask()
			}
		}
	}
	for _, c := range p.Deck {
		if c != Unknown {
			used |= c.Mask()
		}
	}
	return used
}

// assemble concatenates the filled columns and deck into a deal and
// builds the complete game from it. The deal keeps the usual layout:
// the first 28 cards form the triangular piles, the rest the stock.
func (p *PartialState) assemble(columnFill func(colIdx uint8) card.Card, deckFill func() card.Card) *standard.StandardSolitaire {
	cards := make([]card.Card, 0, card.NCards)
	for i := range p.Columns {
		for _, h := range p.Columns[i].Hidden {
			if h == Unknown {
				cards = append(cards, columnFill(uint8(i)))
			} else {
				cards = append(cards, h)
			}
		}
		cards = append(cards, p.Columns[i].Visible...)
	}
	for _, c := range p.Deck {
		if c == Unknown {
			cards = append(cards, deckFill())
		} else {
			cards = append(cards, c)
		}
	}
	for len(cards) < int(card.NCards) {
		cards = append(cards, deckFill())
	}

	var deal [card.NCards]card.Card
	copy(deal[:], cards[:card.NCards])
	return standard.NewStandardSolitaire(&deal, p.DrawStep)
}
