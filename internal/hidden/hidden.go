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

// Package hidden implements the seven face-down piles under the
// tableau columns. The piles live in a single flat array in
// triangular layout, pile i occupying indices i*(i+1)/2 onwards.
// Cards never move between piles, only the per-pile counts change,
// which is what makes the compact mixed-radix encoding possible.
// The last counted card of each pile is the face-up one.
package hidden

import (
	"math/rand"

	"github.com/frankkopp/KlondikeGo/internal/assert"
	"github.com/frankkopp/KlondikeGo/internal/card"
)

const (
	// NPiles is the number of tableau piles
	NPiles uint8 = 7

	// NPileCards is the number of cards dealt to the piles
	NPileCards uint8 = NPiles * (NPiles + 1) / 2
)

// Hidden holds the face-down piles of a solitaire game.
// Create with New().
type Hidden struct {
	hiddenPiles    [NPileCards]card.Card
	nHidden        [NPiles]uint8
	pileMap        [card.NCards]uint8
	firstLayerMask uint64
}

// New creates the hidden piles from the 28 dealt cards in triangular
// layout with pile i holding i+1 cards.
func New(hiddenPiles *[NPileCards]card.Card) *Hidden {
	h := &Hidden{
		hiddenPiles: *hiddenPiles,
	}
	for i := uint8(0); i < NPiles; i++ {
		start := i * (i + 1) / 2
		end := (i + 2) * (i + 1) / 2

		pile := hiddenPiles[start:end]
		h.firstLayerMask |= pile[0].Mask()

		for _, c := range pile {
			h.pileMap[c.Value()] = i
		}
		h.nHidden[i] = i + 1
	}
	return h
}

// FromPiles creates hidden piles from explicit per-pile card lists
// plus an optional face-up top card per pile.
func FromPiles(piles *[NPiles][]card.Card, top *[NPiles]card.Card) *Hidden {
	h := &Hidden{}
	for i := range h.hiddenPiles {
		h.hiddenPiles[i] = card.Fake
	}
	for i := uint8(0); i < NPiles; i++ {
		n := uint8(0)
		start := i * (i + 1) / 2
		for _, c := range piles[i] {
			h.hiddenPiles[start+n] = c
			h.pileMap[c.Value()] = i
			n++
		}
		if top[i] != card.Fake {
			h.hiddenPiles[start+n] = top[i]
			h.pileMap[top[i].Value()] = i
			n++
		}
		if assert.DEBUG {
			assert.Assert(n <= i+1, "hidden.FromPiles: pile %d overfull", i)
		}
		if n > 0 {
			h.firstLayerMask |= h.hiddenPiles[start].Mask()
		}
		h.nHidden[i] = n
	}
	return h
}

// ToPiles returns the face-down part of every pile, e.g. everything
// but the face-up top card.
func (h *Hidden) ToPiles() [NPiles][]card.Card {
	var piles [NPiles][]card.Card
	for i := uint8(0); i < NPiles; i++ {
		pile := h.Get(i)
		if len(pile) == 0 {
			continue
		}
		piles[i] = append(piles[i], pile[:len(pile)-1]...)
	}
	return piles
}

// Len returns the number of cards left in the given pile including
// the face-up top.
func (h *Hidden) Len(pos uint8) uint8 {
	return h.nHidden[pos]
}

// Get returns the active slice of the given pile.
func (h *Hidden) Get(pos uint8) []card.Card {
	start := pos * (pos + 1) / 2
	return h.hiddenPiles[start : start+h.nHidden[pos]]
}

// Peek returns the top card of the given pile.
func (h *Hidden) Peek(pos uint8) (card.Card, bool) {
	pile := h.Get(pos)
	if len(pile) == 0 {
		return card.Fake, false
	}
	return pile[len(pile)-1], true
}

// Pop removes the top card of the given pile and returns the card
// below it which is revealed by this.
func (h *Hidden) Pop(pos uint8) (card.Card, bool) {
	if assert.DEBUG {
		assert.Assert(h.nHidden[pos] > 0, "hidden.Pop: pile %d is empty", pos)
	}
	h.nHidden[pos]--
	return h.Peek(pos)
}

// Unpop is the inverse of Pop.
func (h *Hidden) Unpop(pos uint8) {
	if assert.DEBUG {
		assert.Assert(h.nHidden[pos] <= pos, "hidden.Unpop: pile %d is full", pos)
	}
	h.nHidden[pos]++
}

// Find returns the pile the given card was dealt to.
func (h *Hidden) Find(c card.Card) uint8 {
	return h.pileMap[c.Value()]
}

// AllTurnedUp checks if no face-down cards are left.
func (h *Hidden) AllTurnedUp() bool {
	for _, n := range h.nHidden {
		if n > 1 {
			return false
		}
	}
	return true
}

// TotalDownCards returns the number of face-down cards.
func (h *Hidden) TotalDownCards() uint8 {
	total := uint8(0)
	for _, n := range h.nHidden {
		if n > 0 {
			total += n - 1
		}
	}
	return total
}

// Encode packs the seven pile sizes into 16 bits in mixed radix.
func (h *Hidden) Encode() uint16 {
	res := uint16(0)
	for i := int(NPiles) - 1; i >= 0; i-- {
		res = res*(uint16(i)+2) + uint16(h.nHidden[i])
	}
	return res
}

// Decode restores the pile sizes from an encoding.
func (h *Hidden) Decode(hiddenEncode uint16) {
	for i := uint8(0); i < NPiles; i++ {
		nOptions := uint16(i) + 2
		h.nHidden[i] = uint8(hiddenEncode % nOptions)
		hiddenEncode /= nOptions
	}
}

// Mask returns the bitboard of all face-down cards.
func (h *Hidden) Mask() uint64 {
	mask := uint64(0)
	for pos := uint8(0); pos < NPiles; pos++ {
		pile := h.Get(pos)
		if len(pile) == 0 {
			continue
		}
		for _, c := range pile[:len(pile)-1] {
			mask |= c.Mask()
		}
	}
	return mask
}

// FirstLayerMask returns the bitboard of the initially deepest card
// of every pile. The pruner uses it to detect reveals that open the
// last covered slot of a column.
func (h *Hidden) FirstLayerMask() uint64 {
	return h.firstLayerMask
}

// Clear resets all face-down cards into lexicographic order. Used to
// canonicalize states where the face-down contents are unknown.
func (h *Hidden) Clear() {
	hiddenCards := h.Mask()
	for pos := uint8(0); pos < NPiles; pos++ {
		pile := h.Get(pos)
		if len(pile) == 0 {
			continue
		}
		for i := range pile[:len(pile)-1] {
			if assert.DEBUG {
				assert.Assert(hiddenCards != 0, "hidden.Clear: ran out of cards")
			}
			pile[i] = card.FromMask(hiddenCards)
			hiddenCards &= hiddenCards - 1
		}
	}
	if assert.DEBUG {
		assert.Assert(hiddenCards == 0, "hidden.Clear: cards left over")
	}
	h.updateMap()
}

// Shuffle redistributes the face-down cards randomly. Used for
// randomized completions of partial information states.
func (h *Hidden) Shuffle(rng *rand.Rand) {
	all := make([]card.Card, 0, NPileCards)
	for pos := uint8(0); pos < NPiles; pos++ {
		pile := h.Get(pos)
		if len(pile) == 0 {
			continue
		}
		all = append(all, pile[:len(pile)-1]...)
	}
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	start := 0
	for pos := uint8(0); pos < NPiles; pos++ {
		pile := h.Get(pos)
		if len(pile) == 0 {
			continue
		}
		down := pile[:len(pile)-1]
		copy(down, all[start:start+len(down)])
		start += len(down)
	}
	h.updateMap()
}

// IsValid checks the pile map against the pile contents.
func (h *Hidden) IsValid() bool {
	for pos := uint8(0); pos < NPiles; pos++ {
		for _, c := range h.Get(pos) {
			if h.pileMap[c.Value()] != pos {
				return false
			}
		}
	}
	return true
}

// Normalize returns the pile sizes with single-card piles reduced to
// zero when the remaining card is a king. A lone king never needs to
// move so such piles behave like empty columns.
func (h *Hidden) Normalize() [NPiles]uint8 {
	var res [NPiles]uint8
	for pos := uint8(0); pos < NPiles; pos++ {
		n := h.nHidden[pos]
		switch {
		case n >= 2:
			res[pos] = n
		case n == 1:
			if h.Get(pos)[0].Rank() < card.KingRank {
				res[pos] = 1
			}
		}
	}
	return res
}

func (h *Hidden) updateMap() {
	for pos := uint8(0); pos < NPiles; pos++ {
		for _, c := range h.Get(pos) {
			h.pileMap[c.Value()] = pos
		}
	}
}
