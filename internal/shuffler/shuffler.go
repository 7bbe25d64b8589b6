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

// Package shuffler produces 52-card deals. The first 28 cards of a
// deal fill the hidden piles in triangular layout, the last 24 the
// stock.
package shuffler

import (
	"math/rand"

	"github.com/frankkopp/KlondikeGo/internal/card"
)

// CardDeck is a full deal of 52 cards.
type CardDeck [card.NCards]card.Card

// SortedDeck returns the deal with all cards in value order.
func SortedDeck() CardDeck {
	var cards CardDeck
	for i := range cards {
		cards[i] = card.FromValue(uint8(i))
	}
	return cards
}

// DefaultShuffle returns the deterministic deal of the given seed.
// The same seed always produces the same deal.
func DefaultShuffle(seed uint64) CardDeck {
	cards := SortedDeck()
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// ShuffleWithRng returns a deal drawn from the given random source.
func ShuffleWithRng(rng *rand.Rand) CardDeck {
	cards := SortedDeck()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// FromValues builds a deal from explicit card values. It fails when
// the values are not a permutation of all 52 cards.
func FromValues(values []uint8) (CardDeck, bool) {
	var cards CardDeck
	if len(values) != int(card.NCards) {
		return cards, false
	}
	var seen [card.NCards]bool
	for i, v := range values {
		if v >= card.NCards || seen[v] {
			return cards, false
		}
		seen[v] = true
		cards[i] = card.FromValue(v)
	}
	return cards, true
}
