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

// Package card contains the 6-bit card value type and its
// corresponding functionality needed for the solitaire engine.
// Suits are ordered so that bit 1 of the suit encodes the color.
// Each card also owns a bit on a 64-bit bitboard. The bitboard
// layout is chosen so that the two cards a card may be placed
// on (one rank up, opposite color) are reachable with a plain
// shift by four - all bit tricks of the move generator and the
// pruner depend on this exact layout.
package card

import (
	"errors"
	"math/bits"
	"strings"

	"github.com/frankkopp/KlondikeGo/internal/assert"
)

// Card represents exactly one card as rank*4+suit.
type Card uint8

const (
	// NSuits is the number of suits in a deck
	NSuits uint8 = 4

	// NRanks is the number of ranks in a suit
	NRanks uint8 = 13

	// NCards is the number of cards in a deck
	NCards uint8 = NSuits * NRanks

	// KingRank is the rank of a king
	KingRank uint8 = NRanks - 1

	// Fake is the sentinel card with rank 13. It accepts kings in
	// GoesBefore and therefore models an empty tableau column.
	Fake Card = Card(NRanks * NSuits)
)

// Suits of a card. Hearts and diamonds are red (bit 1 clear),
// clubs and spades are black (bit 1 set).
const (
	Hearts uint8 = iota
	Diamonds
	Clubs
	Spades
)

const (
	// AltMask has every other bit of the bitboard set.
	AltMask uint64 = 0x5555_5555_5555_5555

	// KingMask has the bits of all four kings set.
	KingMask uint64 = 0xF << 48
)

var suitSymbols = [NSuits]string{"♥", "♦", "♣", "♠"}
var suitLetters = [NSuits]string{"H", "D", "C", "S"}
var rankNumbers = [NRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// New creates a card from rank and suit.
func New(rank uint8, suit uint8) Card {
	if assert.DEBUG {
		assert.Assert(rank <= NRanks && suit < NSuits, "card.New: invalid rank %d or suit %d", rank, suit)
	}
	return Card(rank*NSuits + suit)
}

// FromValue creates a card from its integer value.
func FromValue(value uint8) Card {
	return Card(value)
}

// Value returns the integer value of the card.
func (c Card) Value() uint8 {
	return uint8(c)
}

// Rank returns the rank of the card (0=Ace .. 12=King).
func (c Card) Rank() uint8 {
	return uint8(c) / NSuits
}

// Suit returns the suit of the card.
func (c Card) Suit() uint8 {
	return uint8(c) % NSuits
}

// IsRed checks if the card is a hearts or diamonds card.
func (c Card) IsRed() bool {
	return c.Suit()&2 == 0
}

// IsKing checks if the card has the highest rank.
func (c Card) IsKing() bool {
	return c.Rank() == KingRank
}

// SwapSuit returns the card of the same color and rank
// but of the other suit.
func (c Card) SwapSuit() Card {
	return c ^ 1
}

// SwapColor returns the card of the same rank and suit type
// but of the other color.
func (c Card) SwapColor() Card {
	return c ^ 2
}

// ReduceRank returns the card one rank below keeping the suit.
// An ace stays an ace.
func (c Card) ReduceRank() Card {
	if uint8(c) < NSuits {
		return Card(0)
	}
	return c - Card(NSuits)
}

// GoesBefore checks if the other card may be placed on this card in a
// tableau column. This means this card is one rank above the other and
// of the opposite color. The Fake card (rank 13) accepts kings which
// covers the king-to-empty-column case.
func (c Card) GoesBefore(other Card) bool {
	return c.Rank() == other.Rank()+1 &&
		((c.Suit()^other.Suit())&2 == 2 || c.Rank() == NRanks)
}

// MaskIndex returns the position of the card's bit on the bitboard.
func (c Card) MaskIndex() uint8 {
	v := uint8(c)
	return v ^ ((v >> 1) & 2)
}

// Mask returns the bitboard bit of the card.
func (c Card) Mask() uint64 {
	return uint64(1) << c.MaskIndex()
}

// FromMaskIndex recovers the card from a bitboard bit position.
func FromMaskIndex(idx uint8) Card {
	v := idx ^ ((idx >> 1) & 2)
	return New(v/NSuits, v%NSuits)
}

// FromMask recovers the card owning the least significant set bit
// of the given bitboard.
func FromMask(mask uint64) Card {
	return FromMaskIndex(uint8(bits.TrailingZeros64(mask)))
}

// PairMask spreads every set bit of the given bitboard to its 2-bit
// lane. The resulting mask covers both suits of the same rank and
// color for every card in the input.
func PairMask(mask uint64) uint64 {
	return ((mask | mask>>1) & AltMask) * 0b11
}

// String returns a string representation of the card (e.g. A♥).
func (c Card) String() string {
	if c >= Fake {
		return "--"
	}
	return rankNumbers[c.Rank()] + suitSymbols[c.Suit()]
}

// StringLetter returns an ascii representation of the card (e.g. AH).
func (c Card) StringLetter() string {
	if c >= Fake {
		return "--"
	}
	return rankNumbers[c.Rank()] + suitLetters[c.Suit()]
}

// Parse reads a card from a string representation as produced by
// String or StringLetter (e.g. "10H", "As", "Q♠").
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	var suit uint8
	switch {
	case strings.HasSuffix(s, "H"), strings.HasSuffix(s, "h"), strings.HasSuffix(s, "♥"):
		suit = Hearts
	case strings.HasSuffix(s, "D"), strings.HasSuffix(s, "d"), strings.HasSuffix(s, "♦"):
		suit = Diamonds
	case strings.HasSuffix(s, "C"), strings.HasSuffix(s, "c"), strings.HasSuffix(s, "♣"):
		suit = Clubs
	case strings.HasSuffix(s, "S"), strings.HasSuffix(s, "s"), strings.HasSuffix(s, "♠"):
		suit = Spades
	default:
		return Fake, errors.New("invalid card suit: " + s)
	}
	rankStr := strings.ToUpper(strings.TrimRight(s, "HhDdCcSs♥♦♣♠"))
	for rank, n := range rankNumbers {
		if n == rankStr {
			return New(uint8(rank), suit), nil
		}
	}
	return Fake, errors.New("invalid card rank: " + s)
}
