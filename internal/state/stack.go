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

package state

import (
	"strings"

	"github.com/frankkopp/KlondikeGo/internal/assert"
	"github.com/frankkopp/KlondikeGo/internal/card"
)

// Stack holds the four foundation piles as counters. The counter of
// a suit is the rank of the next card to drop, so 13 means the pile
// is complete.
type Stack [card.NSuits]uint8

// Get returns the rank of the next card to drop for the given suit.
func (st *Stack) Get(suit uint8) uint8 {
	return st[suit]
}

// Push drops the next card of the given suit.
func (st *Stack) Push(suit uint8) {
	if assert.DEBUG {
		assert.Assert(st[suit] < card.NRanks, "stack.Push: suit %d is complete", suit)
	}
	st[suit]++
}

// Pop takes the top card of the given suit back.
func (st *Stack) Pop(suit uint8) {
	if assert.DEBUG {
		assert.Assert(st[suit] > 0, "stack.Pop: suit %d is empty", suit)
	}
	st[suit]--
}

// IsFull checks if all four foundations are complete.
func (st *Stack) IsFull() bool {
	for _, n := range st {
		if n < card.NRanks {
			return false
		}
	}
	return true
}

// Mask returns the bitboard of the next needed card of every suit.
func (st *Stack) Mask() uint64 {
	mask := uint64(0)
	for suit := uint8(0); suit < card.NSuits; suit++ {
		if st[suit] < card.NRanks {
			mask |= card.New(st[suit], suit).Mask()
		}
	}
	return mask
}

// DominanceMask returns the bitboard of the next needed cards which
// are safe to drop: a card is safe when both opposite color
// foundations are at most one rank behind. Such a card is never
// needed on the tableau again.
func (st *Stack) DominanceMask() uint64 {
	mask := uint64(0)
	for suit := uint8(0); suit < card.NSuits; suit++ {
		rank := st[suit]
		if rank >= card.NRanks {
			continue
		}
		o1 := st[suit^2]
		o2 := st[suit^3]
		opp := o1
		if o2 < o1 {
			opp = o2
		}
		if rank <= opp+1 {
			mask |= card.New(rank, suit).Mask()
		}
	}
	return mask
}

// Encode packs the four counters into 16 bits.
func (st *Stack) Encode() uint16 {
	res := uint16(0)
	for suit := int(card.NSuits) - 1; suit >= 0; suit-- {
		res = res<<4 | uint16(st[suit])
	}
	return res
}

// Decode restores the counters from an encoding.
func (st *Stack) Decode(encode uint16) {
	for suit := uint8(0); suit < card.NSuits; suit++ {
		st[suit] = uint8(encode & 0xF)
		encode >>= 4
	}
}

// String returns a string representation of the foundations.
func (st *Stack) String() string {
	var os strings.Builder
	os.WriteString("Stack: [")
	for suit := uint8(0); suit < card.NSuits; suit++ {
		if suit > 0 {
			os.WriteString(" ")
		}
		if st[suit] == 0 {
			os.WriteString("--")
		} else {
			os.WriteString(card.New(st[suit]-1, suit).String())
		}
	}
	os.WriteString("]")
	return os.String()
}
