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

package hidden

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/KlondikeGo/internal/card"
)

// dealPiles returns the triangular pile cards of a seeded deal.
func dealPiles(seed int64) [NPileCards]card.Card {
	values := rand.New(rand.NewSource(seed)).Perm(int(card.NCards))
	var cards [NPileCards]card.Card
	for i := range cards {
		cards[i] = card.FromValue(uint8(values[i]))
	}
	return cards
}

func TestNewLayout(t *testing.T) {
	cards := dealPiles(1)
	h := New(&cards)
	for pos := uint8(0); pos < NPiles; pos++ {
		assert.Equal(t, pos+1, h.Len(pos))
		start := pos * (pos + 1) / 2
		assert.Equal(t, cards[start:start+pos+1], h.Get(pos))
		for _, c := range h.Get(pos) {
			assert.Equal(t, pos, h.Find(c))
		}
	}
	assert.True(t, h.IsValid())
	assert.False(t, h.AllTurnedUp())
	assert.Equal(t, uint8(21), h.TotalDownCards())
}

func TestPopUnpop(t *testing.T) {
	cards := dealPiles(2)
	h := New(&cards)

	top, ok := h.Peek(3)
	require.True(t, ok)
	assert.Equal(t, cards[3*4/2+3], top)

	encode := h.Encode()
	below, ok := h.Pop(3)
	require.True(t, ok)
	assert.Equal(t, uint8(3), h.Len(3))
	newTop, _ := h.Peek(3)
	assert.Equal(t, below, newTop)

	h.Unpop(3)
	assert.Equal(t, encode, h.Encode())
	restored, _ := h.Peek(3)
	assert.Equal(t, top, restored)
}

func TestEncodeDecode(t *testing.T) {
	cards := dealPiles(3)
	h := New(&cards)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		pos := uint8(rng.Intn(int(NPiles)))
		if h.Len(pos) > 0 && rng.Intn(2) == 0 {
			h.Pop(pos)
		}
		restored := New(&cards)
		restored.Decode(h.Encode())
		for p := uint8(0); p < NPiles; p++ {
			assert.Equal(t, h.Len(p), restored.Len(p))
		}
		assert.Equal(t, h.Encode(), restored.Encode())
	}
}

func TestMasks(t *testing.T) {
	cards := dealPiles(4)
	h := New(&cards)

	firstLayer := uint64(0)
	for pos := uint8(0); pos < NPiles; pos++ {
		firstLayer |= cards[pos*(pos+1)/2].Mask()
	}
	assert.Equal(t, firstLayer, h.FirstLayerMask())

	// mask covers every face-down card, not the tops
	mask := h.Mask()
	for pos := uint8(0); pos < NPiles; pos++ {
		pile := h.Get(pos)
		for _, c := range pile[:len(pile)-1] {
			assert.NotZero(t, mask&c.Mask())
		}
		top := pile[len(pile)-1]
		assert.Zero(t, mask&top.Mask())
	}
}

func TestClearAndShuffle(t *testing.T) {
	cards := dealPiles(5)
	h := New(&cards)
	maskBefore := h.Mask()

	h.Clear()
	assert.True(t, h.IsValid())
	assert.Equal(t, maskBefore, h.Mask())

	// clear orders the face-down cards lexicographically
	last := uint8(0)
	for pos := uint8(0); pos < NPiles; pos++ {
		pile := h.Get(pos)
		for _, c := range pile[:len(pile)-1] {
			assert.True(t, c.MaskIndex() >= last)
			last = c.MaskIndex()
		}
	}

	rng := rand.New(rand.NewSource(5))
	h.Shuffle(rng)
	assert.True(t, h.IsValid())
	assert.Equal(t, maskBefore, h.Mask())
}

func TestNormalize(t *testing.T) {
	// a lone king on pile 0, only low ranks elsewhere
	var cards [NPileCards]card.Card
	cards[0] = card.New(card.KingRank, card.Hearts)
	for i := 1; i < int(NPileCards); i++ {
		cards[i] = card.FromValue(uint8(i - 1))
	}

	h := New(&cards)
	norm := h.Normalize()
	assert.Equal(t, uint8(0), norm[0], "a lone king counts as an empty pile")
	for pos := uint8(1); pos < NPiles; pos++ {
		assert.Equal(t, pos+1, norm[pos])
	}
}
