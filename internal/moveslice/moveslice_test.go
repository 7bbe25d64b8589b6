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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/KlondikeGo/internal/card"
	. "github.com/frankkopp/KlondikeGo/internal/moves"
)

func TestPushPop(t *testing.T) {
	ms := New(MaxMoves)
	m1 := MakeMove(PileStack, card.New(0, card.Hearts))
	m2 := MakeMove(Reveal, card.New(7, card.Spades))
	ms.PushBack(m1)
	ms.PushBack(m2)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, m1, ms.Front())
	assert.Equal(t, m2, ms.Back())
	assert.Equal(t, m2, ms.PopBack())
	assert.Equal(t, 1, ms.Len())
}

func TestFilter(t *testing.T) {
	ms := New(MaxMoves)
	for v := uint8(0); v < 8; v++ {
		ms.PushBack(MakeMove(DeckPile, card.FromValue(v)))
	}
	ms.Filter(func(i int) bool {
		return ms.At(i).Card().Suit() == card.Hearts
	})
	assert.Equal(t, 2, ms.Len())
	for _, m := range ms.Data() {
		assert.Equal(t, card.Hearts, m.Card().Suit())
	}
}

func TestContainsAndClone(t *testing.T) {
	ms := New(MaxMoves)
	m := MakeMove(DeckStack, card.New(3, card.Clubs))
	ms.PushBack(m)
	assert.True(t, ms.Contains(m))
	assert.False(t, ms.Contains(MakeMove(DeckStack, card.New(4, card.Clubs))))

	clone := ms.Clone()
	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, 1, clone.Len())
	assert.Equal(t, m, clone.Front())
}

func TestString(t *testing.T) {
	ms := New(MaxMoves)
	ms.PushBack(MakeMove(PileStack, card.New(0, card.Hearts)))
	ms.PushBack(MakeMove(Reveal, card.New(12, card.Spades)))
	assert.Equal(t, "MoveList: [2] { PS A♥, R K♠ }", ms.String())
}
