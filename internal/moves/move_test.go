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

package moves

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/KlondikeGo/internal/card"
)

func TestMakeMove(t *testing.T) {
	for mt := PileStack; mt < NoMoveType; mt++ {
		for v := uint8(0); v < card.NCards; v++ {
			c := card.FromValue(v)
			m := MakeMove(mt, c)
			assert.Equal(t, mt, m.Type())
			assert.Equal(t, c, m.Card())
			assert.NotEqual(t, MoveNone, m)
		}
	}
}

func TestMoveString(t *testing.T) {
	m := MakeMove(DeckPile, card.New(7, card.Spades))
	assert.Equal(t, "DP 8♠", m.String())
	assert.Equal(t, "--", MoveNone.String())
}

func TestParse(t *testing.T) {
	for mt := PileStack; mt < NoMoveType; mt++ {
		for v := uint8(0); v < card.NCards; v++ {
			m := MakeMove(mt, card.FromValue(v))
			parsed, err := Parse(m.String())
			assert.NoError(t, err)
			assert.Equal(t, m, parsed)
		}
	}
	_, err := Parse("XX A♥")
	assert.Error(t, err)
	_, err = Parse("DP")
	assert.Error(t, err)
}
