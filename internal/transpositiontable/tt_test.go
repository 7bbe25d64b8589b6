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

package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/KlondikeGo/internal/state"
)

func TestMixIsInjectiveOnSample(t *testing.T) {
	seen := make(map[uint64]uint64)
	for i := uint64(1); i < 100_000; i++ {
		m := Mix(i)
		prev, ok := seen[m]
		assert.False(t, ok, "collision between %d and %d", prev, i)
		seen[m] = i
	}
}

func TestMixSpreadsLowBits(t *testing.T) {
	// neighbouring encodings must not map to neighbouring keys
	assert.NotEqual(t, Mix(1), Mix(2))
	assert.NotZero(t, (Mix(1)^Mix(2))>>32, "high bits must differ")
}

func TestInsertAndHit(t *testing.T) {
	tt := NewTtTable(1)
	e := state.Encode(0x1234_5678)

	assert.True(t, tt.Insert(e))
	assert.False(t, tt.Insert(e), "second insert must report the state as seen")
	assert.Equal(t, uint64(1), tt.Len())

	// released states stay cached in the bounded table
	tt.Release(e)
	assert.False(t, tt.Insert(e))
}

func TestPathSurvivesEviction(t *testing.T) {
	// zero sized table: only the exact path set decides membership
	tt := NewTtTable(0)
	e := state.Encode(42)

	assert.True(t, tt.Insert(e))
	assert.False(t, tt.Insert(e), "path membership must hold without cache capacity")
	tt.Release(e)
	assert.True(t, tt.Insert(e), "after release the state may be visited again")
}

func TestClear(t *testing.T) {
	tt := NewTtTable(1)
	tt.Insert(state.Encode(1))
	tt.Insert(state.Encode(2))
	tt.Clear()
	assert.Equal(t, uint64(0), tt.Len())
	assert.True(t, tt.Insert(state.Encode(1)))
}

func TestResizeCapsAtMax(t *testing.T) {
	tt := NewTtTable(1)
	tt.Resize(MaxSizeInMB + 1)
	assert.True(t, tt.Len() == 0)
	assert.True(t, tt.Insert(state.Encode(7)))
}

func TestSetTable(t *testing.T) {
	st := NewSetTable()
	e := state.Encode(99)
	assert.True(t, st.Insert(e))
	assert.False(t, st.Insert(e))
	st.Release(e)
	assert.False(t, st.Insert(e), "a set table memoizes released states")
	assert.Equal(t, 1, st.Len())
	st.Clear()
	assert.True(t, st.Insert(e))
}
