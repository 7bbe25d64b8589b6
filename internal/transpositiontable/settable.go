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
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// SetTable is an unbounded visited-state set. Unlike the bounded
// TtTable it memoizes every state which is what consumers walking
// the complete state space want (e.g. the graph builder).
// Create with NewSetTable().
type SetTable struct {
	set map[state.Encode]struct{}
}

// NewSetTable creates a new set table.
func NewSetTable() *SetTable {
	return &SetTable{
		set: make(map[state.Encode]struct{}),
	}
}

// Insert reports a state as visited and returns true when it was new.
func (st *SetTable) Insert(encode state.Encode) bool {
	if _, ok := st.set[encode]; ok {
		return false
	}
	st.set[encode] = struct{}{}
	return true
}

// Release does nothing - the set memoizes every state.
func (st *SetTable) Release(encode state.Encode) {}

// Clear removes all entries.
func (st *SetTable) Clear() {
	st.set = make(map[state.Encode]struct{})
}

// Len returns the number of entries.
func (st *SetTable) Len() int {
	return len(st.set)
}
