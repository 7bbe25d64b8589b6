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

package solver

import (
	"time"

	"github.com/frankkopp/KlondikeGo/internal/moveslice"
)

// SearchResult is the outcome of a solve call.
type SearchResult int8

// SearchResult values
const (
	// Solved - a winning move sequence has been found
	Solved SearchResult = iota
	// Unsolvable - the complete reachable state space holds no win
	Unsolvable
	// Terminated - the solver saw the cancel signal
	Terminated
	// Crashed - the search recursion panicked
	Crashed
)

// String returns a string representation of the search result.
func (r SearchResult) String() string {
	switch r {
	case Solved:
		return "Solved"
	case Unsolvable:
		return "Unsolvable"
	case Terminated:
		return "Terminated"
	case Crashed:
		return "Crashed"
	}
	return "Unknown"
}

// Result holds the outcome of a finished solve together with the
// winning history (when solved) and the search time.
type Result struct {
	SearchResult SearchResult
	History      moveslice.MoveSlice
	SearchTime   time.Duration
}
