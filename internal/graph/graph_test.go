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

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/KlondikeGo/internal/shuffler"
	"github.com/frankkopp/KlondikeGo/internal/state"
	"github.com/frankkopp/KlondikeGo/internal/tracking"
	"github.com/frankkopp/KlondikeGo/internal/traverse"
)

// budgetSignal terminates after a number of checks.
type budgetSignal struct {
	checks int
	budget int
}

func (s *budgetSignal) Terminate() {}
func (s *budgetSignal) IsTerminated() bool {
	s.checks++
	return s.checks > s.budget
}
func (s *budgetSignal) SearchFinish() {}

func TestBuildCollectsEdges(t *testing.T) {
	cards := shuffler.DefaultShuffle(12)
	g, err := state.NewState(&cards, 3)
	require.NoError(t, err)
	before := g.Encode()

	stats := tracking.NewAtomicSearchStats()
	sign := &budgetSignal{budget: 10_000}
	res, edges := BuildWithTracking(g, stats, sign)

	assert.True(t, res == traverse.Halted || res == traverse.Ok)
	assert.True(t, len(edges) > 0)
	assert.Equal(t, before, g.Encode(), "state must be restored after building")
	assert.True(t, stats.TotalVisit() > 0)

	// the first edge starts at the root
	assert.Equal(t, before, edges[0].From)
	// edges are connected: every source except the root appeared as
	// a target before
	seen := map[state.Encode]bool{before: true}
	for _, e := range edges {
		assert.True(t, seen[e.From], "edge source must have been visited")
		seen[e.To] = true
	}
}
