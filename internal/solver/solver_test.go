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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/convert"
	"github.com/frankkopp/KlondikeGo/internal/shuffler"
	"github.com/frankkopp/KlondikeGo/internal/standard"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

// orderedWinDeal builds a deal which is winnable by construction:
// every pile holds a descending run of the global card order with
// the smallest card on top and the stock holds the high ranks in
// order. Popping the piles and the stock in value order wins.
func orderedWinDeal() shuffler.CardDeck {
	var cards shuffler.CardDeck
	for pile := 0; pile < 7; pile++ {
		start := pile * (pile + 1) / 2
		end := (pile + 2) * (pile + 1) / 2
		for i := start; i < end; i++ {
			cards[i] = card.FromValue(uint8(end - 1 - (i - start)))
		}
	}
	for i := 28; i < int(card.NCards); i++ {
		cards[i] = card.FromValue(uint8(i))
	}
	return cards
}

func TestSolveOrderedDeal(t *testing.T) {
	cards := orderedWinDeal()
	g, err := state.NewState(&cards, 1)
	require.NoError(t, err)
	before := g.Encode()

	s := NewSolver()
	result := s.Solve(g)

	require.Equal(t, Solved, result.SearchResult)
	assert.True(t, result.History.Len() > 0)
	assert.Equal(t, before, g.Encode(), "state must be restored after solving")

	// the history must replay to a win on the abstract engine
	replay, err := state.NewState(&cards, 1)
	require.NoError(t, err)
	for _, m := range result.History.Data() {
		replay.DoMove(m)
	}
	assert.True(t, replay.IsWin())

	// and on the reference engine
	ref := standard.NewStandardSolitaire(&cards, 1)
	_, err = convert.ConvertMoves(ref, result.History.Data())
	require.NoError(t, err)
	assert.True(t, ref.IsWin())
}

func TestSolveIsDeterministic(t *testing.T) {
	cards := shuffler.DefaultShuffle(12)
	for run := 0; run < 2; run++ {
		g, err := state.NewState(&cards, 3)
		require.NoError(t, err)
		first := NewSolver().Solve(g)
		second := NewSolver().Solve(g)
		assert.Equal(t, first.SearchResult, second.SearchResult)
		assert.Equal(t, first.History, second.History)
	}
}

func TestTerminatedSolve(t *testing.T) {
	cards := shuffler.DefaultShuffle(12)
	g, err := state.NewState(&cards, 3)
	require.NoError(t, err)
	before := g.Encode()

	s := NewSolver()
	s.Signal().Terminate()
	result := s.Solve(g)

	assert.Equal(t, Terminated, result.SearchResult)
	assert.Equal(t, 0, result.History.Len())
	assert.Equal(t, before, g.Encode(), "state must be restored on termination")
}

func TestStartAndStopSolve(t *testing.T) {
	cards := shuffler.DefaultShuffle(17)
	g, err := state.NewState(&cards, 3)
	require.NoError(t, err)

	s := NewSolver()
	s.StartSolve(*g)
	assert.True(t, s.IsSolving() || s.LastResult() != nil)

	// let it run a moment then stop
	time.Sleep(10 * time.Millisecond)
	s.StopSolve()
	assert.False(t, s.IsSolving())

	result := s.LastResult()
	require.NotNil(t, result)
	assert.True(t, result.SearchResult == Solved ||
		result.SearchResult == Unsolvable ||
		result.SearchResult == Terminated)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Solved", Solved.String())
	assert.Equal(t, "Unsolvable", Unsolvable.String())
	assert.Equal(t, "Terminated", Terminated.String())
	assert.Equal(t, "Crashed", Crashed.String())
}
