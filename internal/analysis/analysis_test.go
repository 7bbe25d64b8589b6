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

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/engine"
	"github.com/frankkopp/KlondikeGo/internal/partial"
	"github.com/frankkopp/KlondikeGo/internal/shuffler"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

func testEngine(t *testing.T, seed uint64) *engine.SolitaireEngine {
	cards := shuffler.DefaultShuffle(seed)
	s, err := state.NewState(&cards, 3)
	require.NoError(t, err)
	return engine.New(s)
}

func TestStyleCoefficientScalesTotalScore(t *testing.T) {
	e := testEngine(t, 0)

	cfg1 := DefaultHeuristicConfig()
	cfg1.NeutralCoef = 1
	moves1 := RankedMoves(e, Neutral, &cfg1)

	cfg2 := cfg1
	cfg2.NeutralCoef = 2
	moves2 := RankedMoves(e, Neutral, &cfg2)

	require.Equal(t, len(moves1), len(moves2))
	for i := range moves1 {
		assert.Equal(t, moves1[i].Mv, moves2[i].Mv)
		assert.Equal(t, moves1[i].HeuristicScore*2, moves2[i].HeuristicScore)
	}
}

func TestRankedMovesSorted(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		e := testEngine(t, seed)
		cfg := DefaultHeuristicConfig()
		ranked := RankedMoves(e, Aggressive, &cfg)
		for i := 1; i < len(ranked); i++ {
			assert.True(t, ranked[i-1].HeuristicScore >= ranked[i].HeuristicScore)
		}
		// every ranked move is actually legal
		legal := e.ListMovesDom()
		for _, rm := range ranked {
			assert.True(t, legal.Contains(rm.Mv))
		}
	}
}

func TestAnalyzeState(t *testing.T) {
	// seven columns with one unknown hidden card and a visible ace
	// each plus one unknown deck card
	p := &partial.PartialState{DrawStep: 1}
	for i := range p.Columns {
		p.Columns[i].Hidden = []card.Card{partial.Unknown}
		p.Columns[i].Visible = []card.Card{card.New(0, card.Hearts)}
	}
	p.Deck = []card.Card{partial.Unknown}

	info := AnalyzeState(p)
	assert.Equal(t, 8, info.UnknownCards)
	assert.True(t, info.Mobility > 0, "aces are always mobile")
	assert.Equal(t, 51, len(info.RemainingCards))
	assert.Equal(t, 0, info.BlockedColumns)
	assert.Equal(t, 0.0, info.DeadlockRisk)
}

func TestAnalyzeStateBlockedColumn(t *testing.T) {
	// a lone high card which fits nowhere blocks its column
	p := &partial.PartialState{DrawStep: 1}
	p.Columns[0].Hidden = []card.Card{partial.Unknown}
	p.Columns[0].Visible = []card.Card{card.New(9, card.Hearts)}

	info := AnalyzeState(p)
	assert.Equal(t, 1, info.BlockedColumns)
	assert.True(t, info.DeadlockRisk > 0)
}
