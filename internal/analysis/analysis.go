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

// Package analysis provides a small set of expert inspired
// heuristics to rank legal moves and to summarize the prospects of a
// partially known state. The scores steer the advisor only - they
// have no influence on the exact solver.
package analysis

import (
	"sort"

	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/engine"
	"github.com/frankkopp/KlondikeGo/internal/hidden"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/partial"
)

// PlayStyle influences the evaluation of moves.
type PlayStyle uint8

// PlayStyle values
const (
	Conservative PlayStyle = iota
	Neutral
	Aggressive
)

// HeuristicConfig holds the weights of the move evaluation.
type HeuristicConfig struct {
	RevealBonus            int
	EmptyColumnBonus       int
	EarlyFoundationPenalty int
	KeepKingBonus          int
	DeadlockPenalty        int
	LongColumnBonus        int
	ChainBonus             int
	AggressiveCoef         int
	ConservativeCoef       int
	NeutralCoef            int
}

// DefaultHeuristicConfig returns the default weights.
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		RevealBonus:            5,
		EmptyColumnBonus:       2,
		EarlyFoundationPenalty: -3,
		KeepKingBonus:          1,
		DeadlockPenalty:        -10,
		LongColumnBonus:        2,
		ChainBonus:             1,
		AggressiveCoef:         1,
		ConservativeCoef:       1,
		NeutralCoef:            1,
	}
}

// RankedMove is one legal move together with its scores.
type RankedMove struct {
	Mv              moves.Move
	HeuristicScore  int
	SimulationScore int
	WillBlock       bool
}

// StateAnalysis summarizes the prospects of a partially known state.
type StateAnalysis struct {
	UnknownCards   int
	RemainingCards []card.Card
	BlockedColumns int
	Mobility       int
	DeadlockRisk   float64
}

// RankedMoves returns the legal moves of the engine sorted by
// descending heuristic score. The style coefficient scales the total
// score of every move.
func RankedMoves(e *engine.SolitaireEngine, style PlayStyle, cfg *HeuristicConfig) []RankedMove {
	ml := e.ListMovesDom()
	res := make([]RankedMove, 0, ml.Len())
	for _, m := range ml.Data() {
		res = append(res, RankedMove{
			Mv:             m,
			HeuristicScore: evaluateMove(style, e, m, cfg),
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].HeuristicScore > res[j].HeuristicScore
	})
	return res
}

// AnalyzeState summarizes the given partial state.
func AnalyzeState(p *partial.PartialState) StateAnalysis {
	info := StateAnalysis{
		UnknownCards:   p.UnknownCount(),
		RemainingCards: p.RemainingCards(),
	}

	// a column top is mobile when it is foundation ready (only aces
	// are known to be ready without foundation information) or fits
	// onto the top of another column
	empty := 0
	for i := range p.Columns {
		if len(p.Columns[i].Visible) == 0 && len(p.Columns[i].Hidden) == 0 {
			empty++
		}
	}
	for i := range p.Columns {
		if len(p.Columns[i].Visible) == 0 {
			continue
		}
		top := p.Columns[i].Visible[len(p.Columns[i].Visible)-1]
		mobile := false
		if top.Rank() == 0 {
			mobile = true
		}
		if top.IsKing() && empty > 0 && len(p.Columns[i].Hidden) > 0 {
			mobile = true
		}
		for j := range p.Columns {
			if i == j || len(p.Columns[j].Visible) == 0 {
				continue
			}
			other := p.Columns[j].Visible[len(p.Columns[j].Visible)-1]
			if other.GoesBefore(top) {
				mobile = true
			}
		}
		if mobile {
			info.Mobility++
		} else if len(p.Columns[i].Hidden) > 0 {
			info.BlockedColumns++
		}
	}
	info.DeadlockRisk = float64(info.BlockedColumns) / float64(hidden.NPiles)
	return info
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// evaluateMove scores a single move.
func evaluateMove(style PlayStyle, e *engine.SolitaireEngine, m moves.Move, cfg *HeuristicConfig) int {
	score := 0
	c := m.Card()
	switch m.Type() {
	case moves.Reveal:
		score += cfg.RevealBonus
		if e.State().Hidden().Len(e.State().Hidden().Find(c)) == 1 {
			// moving the last card of a pile frees a column
			score += cfg.EmptyColumnBonus
		}
	case moves.PileStack:
		if c.Rank() < 5 {
			score += cfg.EarlyFoundationPenalty
		}
	case moves.DeckPile, moves.StackPile:
		if c.IsKing() && e.State().Hidden().Len(hidden.NPiles-1) == 0 {
			score += cfg.KeepKingBonus
		}
	}

	// style modifier
	switch style {
	case Aggressive:
		score++
	case Conservative:
		score--
	}

	return score * styleCoef(style, cfg)
}

func styleCoef(style PlayStyle, cfg *HeuristicConfig) int {
	switch style {
	case Aggressive:
		return cfg.AggressiveCoef
	case Conservative:
		return cfg.ConservativeCoef
	}
	return cfg.NeutralCoef
}
