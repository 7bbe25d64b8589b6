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

// Package gametheory selects moves under uncertainty with short
// Monte-Carlo rollouts. Candidate moves come from the heuristic
// ranking; each candidate is evaluated by playing random dominance
// moves on copies of the engine.
package gametheory

import (
	"math/rand"

	"github.com/frankkopp/KlondikeGo/internal/analysis"
	"github.com/frankkopp/KlondikeGo/internal/engine"
)

// winScore is the rollout reward for reaching a win.
const winScore = 10

// BestMoveMCTS picks the most promising move of the engine's state
// by running nPlayouts random rollouts of at most maxDepth moves for
// every ranked candidate. Returns false when no move is available.
func BestMoveMCTS(e *engine.SolitaireEngine, style analysis.PlayStyle, cfg *analysis.HeuristicConfig,
	nPlayouts int, maxDepth int, rng *rand.Rand) (analysis.RankedMove, bool) {

	ranked := analysis.RankedMoves(e, style, cfg)
	if len(ranked) == 0 {
		return analysis.RankedMove{}, false
	}

	best := ranked[0]
	bestScore := -1
	for _, rm := range ranked {
		child := e.Clone()
		if !child.DoMove(rm.Mv) {
			continue
		}
		score := 0
		for p := 0; p < nPlayouts; p++ {
			score += rollout(child, maxDepth, rng)
		}
		rm.SimulationScore = score
		if score > bestScore {
			bestScore = score
			best = rm
		}
	}
	return best, true
}

// rollout plays random dominance moves on a copy of the engine and
// scores reaching a win.
func rollout(e *engine.SolitaireEngine, maxDepth int, rng *rand.Rand) int {
	tmp := e.Clone()
	for depth := 0; depth < maxDepth; depth++ {
		list := tmp.ListMovesDom()
		if list.Len() == 0 {
			return 0
		}
		tmp.DoMove(list.At(rng.Intn(list.Len())))
		if tmp.IsWon() {
			return winScore
		}
	}
	return 0
}
