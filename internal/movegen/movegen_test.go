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

package movegen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/KlondikeGo/internal/convert"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/shuffler"
	"github.com/frankkopp/KlondikeGo/internal/standard"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

func deal(t *testing.T, seed uint64, drawStep uint8) *state.State {
	cards := shuffler.DefaultShuffle(seed)
	s, err := state.NewState(&cards, drawStep)
	require.NoError(t, err)
	return s
}

// playout runs random moves calling check on every state.
func playout(t *testing.T, seed uint64, drawStep uint8, steps int,
	check func(s *state.State, full, dom *moveslice.MoveSlice)) {

	s := deal(t, seed, drawStep)
	mg := New()
	rng := rand.New(rand.NewSource(int64(seed)))
	full := moveslice.New(moveslice.MaxMoves)
	dom := moveslice.New(moveslice.MaxMoves)

	for i := 0; i < steps; i++ {
		mg.GenerateMoves(s, false, &full)
		mg.GenerateMoves(s, true, &dom)
		if full.Len() == 0 || s.IsWin() {
			return
		}
		check(s, &full, &dom)
		s.DoMove(full.At(rng.Intn(full.Len())))
	}
}

func TestMoveRankRules(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		playout(t, seed, 3, 80, func(s *state.State, full, _ *moveslice.MoveSlice) {
			for _, m := range full.Data() {
				c := m.Card()
				switch m.Type() {
				case moves.PileStack:
					assert.Equal(t, s.Stack().Get(c.Suit()), c.Rank())
					assert.NotZero(t, s.VisibleMask()&c.Mask())
				case moves.DeckStack:
					assert.Equal(t, s.Stack().Get(c.Suit()), c.Rank())
					_, inDeck := s.Deck().FindCard(c)
					assert.True(t, inDeck)
				case moves.StackPile:
					assert.Equal(t, s.Stack().Get(c.Suit()), c.Rank()+1)
				case moves.DeckPile:
					_, inDeck := s.Deck().FindCard(c)
					assert.True(t, inDeck)
				case moves.Reveal:
					assert.NotZero(t, s.TopMask()&c.Mask())
				}
			}
		})
	}
}

// Every abstract move must be realizable as standard operations on
// the column accurate engine - this ties the bitboard legality rules
// to the physical game.
func TestMovesRealizableOnReferenceEngine(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		playout(t, seed, 3, 60, func(s *state.State, full, _ *moveslice.MoveSlice) {
			for _, m := range full.Data() {
				game := standard.FromState(s)
				seq := standard.HistoryVec{}
				err := convert.ConvertMove(game, m, &seq)
				require.NoError(t, err, "move %s must convert", m.String())
				require.NoError(t, game.DoMoves(seq), "converted %s must replay", m.String())
			}
		})
	}
}

func TestDominanceIsSubset(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		playout(t, seed, 3, 80, func(s *state.State, full, dom *moveslice.MoveSlice) {
			for _, m := range dom.Data() {
				assert.True(t, full.Contains(m),
					"dominance move %s must be in the full list", m.String())
			}
		})
	}
}

func TestDominanceForcesSafeFoundationMoves(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		playout(t, seed, 1, 80, func(s *state.State, full, dom *moveslice.MoveSlice) {
			safe := s.VisibleMask() & s.Stack().Mask() & s.Stack().DominanceMask()
			hasSafePileStack := false
			for _, m := range full.Data() {
				if m.Type() == moves.PileStack && m.Card().Mask()&safe != 0 {
					hasSafePileStack = true
				}
			}
			if hasSafePileStack {
				for _, m := range dom.Data() {
					assert.Equal(t, moves.PileStack, m.Type())
					assert.NotZero(t, m.Card().Mask()&safe)
				}
			}
		})
	}
}

func TestDoUndoForAllGeneratedMoves(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		playout(t, seed, 3, 60, func(s *state.State, full, _ *moveslice.MoveSlice) {
			before := s.Encode()
			for _, m := range full.Data() {
				undo := s.DoMove(m)
				assert.NotEqual(t, before, s.Encode(), "move %s must change the state", m.String())
				s.UndoMove(m, undo)
				require.Equal(t, before, s.Encode())
			}
		})
	}
}
