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

package state_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/hidden"
	"github.com/frankkopp/KlondikeGo/internal/movegen"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/moveslice"
	"github.com/frankkopp/KlondikeGo/internal/shuffler"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

func deal(t *testing.T, seed uint64, drawStep uint8) *state.State {
	cards := shuffler.DefaultShuffle(seed)
	s, err := state.NewState(&cards, drawStep)
	require.NoError(t, err)
	return s
}

func TestNewStateValidation(t *testing.T) {
	cards := shuffler.DefaultShuffle(0)

	_, err := state.NewState(&cards, 0)
	assert.Equal(t, state.ErrInvalidConstruction, err)
	_, err = state.NewState(&cards, 25)
	assert.Equal(t, state.ErrInvalidConstruction, err)

	cards[0] = cards[1] // not a permutation anymore
	_, err = state.NewState(&cards, 3)
	assert.Equal(t, state.ErrInvalidConstruction, err)
}

func TestInitialMasks(t *testing.T) {
	cards := shuffler.DefaultShuffle(12)
	s, err := state.NewState(&cards, 3)
	require.NoError(t, err)

	// the top of every pile is face up
	visible := uint64(0)
	for pos := uint8(0); pos < hidden.NPiles; pos++ {
		top, ok := s.Hidden().Peek(pos)
		require.True(t, ok)
		visible |= top.Mask()
	}
	assert.Equal(t, visible, s.VisibleMask())
	assert.Equal(t, 7, bits.OnesCount64(s.VisibleMask()))
	assert.Zero(t, s.TopMask()&^s.VisibleMask())
	assert.Zero(t, s.NumEmptyColumns())
	assert.False(t, s.IsWin())
}

// playout applies random legal moves and calls check before each.
func playout(t *testing.T, seed uint64, drawStep uint8, steps int,
	check func(s *state.State, ml *moveslice.MoveSlice)) {

	s := deal(t, seed, drawStep)
	mg := movegen.New()
	rng := rand.New(rand.NewSource(int64(seed)))
	ml := moveslice.New(moveslice.MaxMoves)

	for i := 0; i < steps; i++ {
		mg.GenerateMoves(s, false, &ml)
		if ml.Len() == 0 || s.IsWin() {
			return
		}
		check(s, &ml)
		s.DoMove(ml.At(rng.Intn(ml.Len())))
	}
}

func TestDoUndoRoundtrip(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		for _, drawStep := range []uint8{1, 3} {
			playout(t, seed, drawStep, 100, func(s *state.State, ml *moveslice.MoveSlice) {
				before := s.Encode()
				ref := s.Clone()
				for _, m := range ml.Data() {
					undo := s.DoMove(m)
					s.UndoMove(m, undo)
					require.Equal(t, before, s.Encode(), "undo of %s must restore the encoding", m.String())
					require.True(t, s.EquivalentTo(ref), "undo of %s must restore the state", m.String())
				}
			})
		}
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		for _, drawStep := range []uint8{1, 3} {
			cards := shuffler.DefaultShuffle(seed)
			playout(t, seed, drawStep, 100, func(s *state.State, ml *moveslice.MoveSlice) {
				fresh, err := state.NewState(&cards, drawStep)
				require.NoError(t, err)
				fresh.Decode(s.Encode())
				require.True(t, fresh.EquivalentTo(s), "decoded state must be equivalent")
				require.Equal(t, s.Encode(), fresh.Encode())
			})
		}
	}
}

func TestRevMoveRestoresState(t *testing.T) {
	mg := movegen.New()
	childMoves := moveslice.New(moveslice.MaxMoves)
	for seed := uint64(0); seed < 5; seed++ {
		playout(t, seed, 3, 60, func(s *state.State, ml *moveslice.MoveSlice) {
			before := s.Encode()
			for _, m := range ml.Data() {
				rev := s.RevMove(m)
				if rev == moves.MoveNone {
					continue
				}
				undo := s.DoMove(m)
				mg.GenerateMoves(s, false, &childMoves)
				require.True(t, childMoves.Contains(rev),
					"reverse %s of %s must be legal", rev.String(), m.String())
				undoRev := s.DoMove(rev)
				require.Equal(t, before, s.Encode(),
					"%s followed by %s must restore the state", m.String(), rev.String())
				s.UndoMove(rev, undoRev)
				s.UndoMove(m, undo)
				require.Equal(t, before, s.Encode())
			}
		})
	}
}

func TestVisiblePilesConsistent(t *testing.T) {
	for seed := uint64(0); seed < 5; seed++ {
		playout(t, seed, 3, 80, func(s *state.State, _ *moveslice.MoveSlice) {
			piles := s.VisiblePiles()
			covered := uint64(0)
			for i := range piles {
				for j, c := range piles[i] {
					assert.Zero(t, covered&c.Mask(), "cards may only appear once")
					covered |= c.Mask()
					if j > 0 {
						assert.True(t, piles[i][j-1].GoesBefore(c),
							"runs must stack in alternating colors")
					}
				}
			}
			assert.Equal(t, s.VisibleMask(), covered)
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := deal(t, 3, 3)
	clone := s.Clone()
	require.True(t, s.EquivalentTo(clone))

	mg := movegen.New()
	ml := moveslice.New(moveslice.MaxMoves)
	mg.GenerateMoves(clone, false, &ml)
	require.True(t, ml.Len() > 0)
	clone.DoMove(ml.At(0))

	assert.False(t, s.EquivalentTo(clone))
	assert.NotEqual(t, s.Encode(), clone.Encode())
}

func TestWinState(t *testing.T) {
	s := deal(t, 0, 1)
	for suit := uint8(0); suit < card.NSuits; suit++ {
		for rank := uint8(0); rank < card.NRanks; rank++ {
			s.Stack().Push(suit)
		}
	}
	assert.True(t, s.IsWin())
}
