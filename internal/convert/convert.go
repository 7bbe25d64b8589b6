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

// Package convert translates abstract solver moves into sequences of
// single-step operations on the reference engine. An abstract move
// names only the card - the converter finds the columns and inserts
// the draw operations a human would have to play.
package convert

import (
	"github.com/frankkopp/KlondikeGo/internal/assert"
	"github.com/frankkopp/KlondikeGo/internal/moves"
	"github.com/frankkopp/KlondikeGo/internal/standard"
)

// ConvertMove appends the standard operations realizing the given
// abstract move on the given game to the sequence. The game itself
// is not modified. Returns standard.ErrInvalidMove when the move can
// not be realized.
func ConvertMove(game *standard.StandardSolitaire, m moves.Move, moveSeq *standard.HistoryVec) error {
	c := m.Card()
	switch m.Type() {
	case moves.DeckPile:
		cnt, found := game.FindDeckCard(c)
		if !found {
			return standard.ErrInvalidMove
		}
		pile, found := game.FindFreePile(c)
		if !found {
			return standard.ErrInvalidMove
		}
		for i := uint8(0); i < cnt; i++ {
			*moveSeq = append(*moveSeq, standard.DrawNext)
		}
		*moveSeq = append(*moveSeq, standard.StandardMove{
			From: standard.Pos{Kind: standard.PosDeck},
			To:   standard.Pos{Kind: standard.PosPile, Idx: pile},
			Card: c,
		})

	case moves.DeckStack:
		if c.Rank() != game.Stack().Get(c.Suit()) {
			return standard.ErrInvalidMove
		}
		cnt, found := game.FindDeckCard(c)
		if !found {
			return standard.ErrInvalidMove
		}
		for i := uint8(0); i < cnt; i++ {
			*moveSeq = append(*moveSeq, standard.DrawNext)
		}
		*moveSeq = append(*moveSeq, standard.StandardMove{
			From: standard.Pos{Kind: standard.PosDeck},
			To:   standard.Pos{Kind: standard.PosStack, Idx: c.Suit()},
			Card: c,
		})

	case moves.StackPile:
		if c.Rank()+1 != game.Stack().Get(c.Suit()) {
			return standard.ErrInvalidMove
		}
		pile, found := game.FindFreePile(c)
		if !found {
			return standard.ErrInvalidMove
		}
		*moveSeq = append(*moveSeq, standard.StandardMove{
			From: standard.Pos{Kind: standard.PosStack, Idx: c.Suit()},
			To:   standard.Pos{Kind: standard.PosPile, Idx: pile},
			Card: c,
		})

	case moves.Reveal:
		pileFrom, found := game.FindTopCard(c)
		if !found {
			return standard.ErrInvalidMove
		}
		pileTo, found := game.FindFreePile(c)
		if !found || pileTo == pileFrom {
			return standard.ErrInvalidMove
		}
		*moveSeq = append(*moveSeq, standard.StandardMove{
			From: standard.Pos{Kind: standard.PosPile, Idx: pileFrom},
			To:   standard.Pos{Kind: standard.PosPile, Idx: pileTo},
			Card: c,
		})

	case moves.PileStack:
		if c.Rank() != game.Stack().Get(c.Suit()) {
			return standard.ErrInvalidMove
		}
		pile, run, found := game.FindCard(c)
		if !found {
			return standard.ErrInvalidMove
		}
		if len(run) > 1 {
			// the card is covered - relocate the covering run first
			moveCard := run[1]
			pileOther, found := game.FindFreePile(moveCard)
			if !found || pileOther == pile {
				return standard.ErrInvalidMove
			}
			*moveSeq = append(*moveSeq, standard.StandardMove{
				From: standard.Pos{Kind: standard.PosPile, Idx: pile},
				To:   standard.Pos{Kind: standard.PosPile, Idx: pileOther},
				Card: moveCard,
			})
		}
		*moveSeq = append(*moveSeq, standard.StandardMove{
			From: standard.Pos{Kind: standard.PosPile, Idx: pile},
			To:   standard.Pos{Kind: standard.PosStack, Idx: c.Suit()},
			Card: c,
		})

	default:
		return standard.ErrInvalidMove
	}
	return nil
}

// ConvertMoves converts a whole abstract history and executes it on
// the given game. On error the game stops right before the failing
// move.
func ConvertMoves(game *standard.StandardSolitaire, history []moves.Move) (standard.HistoryVec, error) {
	moveSeq := standard.HistoryVec{}
	for _, m := range history {
		start := len(moveSeq)
		if err := ConvertMove(game, m, &moveSeq); err != nil {
			return moveSeq, err
		}
		for _, sm := range moveSeq[start:] {
			err := game.DoMove(sm)
			if assert.DEBUG {
				assert.Assert(err == nil, "convert.ConvertMoves: converted move is invalid")
			}
			if err != nil {
				return moveSeq, err
			}
		}
	}
	return moveSeq, nil
}
