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

// Package moves contains the move type of the solitaire engine.
// A move is a closed sum of five variants each carrying a single
// card. It is bit encoded into a 16-bit integer so move lists stay
// compact and comparisons are cheap.
package moves

import (
	"errors"
	"strings"

	"github.com/frankkopp/KlondikeGo/internal/card"
)

// Move is a bit encoded solitaire move.
//  Bits 0-7: card value
//  Bits 8-10: move type
type Move uint16

// MoveType is the variant tag of a move. The numerical values are
// used as indices into the per-variant filter bitboards of the pruner.
type MoveType uint8

// MoveType values
const (
	PileStack MoveType = iota // tableau top to foundation
	DeckStack                 // waste to foundation
	StackPile                 // foundation back to tableau
	DeckPile                  // waste to tableau
	Reveal                    // tableau run to another column exposing a hidden card
	NoMoveType
)

// NMoveTypes is the number of real move variants.
const NMoveTypes = 5

// MoveNone is a non move.
const MoveNone Move = Move(uint16(NoMoveType)<<8 | uint16(card.Fake))

var typePrefixes = [NMoveTypes]string{"PS", "DS", "SP", "DP", "R"}

// MakeMove creates a move from a move type and a card.
func MakeMove(t MoveType, c card.Card) Move {
	return Move(uint16(t)<<8 | uint16(c.Value()))
}

// Type returns the variant tag of the move.
func (m Move) Type() MoveType {
	return MoveType(m >> 8)
}

// Card returns the card the move carries.
func (m Move) Card() card.Card {
	return card.FromValue(uint8(m))
}

// String returns a string representation of the move (e.g. "DP 8♠").
func (m Move) String() string {
	if m.Type() >= NoMoveType {
		return "--"
	}
	return typePrefixes[m.Type()] + " " + m.Card().String()
}

// Parse reads a move from a string representation as produced by
// String (e.g. "DS AH", "R 10♠").
func Parse(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return MoveNone, errors.New("invalid move: " + s)
	}
	c, err := card.Parse(fields[1])
	if err != nil {
		return MoveNone, err
	}
	for t, prefix := range typePrefixes {
		if strings.EqualFold(fields[0], prefix) {
			return MakeMove(MoveType(t), c), nil
		}
	}
	return MoveNone, errors.New("unknown move type: " + s)
}

// UndoInfo records what the inverse of a move can not reconstruct
// from the state and the move itself: the deck cursor before a
// DeckPile/DeckStack and whether a PileStack revealed a hidden card.
type UndoInfo struct {
	Offset   uint8
	Revealed bool
}
