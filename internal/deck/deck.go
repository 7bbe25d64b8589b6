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

// Package deck implements the stock and waste piles of a solitaire
// game with a draw-k cursor. The logical list of cards is kept in a
// fixed array with a movable gap: the waste is the prefix before the
// gap, the stock the suffix after it. Sliding the gap costs O(distance)
// which keeps draws and undos cheap during search.
package deck

import (
	"strings"

	"github.com/frankkopp/KlondikeGo/internal/assert"
	"github.com/frankkopp/KlondikeGo/internal/card"
	"github.com/frankkopp/KlondikeGo/internal/util"
)

// NFullDeck is the number of cards in the stock after the deal.
const NFullDeck uint8 = 24

// Drawable classifies a deck position for iteration purposes.
// Current positions are the top of the waste and the stock positions
// the cursor reaches by dealing in the current pass, Next positions
// are reached in the pass after the redeal, None positions are not
// reached by dealing alone.
type Drawable uint8

// Drawable values
const (
	DrawableNone Drawable = iota
	DrawableCurrent
	DrawableNext
)

// Deck holds the stock and waste cards of a solitaire game.
//  waste = deck[0..drawCur]
//  stock = deck[drawNext..NFullDeck]
// Create with New().
type Deck struct {
	deck     [NFullDeck]card.Card
	drawStep uint8
	drawNext uint8 // start position of the unconsumed stock
	drawCur  uint8 // size of the waste prefix
	mask     uint32
	cardMap  [card.NCards]uint8
}

// New creates a deck from the given cards with the given draw step.
// The draw step is clamped to the deck size. A draw step of zero is
// a caller bug.
func New(cards *[NFullDeck]card.Card, drawStep uint8) *Deck {
	if assert.DEBUG {
		assert.Assert(drawStep >= 1, "deck.New: draw step must be >= 1")
	}
	drawStep = util.MinU8(NFullDeck, drawStep)
	d := &Deck{
		deck:     *cards,
		drawStep: drawStep,
		drawNext: drawStep,
		drawCur:  drawStep,
	}
	for i := range d.cardMap {
		d.cardMap[i] = 0xFF
	}
	for i, c := range cards {
		d.cardMap[c.Value()] = uint8(i)
	}
	return d
}

// DrawStep returns the number of cards revealed per deal.
func (d *Deck) DrawStep() uint8 {
	return d.drawStep
}

// Len returns the number of cards left in waste and stock.
func (d *Deck) Len() uint8 {
	return NFullDeck - d.drawNext + d.drawCur
}

// IsEmpty checks if no cards are left.
func (d *Deck) IsEmpty() bool {
	return d.drawCur == 0 && d.drawNext == NFullDeck
}

// FindCard returns the logical position of the given card or false
// if the card has been consumed.
func (d *Deck) FindCard(c card.Card) (uint8, bool) {
	for i := uint8(0); i < d.drawCur; i++ {
		if d.deck[i] == c {
			return i, true
		}
	}
	for i := d.drawNext; i < NFullDeck; i++ {
		if d.deck[i] == c {
			return d.drawCur + i - d.drawNext, true
		}
	}
	return 0, false
}

// Waste returns the waste cards. The returned slice aliases the deck.
func (d *Deck) Waste() []card.Card {
	return d.deck[:d.drawCur]
}

// Stock returns the stock cards. The returned slice aliases the deck.
func (d *Deck) Stock() []card.Card {
	return d.deck[d.drawNext:]
}

// Peek returns the card at the given logical position.
func (d *Deck) Peek(pos uint8) card.Card {
	if pos < d.drawCur {
		return d.deck[pos]
	}
	return d.deck[pos-d.drawCur+d.drawNext]
}

// PeekLast returns the last card of the deck in logical order.
func (d *Deck) PeekLast() (card.Card, bool) {
	if d.drawNext < NFullDeck {
		return d.deck[NFullDeck-1], true
	}
	if d.drawCur > 0 {
		return d.deck[d.drawCur-1], true
	}
	return card.Fake, false
}

// PeekCurrent returns the card under the cursor, e.g. the card a
// draw from the current position would consume.
func (d *Deck) PeekCurrent() (card.Card, bool) {
	if d.drawCur == 0 {
		return card.Fake, false
	}
	return d.deck[d.drawCur-1], true
}

// IterAll visits every card in logical order together with its
// drawable classification.
func (d *Deck) IterAll(f func(pos uint8, c card.Card, drawable Drawable)) {
	for i := uint8(0); i < d.drawCur; i++ {
		drawable := DrawableNone
		switch {
		case i+1 == d.drawCur:
			drawable = DrawableCurrent
		case (i+1)%d.drawStep == 0:
			drawable = DrawableNext
		}
		f(i, d.deck[i], drawable)
	}
	stockLen := NFullDeck - d.drawNext
	for i := uint8(0); i < stockLen; i++ {
		drawable := DrawableNone
		switch {
		case i+1 == stockLen, (i+1)%d.drawStep == 0:
			drawable = DrawableCurrent
		case (d.drawCur+i+1)%d.drawStep == 0:
			drawable = DrawableNext
		}
		f(d.drawCur+i, d.deck[d.drawNext+i], drawable)
	}
}

// Offset returns the cursor position after the given number of deal
// steps. A step advances the cursor by the draw step clamped to the
// deck length plus the empty wrap step after the last partial deal.
func (d *Deck) Offset(nStep uint8) uint8 {
	next := d.drawCur
	length := d.Len()
	step := d.drawStep

	nStepToEnd := divCeil(length-next, step)

	var offset uint8
	if nStep <= nStepToEnd {
		offset = next + step*nStep
	} else {
		totalStep := divCeil(length, step) + 1
		nStep = (nStep - nStepToEnd - 1) % totalStep
		offset = step * nStep
	}
	return util.MinU8(offset, length)
}

// OffsetOnce returns the cursor position after one deal step.
func (d *Deck) OffsetOnce() uint8 {
	next := d.drawCur
	length := d.Len()
	if next >= length {
		return 0
	}
	return util.MinU8(next+d.drawStep, length)
}

// DealOnce advances the cursor by one deal step.
func (d *Deck) DealOnce() {
	d.SetOffset(d.OffsetOnce())
}

// IterCallback visits every currently drawable card position and the
// positions reachable after one more deal, calling f with the logical
// position and the card. Iteration stops when f returns false.
// With filter set, positions that can be reached cheaply from an
// earlier cursor by one deal action are left out (dominance filter).
func (d *Deck) IterCallback(filter bool, f func(pos uint8, c card.Card) bool) bool {
	if !filter {
		for i := d.drawStep - 1; i+1 < d.drawCur; i += d.drawStep {
			if !f(i, d.deck[i]) {
				return false
			}
		}
	}

	if d.drawCur > 0 {
		if !f(d.drawCur-1, d.deck[d.drawCur-1]) {
			return false
		}
	}

	gap := d.drawNext - d.drawCur

	if d.drawNext < NFullDeck {
		if !f(NFullDeck-1-gap, d.deck[NFullDeck-1]) {
			return false
		}
	}

	for i := d.drawNext + d.drawStep - 1; i+1 < NFullDeck; i += d.drawStep {
		if !f(i-gap, d.deck[i]) {
			return false
		}
	}

	offset := d.drawCur % d.drawStep
	if !filter && offset != 0 {
		for i := d.drawNext + d.drawStep - 1 - offset; i+1 < NFullDeck; i += d.drawStep {
			if !f(i-gap, d.deck[i]) {
				return false
			}
		}
	}
	return true
}

// SetOffset slides the gap so that the cursor points to the given
// logical position. After this the deck has the structure
//  [.... id-1 <gap> id ....]
//    drawCur ^      ^ drawNext
func (d *Deck) SetOffset(id uint8) {
	if id < d.drawCur {
		step := d.drawCur - id
		copy(d.deck[d.drawNext-step:d.drawNext], d.deck[d.drawCur-step:d.drawCur])
		d.drawCur -= step
		d.drawNext -= step
	} else {
		step := id - d.drawCur
		copy(d.deck[d.drawCur:d.drawCur+step], d.deck[d.drawNext:d.drawNext+step])
		d.drawCur += step
		d.drawNext += step
	}
}

// popNext consumes the card at the start of the stock.
func (d *Deck) popNext() card.Card {
	c := d.deck[d.drawNext]
	d.mask ^= 1 << d.cardMap[c.Value()]
	d.drawNext++
	return c
}

// Draw slides the cursor to the given position and consumes one card.
func (d *Deck) Draw(id uint8) card.Card {
	if assert.DEBUG {
		assert.Assert(d.drawCur <= d.drawNext && id < d.Len(),
			"deck.Draw: position %d out of range", id)
	}
	d.SetOffset(id)
	return d.popNext()
}

// DrawCurrent consumes the card under the cursor.
func (d *Deck) DrawCurrent() (card.Card, bool) {
	offset := d.drawCur
	if offset == 0 {
		return card.Fake, false
	}
	return d.Draw(offset - 1), true
}

// Push restores a previously drawn card onto the waste. The caller
// guarantees it matches a previous Draw.
func (d *Deck) Push(c card.Card) {
	d.mask ^= 1 << d.cardMap[c.Value()]
	d.deck[d.drawCur] = c
	d.drawCur++
}

// GetOffset returns the current cursor position.
func (d *Deck) GetOffset() uint8 {
	return d.drawCur
}

// IsPure checks if repeated dealing will loop back to the current
// cursor position.
func (d *Deck) IsPure() bool {
	return d.drawCur%d.drawStep == 0 || d.drawNext == NFullDeck
}

// NormalizedOffset returns the canonical cursor value. Positions that
// are reachable via full deals only are collapsed onto the deck length
// so that functionally identical decks encode equally.
func (d *Deck) NormalizedOffset() uint8 {
	if d.drawCur%d.drawStep == 0 {
		return d.Len()
	}
	return d.drawCur
}

// Encode returns the canonical 29-bit encoding of the deck: a 24-bit
// mask of consumed cards indexed by the original slot of each card
// combined with the normalized offset.
func (d *Deck) Encode() uint32 {
	return d.mask | uint32(d.NormalizedOffset())<<NFullDeck
}

// Decode restores an operationally equivalent deck from an encoding
// produced by a deck of the same deal.
func (d *Deck) Decode(encode uint32) {
	mask := encode & ((1 << NFullDeck) - 1)
	offset := uint8(encode >> NFullDeck)

	var revMap [NFullDeck]card.Card
	for i := range revMap {
		revMap[i] = card.Fake
	}
	for i := uint8(0); i < card.NCards; i++ {
		val := d.cardMap[i]
		if val < NFullDeck && (encode>>val)&1 == 0 {
			revMap[val] = card.FromValue(i)
		}
	}

	pos := uint8(0)
	for _, c := range revMap {
		if c != card.Fake {
			d.deck[pos] = c
			pos++
		}
	}

	d.drawCur = pos
	d.drawNext = NFullDeck

	d.SetOffset(offset)
	d.mask = mask
}

// EquivalentTo checks if both decks expose the same sequence of
// drawable cards.
func (d *Deck) EquivalentTo(other *Deck) bool {
	if d.Len() != other.Len() {
		return false
	}
	equivalent := true
	pos := uint8(0)
	cards := make([]card.Card, 0, NFullDeck)
	drawables := make([]Drawable, 0, NFullDeck)
	d.IterAll(func(_ uint8, c card.Card, drawable Drawable) {
		cards = append(cards, c)
		drawables = append(drawables, drawable)
	})
	other.IterAll(func(_ uint8, c card.Card, drawable Drawable) {
		if cards[pos] != c || (drawables[pos] == DrawableNone) != (drawable == DrawableNone) {
			equivalent = false
		}
		pos++
	})
	return equivalent
}

// String returns a string representation of the deck.
func (d *Deck) String() string {
	var os strings.Builder
	os.WriteString("Deck: [")
	for i, c := range d.Waste() {
		if i > 0 {
			os.WriteString(" ")
		}
		os.WriteString(c.String())
	}
	os.WriteString(" | ")
	for i, c := range d.Stock() {
		if i > 0 {
			os.WriteString(" ")
		}
		os.WriteString(c.String())
	}
	os.WriteString("]")
	return os.String()
}

func divCeil(a, b uint8) uint8 {
	return (a + b - 1) / b
}
