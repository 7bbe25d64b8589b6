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

// Package transpositiontable implements the visited-state cache of
// the solver. The main table is a bounded power-of-two array of
// mixed keys where a colliding insert simply overwrites - evicting
// an entry can only make the search redo work, never change its
// result. An exact set of the states on the current search path is
// kept next to it so membership stays monotone within one branch,
// which is what makes the bounded table sound.
// The table is not thread safe and is owned by one solve call.
package transpositiontable

import (
	"math"
	"unsafe"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/KlondikeGo/internal/logging"
	"github.com/frankkopp/KlondikeGo/internal/state"
)

var out = message.NewPrinter(language.German)
var log = logging.GetLog()

const (
	// TtEntrySize is the size in bytes for each entry
	TtEntrySize = 8 // 8 bytes

	// MaxSizeInMB maximal memory usage of tt
	MaxSizeInMB = 65_536

	// MB = 1.024 * 1.024 bytes
	MB uint64 = 1024 * 1024
)

// TtTable is the actual transposition table
// object holding data and state.
// Create with NewTtTable()
type TtTable struct {
	data               []uint64
	sizeInByte         uint64
	hashKeyMask        uint64
	maxNumberOfEntries uint64
	numberOfEntries    uint64
	path               map[state.Encode]struct{}
	Stats              TtStats
}

// TtStats holds statistical data on tt usage
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfHits       uint64
	numberOfProbes     uint64
}

// NewTtTable creates a new TtTable with the given number of megabytes
// as a maximum of memory usage. Actual size will be determined
// by the number of elements fitting into this size which need
// to be a power of 2 for efficient hashing/addressing via bit
// masks
func NewTtTable(sizeInMByte int) *TtTable {
	tt := &TtTable{
		path: make(map[state.Encode]struct{}),
	}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize resizes the tt table. All entries will be cleared.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	// calculate the maximum power of 2 of entries fitting into the given size in MB
	tt.sizeInByte = uint64(sizeInMByte) * MB
	tt.maxNumberOfEntries = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/TtEntrySize))))
	tt.hashKeyMask = tt.maxNumberOfEntries - 1 // --> 0x0001111....111

	// if TT is resized to 0 we can't have any entries.
	if tt.sizeInByte == 0 {
		tt.maxNumberOfEntries = 0
	}

	// calculate the real memory usage
	tt.sizeInByte = tt.maxNumberOfEntries * TtEntrySize

	tt.data = make([]uint64, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.path = make(map[state.Encode]struct{})

	log.Debug(out.Sprintf("TT Size %d MByte, Capacity %d entries (size=%dByte) (Requested were %d MBytes)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, unsafe.Sizeof(uint64(0)), sizeInMByte))
}

// Insert reports a state as visited. It returns false if the state
// has been seen before - either in the bounded table or on the
// current search path - and true if it was new and has been stored.
func (tt *TtTable) Insert(encode state.Encode) bool {
	tt.Stats.numberOfProbes++
	if _, onPath := tt.path[encode]; onPath {
		tt.Stats.numberOfHits++
		return false
	}
	key := Mix(uint64(encode))
	if tt.maxNumberOfEntries > 0 {
		entry := &tt.data[key&tt.hashKeyMask]
		if *entry == key {
			tt.Stats.numberOfHits++
			return false
		}
		tt.Stats.numberOfPuts++
		if *entry == 0 {
			tt.numberOfEntries++
		} else {
			// eviction by overwrite - a future visitor may redo work
			tt.Stats.numberOfCollisions++
		}
		*entry = key
	}
	tt.path[encode] = struct{}{}
	return true
}

// Release removes a state from the current search path. The bounded
// table keeps its entry.
func (tt *TtTable) Release(encode state.Encode) {
	delete(tt.path, encode)
}

// Clear clears all entries of the tt.
func (tt *TtTable) Clear() {
	tt.data = make([]uint64, tt.maxNumberOfEntries)
	tt.numberOfEntries = 0
	tt.path = make(map[state.Encode]struct{})
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is in permill.
func (tt *TtTable) Hashfull() int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / tt.maxNumberOfEntries)
}

// Len returns the number of non empty entries in the tt.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries
}

// String returns a string representation of this TtTable instance.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB max entries %d of size %d Bytes entries %d (%d) puts %d "+
		"collisions %d probes %d hits %d (%d)",
		tt.sizeInByte/MB, tt.maxNumberOfEntries, TtEntrySize, tt.numberOfEntries, tt.Hashfull(),
		tt.Stats.numberOfPuts, tt.Stats.numberOfCollisions, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes))
}
