// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"
	"math"
	"math/bits"
)

// MaxQuotient is the largest unary quotient that is encoded or decoded.  It
// bounds the work done on corrupt input.  Sets built by this package never
// come close to it since a quotient is at most N and is expected to be about
// 1 for every value.
const MaxQuotient = 1 << 20

// RiceParam returns the Golomb-Rice parameter P = ceil(log2(M)) used as the
// bit size of the remainder of every value of a set with a false positive rate
// of 1/M.  M must be at least 1.
func RiceParam(m uint64) uint8 {
	if m <= 1 {
		return 0
	}
	return uint8(bits.Len64(m - 1))
}

// writeRice writes delta to the bitstream with Golomb-Rice coding using a bin
// size of 2^p.  That is the quotient floor(delta / 2^p) in unary followed by
// the remainder delta mod 2^p as a big-endian p-bit integer.
func writeRice(w *bitWriter, delta uint64, p uint8) error {
	if p > maxBitWidth {
		str := fmt.Sprintf("rice parameter %d exceeds max allowed %d", p,
			maxBitWidth)
		return makeError(ErrInvalidWidth, str)
	}

	// Shifting a uint64 by 64 yields 0, which is the correct quotient for
	// p = 64.
	quotient := delta >> p
	if quotient > MaxQuotient {
		str := fmt.Sprintf("value %d has quotient %d with P=%d which exceeds "+
			"the max allowed %d", delta, quotient, p, MaxQuotient)
		return makeError(ErrValueTooLarge, str)
	}

	// Write the quotient into the bitstream in unary.  The average value will
	// be around 1 for reasonably optimal parameters (which is encoded as 2
	// bits - 0b10).
	for ; quotient > 0; quotient-- {
		w.writeOne()
	}
	w.writeZero()

	// Write the remainder as a big-endian integer with p bits.  Golomb coding
	// typically uses truncated binary encoding in order to support arbitrary
	// bin sizes, however, since 2^p is a power of 2, it is equivalent to a
	// regular binary code.  Only the low p bits of delta are written.
	return w.writeNBits(delta, uint(p))
}

// readRice reads a value written by writeRice with the same parameter.
func readRice(r *bitReader, p uint8) (uint64, error) {
	if p > maxBitWidth {
		str := fmt.Sprintf("rice parameter %d exceeds max allowed %d", p,
			maxBitWidth)
		return 0, makeError(ErrInvalidWidth, str)
	}

	quotient, err := r.readUnary(MaxQuotient)
	if err != nil {
		return 0, err
	}
	remainder, err := r.readNBits(uint(p))
	if err != nil {
		return 0, err
	}

	if quotient != 0 && (p == maxBitWidth || quotient > math.MaxUint64>>p) {
		str := fmt.Sprintf("quotient %d with P=%d overflows a uint64",
			quotient, p)
		return 0, makeError(ErrQuotientTooLarge, str)
	}
	return quotient<<p | remainder, nil
}
