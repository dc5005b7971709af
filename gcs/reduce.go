// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"
	"math/bits"
)

// fastReduce calculates a mapping that is more or less equivalent to x mod N.
// However, instead of using a mod operation that can lead to slowness on many
// processors when not using a power of two due to unnecessary division, this
// uses a "multiply-and-shift" trick that eliminates all divisions as described
// in a blog post by Daniel Lemire, located at the following site at the time
// of this writing:
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
//
// Since N is a 64-bit integer in this case, it becomes:
//
// (x * N) / 2^64 == (x * N) >> 64
//
// This is a fair map since it maps integers in the range [0,2^64) to multiples
// of N in [0, N*2^64) and then divides by 2^64 to map all multiples of N in
// [0,2^64) to 0, all multiples of N in [2^64, 2*2^64) to 1, etc.  This results
// in either ceil(2^64/N) or floor(2^64/N) multiples of N.
func fastReduce(x, N uint64) uint64 {
	// The high 64 bits in a 128-bit product is the same as shifting the entire
	// product right by 64 bits.
	hi, _ := bits.Mul64(x, N)
	return hi
}

// modulusNM returns N*M or an error when the product does not fit in 64 bits.
func modulusNM(n, m uint64) (uint64, error) {
	hi, lo := bits.Mul64(n, m)
	if hi != 0 {
		str := fmt.Sprintf("N*M for N=%d and M=%d exceeds the max allowed "+
			"range of 2^64-1", n, m)
		return 0, makeError(ErrRangeOverflow, str)
	}
	return lo, nil
}

// RangeHasher maps items to values uniformly distributed in [0, N*M) by
// reducing the output of a keyed hash function.
//
// A RangeHasher is immutable and safe for concurrent use.
type RangeHasher struct {
	hasher    KeyedHasher
	salt      Salt
	modulusNM uint64
}

// NewRangeHasher returns a RangeHasher for a set of n items with a false
// positive rate of 1/m that hashes items with the provided keyed hash function
// and salt.
//
// ErrRangeOverflow is returned when n*m does not fit in 64 bits.
func NewRangeHasher(h KeyedHasher, salt Salt, n, m uint64) (*RangeHasher, error) {
	nm, err := modulusNM(n, m)
	if err != nil {
		return nil, err
	}
	return &RangeHasher{hasher: h, salt: salt, modulusNM: nm}, nil
}

// Hash returns the reduced hash of the item in the range [0, N*M).
func (r *RangeHasher) Hash(data []byte) uint64 {
	return fastReduce(r.hasher.Sum64(&r.salt, data), r.modulusNM)
}

// Modulus returns N*M, the exclusive upper bound of the hashed values.
func (r *RangeHasher) Modulus() uint64 {
	return r.modulusNM
}
