// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2016-2017 The Lightning Network Developers
// Copyright (c) 2018-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"
	"sync"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/blake256"
	"golang.org/x/exp/slices"
)

// Set is an immutable Golomb-coded set that can be queried in a thread-safe
// manner.  The serialized form returned by Bytes is only the Golomb-Rice coded
// deltas of the sorted hashed items.  The parameters N and M, the salt, and the
// hash function are required to query the set and must be conveyed alongside
// it by the caller.
type Set struct {
	n    uint64
	m    uint64
	p    uint8
	rh   *RangeHasher
	data []byte
}

// FromBytes returns a set for the serialized data produced by Bytes of a set
// that was built with the given hash function, salt, N, and M.  The data is
// copied.
func FromBytes(h KeyedHasher, n, m uint64, salt Salt, data []byte) (*Set, error) {
	if m == 0 {
		return nil, makeError(ErrInvalidModulus, "M must be at least 1")
	}
	if n > MaxItems {
		str := fmt.Sprintf("N=%d is greater than max allowed %d", n, MaxItems)
		return nil, makeError(ErrTooManyItems, str)
	}
	switch {
	case n == 0 && len(data) != 0:
		str := fmt.Sprintf("set with N=0 has %d bytes of data", len(data))
		return nil, makeError(ErrMisserialized, str)
	case n != 0 && len(data) == 0:
		str := fmt.Sprintf("set with N=%d has no data", n)
		return nil, makeError(ErrMisserialized, str)
	}

	rh, err := NewRangeHasher(h, salt, n, m)
	if err != nil {
		return nil, err
	}
	return &Set{
		n:    n,
		m:    m,
		p:    RiceParam(m),
		rh:   rh,
		data: slices.Clone(data),
	}, nil
}

// N returns the number of distinct items used to build the set.
func (s *Set) N() uint64 {
	return s.n
}

// M returns the inverse of the false positive rate of the set.
func (s *Set) M() uint64 {
	return s.m
}

// P returns the Golomb-Rice parameter of the set.  The bin size of the coding
// is 2^P.
func (s *Set) P() uint8 {
	return s.p
}

// Salt returns the salt used to hash the items of the set.
func (s *Set) Salt() Salt {
	return s.rh.salt
}

// Bytes returns a copy of the serialized set.
func (s *Set) Bytes() []byte {
	return slices.Clone(s.data)
}

// Size returns the number of bytes of the serialized set.
func (s *Set) Size() int {
	return len(s.data)
}

// setDecoder iterates the ascending values of a set.
type setDecoder struct {
	s     *Set
	r     bitReader
	n     uint64
	value uint64
}

// newDecoder returns a decoder positioned at the first value of the set.
func (s *Set) newDecoder() setDecoder {
	return setDecoder{s: s, r: newBitReader(s.data)}
}

// next decodes the next value.  It returns false without an error once all
// values were read.
func (d *setDecoder) next() (bool, error) {
	if d.r.exhausted() {
		return false, nil
	}
	if d.n == d.s.n {
		str := fmt.Sprintf("set data has more than N=%d values", d.s.n)
		return false, makeError(ErrMisserialized, str)
	}

	delta, err := readRice(&d.r, d.s.p)
	if err != nil {
		return false, err
	}
	value := d.value + delta
	if value < d.value || value >= d.s.rh.modulusNM {
		str := fmt.Sprintf("value %d of set data is outside of the range of "+
			"N*M=%d", d.n, d.s.rh.modulusNM)
		return false, makeError(ErrMisserialized, str)
	}
	d.value = value
	d.n++
	return true, nil
}

// Contains returns whether the item is likely (within the false positive rate)
// to be a member of the set.  A false result means the item is definitely not
// a member.  An error is only returned when the set data is corrupt.
//
// Decoding stops as soon as the values of the set reach the hashed item, so
// corruption after that point is not detected.  Since the serialized set is
// zero padded and does not record its own length, data that was truncated at
// a value boundary, or where the truncated remainder is only zero bits, is
// indistinguishable from a set with fewer values.  Queries for the lost values
// then report no match without an error.  Callers that transport sets over
// unreliable channels must verify them separately, for example by comparing
// Hash against a known commitment.
func (s *Set) Contains(data []byte) (bool, error) {
	// An empty set can't possibly match anything.
	if s.n == 0 {
		return false, nil
	}

	// Hash the search term with the same parameters as the set.
	term := s.rh.Hash(data)

	// Go through the values in ascending order until the search term is found
	// or passed.
	d := s.newDecoder()
	for {
		ok, err := d.next()
		if err != nil || !ok {
			return false, err
		}
		if d.value == term {
			return true, nil
		}
		if d.value > term {
			return false, nil
		}
	}
}

// Match returns whether the item is likely (within the false positive rate) to
// be a member of the set.  It is the same as Contains except that corrupt set
// data is reported as not matching.
func (s *Set) Match(data []byte) bool {
	ok, err := s.Contains(data)
	if err != nil {
		log.Debugf("Unable to match against set: %v", err)
		return false
	}
	return ok
}

// matchPool pools allocations for match data.
var matchPool sync.Pool

// MatchAny returns whether any of the items is likely (within the false
// positive rate) to be a member of the set.  It is faster than calling Match
// for each item individually since the set is only decoded once.  Corrupt set
// data is reported as not matching.
func (s *Set) MatchAny(data [][]byte) bool {
	// An empty set or empty data can't possibly match anything.
	if s.n == 0 || len(data) == 0 {
		return false
	}

	// Create a sorted uncompressed list of the search terms.
	var terms *[]uint64
	if v := matchPool.Get(); v != nil {
		terms = v.(*[]uint64)
		*terms = (*terms)[:0]
	} else {
		ts := make([]uint64, 0, len(data))
		terms = &ts
	}
	defer matchPool.Put(terms)
	for _, d := range data {
		*terms = append(*terms, s.rh.Hash(d))
	}
	slices.Sort(*terms)

	// Zip down the set and the search terms, comparing values until either
	// one runs out or a matching value is found.
	d := s.newDecoder()
	var termIdx int
	for termIdx < len(*terms) {
		ok, err := d.next()
		if err != nil {
			log.Debugf("Unable to match against set: %v", err)
			return false
		}
		if !ok {
			return false
		}

		// Skip the search terms that are less than the current set value.
		for ; termIdx < len(*terms); termIdx++ {
			term := (*terms)[termIdx]
			if term == d.value {
				return true
			}
			if term > d.value {
				break
			}
		}
	}

	return false
}

// Values returns every hashed value of the set in ascending order.  As with
// Contains, a set truncated at a value boundary decodes without error to fewer
// values than N.
func (s *Set) Values() ([]uint64, error) {
	values := make([]uint64, 0, s.n)
	d := s.newDecoder()
	for {
		ok, err := d.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return values, nil
		}
		values = append(values, d.value)
	}
}

// Hash returns the BLAKE-256 hash of the serialized set.
func (s *Set) Hash() chainhash.Hash {
	// Empty sets have a hash of all zeroes.
	if len(s.data) == 0 {
		return chainhash.Hash{}
	}

	return chainhash.Hash(blake256.Sum256(s.data))
}

// String returns a summary of the set parameters.
func (s *Set) String() string {
	return fmt.Sprintf("gcs(N=%d, M=%d, P=%d, %d bytes)", s.n, s.m, s.p,
		len(s.data))
}
