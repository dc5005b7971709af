// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2016-2017 The Lightning Network Developers
// Copyright (c) 2018-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// MaxItems is the maximum number of distinct items a set may contain.
const MaxItems = math.MaxInt32

// Builder accumulates the items of a set prior to encoding them.  Duplicate
// items are only stored once, so the resulting set does not depend on the
// order or multiplicity of the added items.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	hasher KeyedHasher
	m      uint64
	salt   Salt
	limit  uint64
	items  map[string]struct{}
}

// NewBuilder returns a builder for a set with a false positive rate of 1/m
// that hashes items with the provided keyed hash function and salt.
//
// A limit greater than zero is the maximum number of distinct items that may
// be added with Add.
func NewBuilder(h KeyedHasher, m uint64, salt Salt, limit uint64) *Builder {
	return &Builder{
		hasher: h,
		m:      m,
		salt:   salt,
		limit:  limit,
		items:  make(map[string]struct{}),
	}
}

// add inserts a copy of the item when it was not already added.
func (b *Builder) add(item []byte) {
	if _, ok := b.items[string(item)]; !ok {
		b.items[string(item)] = struct{}{}
	}
}

// Add adds an item to the set.  ErrLimitReached is returned when the item is
// not already in the set and the builder already holds its limit of distinct
// items.
func (b *Builder) Add(item []byte) error {
	if b.limit > 0 && uint64(len(b.items)) >= b.limit {
		if _, ok := b.items[string(item)]; ok {
			return nil
		}
		str := fmt.Sprintf("unable to add item: the builder already holds "+
			"its limit of %d items", b.limit)
		return makeError(ErrLimitReached, str)
	}
	b.add(item)
	return nil
}

// AddUnchecked adds an item to the set without enforcing the item limit.
func (b *Builder) AddUnchecked(item []byte) {
	b.add(item)
}

// Len returns the number of distinct items added so far.
func (b *Builder) Len() int {
	return len(b.items)
}

// Build encodes the added items into a set.  The builder may continue to be
// used afterwards.
func (b *Builder) Build() (*Set, error) {
	if b.m == 0 {
		return nil, makeError(ErrInvalidModulus, "M must be at least 1")
	}

	// Fail fast when the number of items can't be represented before doing
	// any hashing.
	numItems := uint64(len(b.items))
	if numItems > MaxItems {
		str := fmt.Sprintf("unable to create set with %d items greater than "+
			"max allowed %d", numItems, MaxItems)
		return nil, makeError(ErrTooManyItems, str)
	}
	if _, err := modulusNM(numItems, b.m); err != nil {
		str := fmt.Sprintf("unable to create set with %d items for M=%d: %v",
			numItems, b.m, err)
		return nil, makeError(ErrTooManyItems, str)
	}

	rh, err := NewRangeHasher(b.hasher, b.salt, numItems, b.m)
	if err != nil {
		return nil, err
	}
	s := &Set{
		n:  numItems,
		m:  b.m,
		p:  RiceParam(b.m),
		rh: rh,
	}

	// Nothing to do for an empty set.
	if numItems == 0 {
		return s, nil
	}

	// Reduce the hash of each item to the range [0,N*M), sort them, and
	// remove any values that collide since they can't be told apart when
	// querying.  The iteration order of the items does not matter since the
	// values are sorted.
	values := make([]uint64, 0, numItems)
	var buf []byte
	for item := range b.items {
		buf = append(buf[:0], item...)
		values = append(values, rh.Hash(buf))
	}
	slices.Sort(values)
	values = slices.Compact(values)
	if numDups := numItems - uint64(len(values)); numDups > 0 {
		log.Debugf("Dropped %d colliding hash values of %d items", numDups,
			numItems)
	}

	// Every value will have p bits for the remainder portion and a quotient
	// that is expected to be 1 on average with an exponentially decreasing
	// probability for each subsequent value.  A quotient of 1 takes 2 bits in
	// unary to encode and a quotient of 2 takes 3 bits.  Since the first two
	// terms dominate, a reasonable expected size in bytes is:
	//   (NP + 2N/2 + 3N/2) / 8
	numValues := uint64(len(values))
	var w bitWriter
	sizeHint := (numValues*uint64(s.p) + numValues + 3*numValues>>1) >> 3
	w.bytes = make([]byte, 0, sizeHint+1)

	// Write the deltas between the sorted values into the bitstream using
	// Golomb-Rice coding.  The first delta is relative to zero.
	var prevValue uint64
	for _, v := range values {
		if err := writeRice(&w, v-prevValue, s.p); err != nil {
			return nil, err
		}
		prevValue = v
	}
	s.data = w.finish()

	log.Tracef("Built set with N=%d, M=%d, P=%d: %d values in %d bytes",
		s.n, s.m, s.p, numValues, len(s.data))
	return s, nil
}

// BuildWithHasher builds a set with a false positive rate of 1/m that contains
// every one of the provided items using the given keyed hash function and
// salt.
//
// N, the number of distinct items, and M determine the range [0, N*M) items
// are hashed into.  ErrTooManyItems is returned when N exceeds MaxItems or N*M
// does not fit in 64 bits.
func BuildWithHasher(h KeyedHasher, m uint64, salt Salt, items [][]byte) (*Set, error) {
	b := NewBuilder(h, m, salt, 0)
	for _, item := range items {
		b.AddUnchecked(item)
	}
	return b.Build()
}

// Build builds a set with a false positive rate of 1/m that contains every one
// of the provided items using SipHash-2-4 keyed with the given salt.
func Build(m uint64, salt Salt, items [][]byte) (*Set, error) {
	return BuildWithHasher(SipHash24, m, salt, items)
}
