// Copyright (c) 2018-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package gcs provides an API for building and using Golomb-coded sets.

A Golomb-Coded Set (GCS) is a space-efficient probabilistic data structure that
is used to test set membership with a tunable false positive rate while
simultaneously preventing false negatives.  In other words, items that are in
the set will always match, but items that are not in the set will also sometimes
match with the chosen false positive rate.  Unlike a Bloom filter, a set can't
be modified once it is built.

A set is parameterized by the following:

  - A parameter `M` that defines the false positive rate as `1/M`
  - A salt that keys the hash function
  - A keyed hash function, SipHash-2-4 by default
  - The items to include in the set

Every distinct item is hashed and reduced to the range [0, N*M), where N is the
number of distinct items.  The resulting values are sorted, deduplicated, and
the deltas between them are written with Golomb-Rice coding using a remainder
of `P = ceil(log2(M))` bits, most significant bit first.  The final byte is zero
padded.  The parameters N and M, the salt, and the hash function are not part
of the serialized set and must be conveyed by the caller in order to query it.

Querying a set hashes the search item the same way and decodes the deltas only
until the running sum reaches the hashed value.

# Errors

The errors returned by this package are of type gcs.Error or gcs.ErrorKind.
This allows the caller to programmatically determine the specific error by
using errors.Is or errors.As while still providing rich error messages with
contextual information.  See ErrorKind in the package documentation for a full
list.
*/
package gcs
