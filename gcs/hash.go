// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/dcrd/crypto/rand"
	"github.com/spaolacci/murmur3"
	"lukechampine.com/blake3"
)

// SaltSize is the size of the salt used to key the hash function for every
// item of a set.  It matches the key size of SipHash.
const SaltSize = 16

// Salt is the per-set key material for the keyed hash function.  The same salt
// is required to query a set as was used to build it.
type Salt [SaltSize]byte

// NewSalt returns a salt filled with cryptographically secure random bytes.
func NewSalt() Salt {
	var salt Salt
	rand.Read(salt[:])
	return salt
}

// KeyedHasher is the hash capability used to map items into a set.  The
// output must be uniformly distributed over the full uint64 range and must be
// deterministic for a given salt and item.  Implementations must not retain
// the item after returning.
type KeyedHasher interface {
	Sum64(salt *Salt, data []byte) uint64
}

// HasherFunc adapts a function to the KeyedHasher interface.
type HasherFunc func(salt *Salt, data []byte) uint64

// Sum64 calls f(salt, data).
func (f HasherFunc) Sum64(salt *Salt, data []byte) uint64 {
	return f(salt, data)
}

// sipHash24 is SipHash-2-4 keyed with the little-endian halves of the salt.
func sipHash24(salt *Salt, data []byte) uint64 {
	k0 := binary.LittleEndian.Uint64(salt[0:8])
	k1 := binary.LittleEndian.Uint64(salt[8:16])
	return siphash.Hash(k0, k1, data)
}

// xxHash64 is XXH64 over the salt followed by the item.
func xxHash64(salt *Salt, data []byte) uint64 {
	d := xxhash.New()
	d.Write(salt[:])
	d.Write(data)
	return d.Sum64()
}

// murmur3Hash is the first half of MurmurHash3 x64-128 seeded with the first
// four bytes of the salt over the rest of the salt followed by the item.
func murmur3Hash(salt *Salt, data []byte) uint64 {
	h := murmur3.New64WithSeed(binary.LittleEndian.Uint32(salt[0:4]))
	h.Write(salt[4:])
	h.Write(data)
	return h.Sum64()
}

// blake256Hash is the first 8 bytes of BLAKE-256 over the salt followed by the
// item.
func blake256Hash(salt *Salt, data []byte) uint64 {
	buf := make([]byte, 0, SaltSize+len(data))
	buf = append(buf, salt[:]...)
	buf = append(buf, data...)
	sum := blake256.Sum256(buf)
	return binary.LittleEndian.Uint64(sum[:8])
}

// blake3Hash is BLAKE3 in keyed mode with an 8-byte output.  The key is the
// salt followed by zeros.
func blake3Hash(salt *Salt, data []byte) uint64 {
	var key [32]byte
	copy(key[:], salt[:])
	h := blake3.New(8, key[:])
	h.Write(data)
	var sum [8]byte
	return binary.LittleEndian.Uint64(h.Sum(sum[:0]))
}

// Keyed hash functions that may be used to build and query sets.
var (
	// SipHash24 is the default hash function of a set.
	SipHash24 KeyedHasher = HasherFunc(sipHash24)

	XXHash64 KeyedHasher = HasherFunc(xxHash64)
	Murmur3  KeyedHasher = HasherFunc(murmur3Hash)
	Blake256 KeyedHasher = HasherFunc(blake256Hash)
	Blake3   KeyedHasher = HasherFunc(blake3Hash)
)

// hashersByName maps the names accepted by HasherByName to hash functions.
var hashersByName = map[string]KeyedHasher{
	"siphash":  SipHash24,
	"xxhash":   XXHash64,
	"murmur3":  Murmur3,
	"blake256": Blake256,
	"blake3":   Blake3,
}

// HasherNames returns the sorted names accepted by HasherByName.
func HasherNames() []string {
	names := make([]string, 0, len(hashersByName))
	for name := range hashersByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasherByName returns the keyed hash function registered with the provided
// case-insensitive name.
func HasherByName(name string) (KeyedHasher, error) {
	h, ok := hashersByName[strings.ToLower(name)]
	if !ok {
		str := fmt.Sprintf("unknown hash function %q (available: %s)", name,
			strings.Join(HasherNames(), ", "))
		return nil, makeError(ErrUnknownHasher, str)
	}
	return h, nil
}
