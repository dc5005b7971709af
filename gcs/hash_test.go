// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/dchest/siphash"
)

// TestHashers ensures every registered hash function is deterministic and
// depends on both the salt and the item.
func TestHashers(t *testing.T) {
	var salt Salt
	for i := range salt {
		salt[i] = byte(i)
	}
	otherSalt := salt
	otherSalt[SaltSize-1] ^= 0x80

	for _, name := range HasherNames() {
		h, err := HasherByName(name)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", name, err)
		}

		item := []byte("item")
		v := h.Sum64(&salt, item)
		if v2 := h.Sum64(&salt, []byte("item")); v2 != v {
			t.Errorf("%s: nondeterministic hash %x != %x", name, v2, v)
		}
		if v2 := h.Sum64(&otherSalt, item); v2 == v {
			t.Errorf("%s: hash does not depend on the salt", name)
		}
		if v2 := h.Sum64(&salt, []byte("iten")); v2 == v {
			t.Errorf("%s: hash does not depend on the item", name)
		}
		if v2 := h.Sum64(&salt, nil); v2 != h.Sum64(&salt, []byte{}) {
			t.Errorf("%s: nil and empty items hash differently", name)
		}
	}
}

// TestSipHashKey ensures the default hash function keys SipHash-2-4 with the
// little-endian halves of the salt.
func TestSipHashKey(t *testing.T) {
	var salt Salt
	for i := range salt {
		salt[i] = byte(0xf0 - i)
	}
	k0 := binary.LittleEndian.Uint64(salt[0:8])
	k1 := binary.LittleEndian.Uint64(salt[8:16])
	data := []byte("Decred")
	if got, want := SipHash24.Sum64(&salt, data), siphash.Hash(k0, k1, data); got != want {
		t.Fatalf("mismatched hash -- got %x, want %x", got, want)
	}
}

// TestHasherByName ensures hash functions are found case insensitively and
// unknown names are rejected.
func TestHasherByName(t *testing.T) {
	if _, err := HasherByName("SipHash"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := HasherByName("md5")
	if !errors.Is(err, ErrUnknownHasher) {
		t.Fatalf("unexpected err -- got %v, want %v", err, ErrUnknownHasher)
	}
	names := HasherNames()
	want := []string{"blake256", "blake3", "murmur3", "siphash", "xxhash"}
	if len(names) != len(want) {
		t.Fatalf("unexpected names %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("unexpected names -- got %v, want %v", names, want)
		}
	}
}
