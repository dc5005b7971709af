// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestRiceParam ensures the Golomb-Rice parameter is ceil(log2(M)).
func TestRiceParam(t *testing.T) {
	tests := []struct {
		m    uint64
		want uint8
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{10, 4},
		{1 << 19, 19},
		{784931, 20},
		{1<<20 + 1, 21},
		{1 << 63, 63},
		{1<<63 + 1, 64},
		{math.MaxUint64, 64},
	}

	for _, test := range tests {
		if got := RiceParam(test.m); got != test.want {
			t.Errorf("M=%d: got %d, want %d", test.m, got, test.want)
		}
	}
}

// riceRoundTrip encodes all of the provided deltas into a single bitstream
// with the given parameter and ensures decoding it yields the same deltas.
func riceRoundTrip(t *testing.T, deltas []uint64, p uint8) {
	t.Helper()

	var w bitWriter
	for _, delta := range deltas {
		if err := writeRice(&w, delta, p); err != nil {
			t.Fatalf("P=%d: unexpected err encoding %d: %v", p, delta, err)
		}
	}

	r := newBitReader(w.finish())
	for i, want := range deltas {
		got, err := readRice(&r, p)
		if err != nil {
			t.Fatalf("P=%d: unexpected err decoding #%d: %v", p, i, err)
		}
		if got != want {
			t.Fatalf("P=%d: mismatched value #%d -- got %d, want %d", p, i,
				got, want)
		}
	}
	if r.remaining() >= 8 {
		t.Fatalf("P=%d: %d bits left after decoding", p, r.remaining())
	}
}

// TestRiceRoundTrip ensures every delta in [0, 2^20) for every P in [1, 20)
// survives encoding and decoding.  All small deltas are checked exhaustively
// while larger ones are sampled along with the boundaries of each bin.
func TestRiceRoundTrip(t *testing.T) {
	const maxDelta = 1 << 20
	const unaryBudget = 1 << 25
	exhaustive := uint64(1 << 12)
	numSamples := 20000
	if testing.Short() {
		exhaustive = 1 << 8
		numSamples = 1000
	}

	rng := rand.New(rand.NewSource(0x5eed))
	for p := uint8(1); p < 20; p++ {
		deltas := make([]uint64, 0, exhaustive+uint64(numSamples)+8)
		for delta := uint64(0); delta < exhaustive; delta++ {
			deltas = append(deltas, delta)
		}
		// Limit the number of samples for small parameters since the unary
		// portion of large deltas is long.
		samples := numSamples
		if avgQuotient := uint64(maxDelta>>p) / 2; avgQuotient*uint64(samples) > unaryBudget {
			samples = int(unaryBudget / avgQuotient)
		}
		for i := 0; i < samples; i++ {
			deltas = append(deltas, uint64(rng.Int63n(maxDelta)))
		}
		bin := uint64(1) << p
		deltas = append(deltas, bin-1, bin, bin+1, 2*bin-1, 2*bin,
			maxDelta-bin, maxDelta-2, maxDelta-1)
		riceRoundTrip(t, deltas, p)
	}
}

// TestRiceExtremes ensures the largest parameters and values are handled.
func TestRiceExtremes(t *testing.T) {
	riceRoundTrip(t, []uint64{0, 1, math.MaxUint64, 1 << 63}, 64)
	riceRoundTrip(t, []uint64{math.MaxUint64, 0}, 63)
	riceRoundTrip(t, []uint64{0, 1, MaxQuotient}, 0)
	riceRoundTrip(t, []uint64{MaxQuotient<<10 | 0x3ff}, 10)
}

// TestRiceErrors ensures encoding and decoding detect invalid parameters,
// quotients that are too large, and truncated data.
func TestRiceErrors(t *testing.T) {
	var w bitWriter
	err := writeRice(&w, MaxQuotient+1, 0)
	if !errors.Is(err, ErrValueTooLarge) {
		t.Fatalf("unexpected err -- got %v, want %v", err, ErrValueTooLarge)
	}
	if len(w.finish()) != 0 {
		t.Fatalf("bits written for rejected value: %x", w.finish())
	}
	err = writeRice(&w, 1, maxBitWidth+1)
	if !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("unexpected err -- got %v, want %v", err, ErrInvalidWidth)
	}

	tests := []struct {
		name    string // test description
		bytes   string // bitstream to decode
		p       uint8  // rice parameter
		wantErr error  // expected error
	}{{
		name:    "empty stream",
		bytes:   "",
		p:       4,
		wantErr: ErrUnexpectedEOF,
	}, {
		name:    "missing unary terminator",
		bytes:   "ffff",
		p:       4,
		wantErr: ErrUnexpectedEOF,
	}, {
		name:    "truncated remainder",
		bytes:   "40",
		p:       8,
		wantErr: ErrUnexpectedEOF,
	}, {
		name:    "quotient overflows uint64",
		bytes:   "c000000000000000" + "00",
		p:       63,
		wantErr: ErrQuotientTooLarge,
	}, {
		name:    "quotient with max parameter",
		bytes:   "800000000000000000",
		p:       64,
		wantErr: ErrQuotientTooLarge,
	}, {
		name:    "invalid parameter",
		bytes:   "00",
		p:       65,
		wantErr: ErrInvalidWidth,
	}}

	for _, test := range tests {
		data, err := hex.DecodeString(test.bytes)
		if err != nil {
			t.Errorf("%q: unexpected err parsing bytes hex: %v", test.name, err)
			continue
		}
		r := newBitReader(data)
		_, err = readRice(&r, test.p)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("%q: unexpected err -- got %v, want %v", test.name, err,
				test.wantErr)
		}
	}

	// A unary run longer than the max allowed quotient must be rejected before
	// the end of the data is reached.
	run := make([]byte, MaxQuotient/8+2)
	for i := range run {
		run[i] = 0xff
	}
	r := newBitReader(run)
	if _, err := readRice(&r, 0); !errors.Is(err, ErrQuotientTooLarge) {
		t.Fatalf("unexpected err -- got %v, want %v", err, ErrQuotientTooLarge)
	}
}

// TestRiceDataDriven runs the golden codec vectors in testdata/rice.
//
// encode p=<P>: encodes the values listed one per line and outputs the hex of
// the bitstream.
//
// decode p=<P>: decodes the hex bitstream until only padding remains and
// outputs the values one per line.
func TestRiceDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/rice", func(t *testing.T, d *datadriven.TestData) string {
		var p int
		d.ScanArgs(t, "p", &p)

		switch d.Cmd {
		case "encode":
			var w bitWriter
			for _, line := range strings.Fields(d.Input) {
				v, err := strconv.ParseUint(line, 10, 64)
				if err != nil {
					d.Fatalf(t, "bad value %q: %v", line, err)
				}
				if err := writeRice(&w, v, uint8(p)); err != nil {
					return fmt.Sprintf("error: %v\n", err)
				}
			}
			return hex.EncodeToString(w.finish()) + "\n"

		case "decode":
			data, err := hex.DecodeString(strings.TrimSpace(d.Input))
			if err != nil {
				d.Fatalf(t, "bad hex: %v", err)
			}
			var buf strings.Builder
			r := newBitReader(data)
			for !r.exhausted() {
				v, err := readRice(&r, uint8(p))
				if err != nil {
					fmt.Fprintf(&buf, "error: %v\n", err)
					break
				}
				fmt.Fprintf(&buf, "%d\n", v)
			}
			return buf.String()

		default:
			d.Fatalf(t, "unknown command %q", d.Cmd)
			return ""
		}
	})
}
