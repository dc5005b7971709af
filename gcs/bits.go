// Copyright (c) 2016-2017 The btcsuite developers
// Copyright (c) 2016-2017 The Lightning Network Developers
// Copyright (c) 2019-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gcs

import (
	"fmt"
	"math/bits"
)

// maxBitWidth is the maximum number of bits that can be read or written as a
// single group.
const maxBitWidth = 64

// bitWriter accumulates a bitstream most significant bit first.  The final
// byte is zero padded when the number of written bits is not a multiple of 8.
type bitWriter struct {
	bytes []byte
	next  byte // mask of the next bit to write in the final byte or 0 when full
}

// grow appends a new zeroed byte to the stream when the final byte is full.
func (w *bitWriter) grow() {
	if w.next == 0 {
		w.bytes = append(w.bytes, 0)
		w.next = 1 << 7
	}
}

// writeOne appends a 1 bit to the bitstream.
func (w *bitWriter) writeOne() {
	w.grow()
	w.bytes[len(w.bytes)-1] |= w.next
	w.next >>= 1
}

// writeZero appends a 0 bit to the bitstream.
func (w *bitWriter) writeZero() {
	w.grow()
	w.next >>= 1
}

// writeBit appends the given bit to the bitstream.
func (w *bitWriter) writeBit(bit bool) {
	if bit {
		w.writeOne()
		return
	}
	w.writeZero()
}

// writeNBits appends the nBits least significant bits of data to the
// bitstream in big-endian order.  Any higher bits of data are ignored.
func (w *bitWriter) writeNBits(data uint64, nBits uint) error {
	if nBits > maxBitWidth {
		str := fmt.Sprintf("unable to write %d bits as a single group (max "+
			"%d)", nBits, maxBitWidth)
		return makeError(ErrInvalidWidth, str)
	}

	for nBits > 0 {
		w.grow()

		// Fill as much of the final byte as possible with the highest of the
		// remaining bits.
		free := uint(bits.Len8(w.next))
		take := free
		if nBits < take {
			take = nBits
		}
		chunk := byte((data >> (nBits - take)) & (1<<take - 1))
		w.bytes[len(w.bytes)-1] |= chunk << (free - take)
		w.next >>= take
		nBits -= take
	}
	return nil
}

// finish returns the accumulated bitstream.  The final partial byte, if any,
// is already zero padded.
func (w *bitWriter) finish() []byte {
	return w.bytes
}

// bitReader reads a bitstream produced by bitWriter.
type bitReader struct {
	bytes []byte
	pos   uint64 // offset of the next bit to read
	end   uint64 // total number of bits in the stream
}

// newBitReader returns a reader positioned at the start of the given bytes.
func newBitReader(data []byte) bitReader {
	return bitReader{bytes: data, end: uint64(len(data)) * 8}
}

// remaining returns the number of unread bits.
func (r *bitReader) remaining() uint64 {
	return r.end - r.pos
}

// exhausted returns whether there are no more values to decode.  That is the
// case when no bits remain or only the zero padding of the final byte does.
//
// NOTE: This must only be called at a value boundary.  Every value after the
// first one in a set has a nonzero delta, so its encoding always contains a 1
// bit and can't be confused with padding.
func (r *bitReader) exhausted() bool {
	remaining := r.remaining()
	switch {
	case remaining == 0:
		return true
	case remaining >= 8:
		return false
	}
	return r.bytes[len(r.bytes)-1]<<(r.pos&7) == 0
}

// readBit returns the next bit of the stream.
func (r *bitReader) readBit() (bool, error) {
	if r.pos >= r.end {
		return false, makeError(ErrUnexpectedEOF, "unable to read bit at "+
			"end of bitstream")
	}
	bit := r.bytes[r.pos>>3]&(0x80>>(r.pos&7)) != 0
	r.pos++
	return bit, nil
}

// readUnary returns the number of consecutive 1 bits before the next 0 bit
// and consumes the terminating 0 bit.  An error is returned when the count
// exceeds the provided limit.
func (r *bitReader) readUnary(limit uint64) (uint64, error) {
	var n uint64
	for {
		if r.pos >= r.end {
			return 0, makeError(ErrUnexpectedEOF, "unexpected end of "+
				"bitstream reading unary quotient")
		}

		// Count the leading ones of the unread portion of the current byte.
		// The bits shifted in from the right are zeros, so the count never
		// exceeds the number of unread bits.
		shift := r.pos & 7
		avail := 8 - shift
		ones := uint64(bits.LeadingZeros8(^(r.bytes[r.pos>>3] << shift)))
		if ones < avail {
			n += ones
			r.pos += ones + 1
			if n > limit {
				break
			}
			return n, nil
		}
		n += avail
		r.pos += avail
		if n > limit {
			break
		}
	}

	str := fmt.Sprintf("unary run exceeds the maximum allowed quotient %d",
		limit)
	return 0, makeError(ErrQuotientTooLarge, str)
}

// readNBits reads the next nBits bits of the stream and returns them as a
// big-endian integer.  The reader does not advance on error.
func (r *bitReader) readNBits(nBits uint) (uint64, error) {
	if nBits > maxBitWidth {
		str := fmt.Sprintf("unable to read %d bits as a single group (max "+
			"%d)", nBits, maxBitWidth)
		return 0, makeError(ErrInvalidWidth, str)
	}
	if remaining := r.remaining(); uint64(nBits) > remaining {
		str := fmt.Sprintf("unable to read %d bits with only %d remaining",
			nBits, remaining)
		return 0, makeError(ErrUnexpectedEOF, str)
	}

	var value uint64
	for nBits > 0 {
		shift := uint(r.pos & 7)
		avail := 8 - shift
		take := avail
		if nBits < take {
			take = nBits
		}
		b := r.bytes[r.pos>>3] << shift >> (8 - take)
		value = value<<take | uint64(b)
		r.pos += uint64(take)
		nBits -= take
	}
	return value, nil
}
