// Copyright (c) 2026 ton-sub013 contributors.
//
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package cellstore

import (
	"encoding/binary"

	"github.com/ton-blockchain/ton-sub013/internal/vmerrors"
)

// SerializeRecord writes the in-cell storage record described in
// spec.md §6.1: refcount varint, descriptor bytes, data bytes, then per
// child a level-mask byte, its hashes, and its big-endian depths. This is
// the record a CellDbWriter is expected to persist under a cell's hash;
// the framed "0xFF -> whole BoC" alternative form is recognized by
// DeserializeRecord but not produced here (bag-of-cells framing of many
// cells at once is the serializer's job, out of scope per spec.md §1).
func SerializeRecord(c *Cell, refCount uint64) []byte {
	var out []byte
	out = appendVarint(out, refCount)

	d1 := byte(c.RefsCount()) | boolByte(c.IsSpecial())<<3 | byte(c.levelMask)<<5
	d2 := byte(c.bitLen/8 + (c.bitLen+7)/8)
	out = append(out, d1, d2)
	out = append(out, dataPadded(c.bits, c.bitLen)...)

	for _, r := range c.refs {
		out = append(out, byte(r.levelMask))
		n := r.levelMask.HashesCount()
		for i := 0; i < n; i++ {
			level := hashIdxToLevel(r.levelMask, i)
			h := r.HashAt(level)
			out = append(out, h[:]...)
		}
		for i := 0; i < n; i++ {
			level := hashIdxToLevel(r.levelMask, i)
			var depthBuf [2]byte
			binary.BigEndian.PutUint16(depthBuf[:], r.DepthAt(level))
			out = append(out, depthBuf[:]...)
		}
	}
	return out
}

// DeserializeRecord parses a stored record back into a refcount and the
// cell's raw data/descriptor bytes plus per-child ExtCell stubs, wiring
// them to reader for lazy resolution (spec.md §4.2).
func DeserializeRecord(buf []byte, reader CellDbReader) (refCount uint64, bitLen int, data []byte, special bool, levelMask LevelMask, children []*ExtCell, err error) {
	if len(buf) == 0 {
		err = vmerrors.ErrNotEnoughData
		return
	}
	if buf[0] == 0xFF {
		// Framed whole-BoC form: parsing a full bag of cells is the
		// out-of-scope serializer's job (spec.md §1); callers that need
		// it should hand the remainder to that collaborator.
		err = vmerrors.ErrNotEnoughData
		return
	}

	rc, n := readVarint(buf)
	if n == 0 {
		err = vmerrors.ErrNotEnoughData
		return
	}
	refCount = rc
	buf = buf[n:]

	if len(buf) < 2 {
		err = vmerrors.ErrNotEnoughData
		return
	}
	d1, d2 := buf[0], buf[1]
	buf = buf[2:]

	refs := int(d1 & 0x7)
	special = d1&0x8 != 0
	levelMask = LevelMask((d1 >> 5) & 0x7)

	dataBytes := (int(d2) + 1) / 2
	if len(buf) < dataBytes {
		err = vmerrors.ErrNotEnoughData
		return
	}
	data = append([]byte(nil), buf[:dataBytes]...)
	buf = buf[dataBytes:]

	bitLen = int(d2/2) * 8
	if d2%2 == 1 {
		bitLen += bitsFromTrailer(data)
	}

	for i := 0; i < refs; i++ {
		if len(buf) < 1 {
			err = vmerrors.ErrNotEnoughData
			return
		}
		childMask := LevelMask(buf[0])
		buf = buf[1:]
		count := childMask.HashesCount()
		if len(buf) < count*hashBytes {
			err = vmerrors.ErrNotEnoughData
			return
		}
		hashes := make([]Hash256, count)
		for j := 0; j < count; j++ {
			copy(hashes[j][:], buf[:hashBytes])
			buf = buf[hashBytes:]
		}
		if len(buf) < count*2 {
			err = vmerrors.ErrNotEnoughData
			return
		}
		depths := make([]uint16, count)
		for j := 0; j < count; j++ {
			depths[j] = binary.BigEndian.Uint16(buf[:2])
			buf = buf[2:]
		}
		children = append(children, NewExtCell(childMask, hashes, depths, reader))
	}
	return
}

// bitsFromTrailer finds the highest set bit in the last byte of an
// odd-half-byte-count buffer, undoing the terminal-1-bit padding rule
// (spec.md §4.1).
func bitsFromTrailer(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	last := data[len(data)-1]
	for i := 0; i < 8; i++ {
		if last&(1<<uint(i)) != 0 {
			return 8 - i - 1
		}
	}
	return 0
}

func appendVarint(out []byte, v uint64) []byte {
	for v >= 0x80 {
		out = append(out, byte(v)|0x80)
		v >>= 7
	}
	return append(out, byte(v))
}

func readVarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, b := range buf {
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, i + 1
		}
		shift += 7
		if i >= 9 {
			return 0, 0
		}
	}
	return 0, 0
}
