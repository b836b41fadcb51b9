// Package binaryserializer reads and writes the little-endian primitives
// the chain snapshot is made of.
package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrTooLarge is returned when a length prefix is above the caller's limit.
var ErrTooLarge = errors.New("length prefix above limit")

// maxItems is the number of buffers to keep in the free
// list to use for binary serialization and deserialization.
const maxItems = 1024

// Borrow returns a byte slice from the free list with a length of 8. A new
// buffer is allocated if there are not any available on the free list.
func Borrow() []byte {
	var buf []byte
	select {
	case buf = <-binaryFreeList:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return puts the provided byte slice back on the free list. The buffer MUST
// have been obtained via the Borrow function and therefore have a cap of 8.
func Return(buf []byte) {
	select {
	case binaryFreeList <- buf:
	default:
		// Let it go to the garbage collector.
	}
}

// Uint32 reads four little-endian bytes from r.
func Uint32(r io.Reader) (uint32, error) {
	buf := Borrow()[:4]
	defer Return(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// Uint64 reads eight little-endian bytes from r.
func Uint64(r io.Reader) (uint64, error) {
	buf := Borrow()
	defer Return(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// PutUint32 writes val to w as four little-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	buf := Borrow()[:4]
	defer Return(buf)
	binary.LittleEndian.PutUint32(buf, val)
	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// PutUint64 writes val to w as eight little-endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	buf := Borrow()
	defer Return(buf)
	binary.LittleEndian.PutUint64(buf, val)
	_, err := w.Write(buf)
	return errors.WithStack(err)
}

// FixedBytes fills dst from r. A short read is an error.
func FixedBytes(r io.Reader, dst []byte) error {
	_, err := io.ReadFull(r, dst)
	return errors.WithStack(err)
}

// PutFixedBytes writes b to w without a length prefix.
func PutFixedBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return errors.WithStack(err)
}

// Bytes reads a uint64 length prefix followed by that many bytes. Lengths
// above maxLength fail with ErrTooLarge before anything is allocated.
func Bytes(r io.Reader, maxLength uint64) ([]byte, error) {
	length, err := Uint64(r)
	if err != nil {
		return nil, err
	}
	if length > maxLength {
		return nil, errors.Wrapf(ErrTooLarge, "length %d, limit %d", length, maxLength)
	}
	b := make([]byte, length)
	err = FixedBytes(r, b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// PutBytes writes b to w preceded by its length as a uint64.
func PutBytes(w io.Writer, b []byte) error {
	err := PutUint64(w, uint64(len(b)))
	if err != nil {
		return err
	}
	return PutFixedBytes(w, b)
}

// String is Bytes for strings.
func String(r io.Reader, maxLength uint64) (string, error) {
	b, err := Bytes(r, maxLength)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PutString is PutBytes for strings.
func PutString(w io.Writer, s string) error {
	err := PutUint64(w, uint64(len(s)))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return errors.WithStack(err)
}

// binaryFreeList provides a free list of buffers to use for serializing and
// deserializing primitive integer values to and from io.Readers and io.Writers.
//
// It defines a concurrent safe free list of byte slices (up to the
// maximum number defined by the maxItems constant) that have a
// cap of 8 (thus it supports up to a uint64).
var binaryFreeList = make(chan []byte, maxItems)
