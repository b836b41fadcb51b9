package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Uint64 returns a cryptographically random uint64 value.
func Uint64() (uint64, error) {
	return randomUint64(rand.Reader)
}

// randomUint64 returns a random uint64 read from r.
func randomUint64(r io.Reader) (uint64, error) {
	rv := make([]byte, 8)
	_, err := io.ReadFull(r, rv)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(rv), nil
}
