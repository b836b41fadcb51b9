package model

import (
	"time"

	"github.com/pkg/errors"
)

// BlockHeader holds the metadata a block's hash commits to. Nonce is the
// only field that changes after construction, and only while mining.
type BlockHeader struct {
	// Timestamp is the creation time in seconds since the unix epoch.
	Timestamp  uint64
	PrevHash   DomainHash
	Nonce      uint64
	Difficulty uint32
}

// timeNow is replaced in tests.
var timeNow = time.Now

// NewBlockHeader returns a header stamped with the current wall clock time
// and a zero nonce. A clock that reports a time before the unix epoch is an
// environment fault this program can't recover from, so it panics.
func NewBlockHeader(prevHash *DomainHash, difficulty uint32) *BlockHeader {
	now := timeNow().Unix()
	if now < 0 {
		panic(errors.Errorf("system clock reports %d, a time before the unix epoch", now))
	}
	return &BlockHeader{
		Timestamp:  uint64(now),
		PrevHash:   *prevHash,
		Nonce:      0,
		Difficulty: difficulty,
	}
}

// Clone returns a clone of BlockHeader
func (header *BlockHeader) Clone() *BlockHeader {
	if header == nil {
		return nil
	}
	clone := *header
	return &clone
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = BlockHeader{0, DomainHash{}, 0, 0}

// Equal returns whether header equals to other
func (header *BlockHeader) Equal(other *BlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}
	return header.Timestamp == other.Timestamp &&
		header.PrevHash == other.PrevHash &&
		header.Nonce == other.Nonce &&
		header.Difficulty == other.Difficulty
}
