package model

import (
	"github.com/kaspanet/minichain/util/hexcodec"
	"github.com/pkg/errors"
)

// DomainHashSize of array used to store hashes.
const DomainHashSize = 32

// DomainHash is a SHA-256 digest.
type DomainHash [DomainHashSize]byte

// ZeroHash is the all-zero hash used as the genesis block's previous hash.
var ZeroHash = DomainHash{}

// NewDomainHashFromByteSlice copies hashBytes into a new DomainHash.
func NewDomainHashFromByteSlice(hashBytes []byte) (*DomainHash, error) {
	if len(hashBytes) != DomainHashSize {
		return nil, errors.Errorf("invalid hash size. Want: %d, got: %d",
			DomainHashSize, len(hashBytes))
	}
	var domainHash DomainHash
	copy(domainHash[:], hashBytes)
	return &domainHash, nil
}

// NewDomainHashFromString decodes a hex encoded hash. Malformed hex fails
// with a *hexcodec.InvalidHexError.
func NewDomainHashFromString(hashString string) (*DomainHash, error) {
	hashBytes, err := hexcodec.Decode(hashString)
	if err != nil {
		return nil, err
	}
	return NewDomainHashFromByteSlice(hashBytes)
}

// String returns the hash as lowercase hex.
func (hash DomainHash) String() string {
	return hexcodec.Encode(hash[:])
}

// ByteSlice returns a copy of the hash bytes.
func (hash *DomainHash) ByteSlice() []byte {
	clone := *hash
	return clone[:]
}

// Equal returns whether hash equals to other
func (hash *DomainHash) Equal(other *DomainHash) bool {
	if hash == nil || other == nil {
		return hash == other
	}
	return *hash == *other
}

// IsZero returns whether every byte of the hash is zero.
func (hash *DomainHash) IsZero() bool {
	return *hash == ZeroHash
}

// Clone returns a copy of the hash.
func (hash *DomainHash) Clone() *DomainHash {
	if hash == nil {
		return nil
	}
	clone := *hash
	return &clone
}
