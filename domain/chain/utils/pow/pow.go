package pow

import (
	"github.com/kaspanet/minichain/domain/chain/model"
)

// MaxDifficulty is the largest meaningful difficulty: every bit of the hash
// must be zero.
const MaxDifficulty = model.DomainHashSize * 8

// CheckProofOfWork reports whether hash has at least difficulty leading zero
// bits. The first difficulty/8 bytes must be zero and, when difficulty%8 is
// non-zero, the next byte must be at most 0xFF>>(difficulty%8).
func CheckProofOfWork(hash *model.DomainHash, difficulty uint32) bool {
	if difficulty > MaxDifficulty {
		return false
	}
	fullZeroBytes := difficulty / 8
	remainingBits := difficulty % 8

	for i := uint32(0); i < fullZeroBytes; i++ {
		if hash[i] != 0 {
			return false
		}
	}
	if remainingBits > 0 {
		lastByteMask := byte(0xFF >> remainingBits)
		return hash[fullZeroBytes] <= lastByteMask
	}
	return true
}

// LeadingZeroBits returns the number of leading zero bits of hash. A hash
// passes CheckProofOfWork for every difficulty up to this value.
func LeadingZeroBits(hash *model.DomainHash) uint32 {
	var count uint32
	for _, b := range hash {
		if b == 0 {
			count += 8
			continue
		}
		for mask := byte(0x80); mask != 0 && b&mask == 0; mask >>= 1 {
			count++
		}
		break
	}
	return count
}
