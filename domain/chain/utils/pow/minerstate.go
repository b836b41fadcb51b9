package pow

import (
	"crypto/sha256"
	"strconv"

	"github.com/kaspanet/minichain/domain/chain/model"
)

// MinerState searches nonces for one header. The parts of the pre-image
// that don't depend on the nonce are computed once.
type MinerState struct {
	header       *model.BlockHeader
	transactions []string

	prefix []byte // decimal(timestamp) || hex(prevHash)
	suffix []byte // concat(transactions)
	buffer []byte
}

// NewMinerState prepares a search over header. The header's Nonce is
// written to by Mine.
func NewMinerState(header *model.BlockHeader, transactions []string) *MinerState {
	prefix := strconv.AppendUint(nil, header.Timestamp, 10)
	prefix = append(prefix, header.PrevHash.String()...)

	suffixLength := 0
	for _, transaction := range transactions {
		suffixLength += len(transaction)
	}
	suffix := make([]byte, 0, suffixLength)
	for _, transaction := range transactions {
		suffix = append(suffix, transaction...)
	}

	const maxNonceDigits = 20
	return &MinerState{
		header:       header,
		transactions: transactions,
		prefix:       prefix,
		suffix:       suffix,
		buffer:       make([]byte, 0, len(prefix)+maxNonceDigits+len(suffix)),
	}
}

// Header returns the header being mined.
func (state *MinerState) Header() *model.BlockHeader {
	return state.header
}

// Hash returns the digest for the header's current nonce.
func (state *MinerState) Hash() *model.DomainHash {
	buffer := append(state.buffer[:0], state.prefix...)
	buffer = strconv.AppendUint(buffer, state.header.Nonce, 10)
	buffer = append(buffer, state.suffix...)
	state.buffer = buffer

	hash := model.DomainHash(sha256.Sum256(buffer))
	return &hash
}

// CheckProofOfWork reports whether the current nonce satisfies the header's
// difficulty.
func (state *MinerState) CheckProofOfWork() bool {
	return CheckProofOfWork(state.Hash(), state.header.Difficulty)
}
