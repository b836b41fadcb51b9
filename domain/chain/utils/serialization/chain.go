// Package serialization encodes a chain as a single binary snapshot:
//
//	difficulty u32 | blockCount u64 | block*
//	block = timestamp u64 | prevHash [32] | nonce u64 | difficulty u32 |
//	        hash [32] | txCount u64 | (len u64 | bytes)*
//
// All integers are little endian.
package serialization

import (
	"bytes"
	"io"

	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/pkg/errors"
)

// ErrMalformed is returned for snapshots that can't be decoded.
var ErrMalformed = errors.New("malformed chain snapshot")

// ErrLimitExceeded is returned by SerializeChain for chains that couldn't be
// decoded again because they are above one of the snapshot limits.
var ErrLimitExceeded = errors.New("chain is above the snapshot limits")

const (
	maxBlocks          = 1 << 24
	maxTransactions    = 1 << 20
	maxTransactionSize = 1 << 20

	// preallocation caps keep a lying count from allocating up front.
	maxPreallocatedBlocks       = 1 << 10
	maxPreallocatedTransactions = 1 << 10
)

// SerializeChain writes difficulty and blocks to w. Every block must be
// mined. Chains that DeserializeChain would reject for their size fail with
// ErrLimitExceeded before anything is written.
func SerializeChain(w io.Writer, difficulty uint32, blocks []*model.Block) error {
	if uint64(len(blocks)) > maxBlocks {
		return errors.Wrapf(ErrLimitExceeded, "block count %d is above the maximum of %d",
			len(blocks), maxBlocks)
	}
	for i, block := range blocks {
		if block == nil {
			continue
		}
		err := checkTransactionLimits(block.Transactions)
		if err != nil {
			return errors.Wrapf(err, "block %d", i)
		}
	}

	err := WriteElements(w, difficulty, uint64(len(blocks)))
	if err != nil {
		return err
	}
	for i, block := range blocks {
		err := serializeBlock(w, block)
		if err != nil {
			return errors.Wrapf(err, "couldn't serialize block %d", i)
		}
	}
	return nil
}

// SerializeChainToBytes is SerializeChain into a new byte slice.
func SerializeChainToBytes(difficulty uint32, blocks []*model.Block) ([]byte, error) {
	w := &bytes.Buffer{}
	err := SerializeChain(w, difficulty, blocks)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func serializeBlock(w io.Writer, block *model.Block) error {
	if block == nil || block.Header == nil || block.Hash == nil {
		return errors.New("block is incomplete")
	}
	header := block.Header
	err := WriteElements(w,
		header.Timestamp,
		header.PrevHash,
		header.Nonce,
		header.Difficulty,
		block.Hash,
		uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, transaction := range block.Transactions {
		err := WriteElement(w, transaction)
		if err != nil {
			return err
		}
	}
	return nil
}

func checkTransactionLimits(transactions []string) error {
	if uint64(len(transactions)) > maxTransactions {
		return errors.Wrapf(ErrLimitExceeded, "transaction count %d is above the maximum of %d",
			len(transactions), maxTransactions)
	}
	for i, transaction := range transactions {
		if uint64(len(transaction)) > maxTransactionSize {
			return errors.Wrapf(ErrLimitExceeded, "transaction %d: length %d is above the maximum of %d",
				i, len(transaction), maxTransactionSize)
		}
	}
	return nil
}

// DeserializeChain reads a snapshot written by SerializeChain. r must
// contain exactly one snapshot. Any failure wraps ErrMalformed.
func DeserializeChain(r io.Reader) (difficulty uint32, blocks []*model.Block, err error) {
	difficulty, blocks, err = deserializeChain(r)
	if err != nil {
		return 0, nil, errors.Wrap(ErrMalformed, err.Error())
	}

	var trailing [1]byte
	n, _ := r.Read(trailing[:])
	if n != 0 {
		return 0, nil, errors.Wrap(ErrMalformed, "trailing bytes after the last block")
	}
	return difficulty, blocks, nil
}

// DeserializeChainFromBytes is DeserializeChain over serializedChain.
func DeserializeChainFromBytes(serializedChain []byte) (difficulty uint32, blocks []*model.Block, err error) {
	return DeserializeChain(bytes.NewReader(serializedChain))
}

func deserializeChain(r io.Reader) (uint32, []*model.Block, error) {
	var difficulty uint32
	var blockCount uint64
	err := ReadElements(r, &difficulty, &blockCount)
	if err != nil {
		return 0, nil, err
	}
	if blockCount > maxBlocks {
		return 0, nil, errors.Errorf("block count %d is above the maximum of %d", blockCount, maxBlocks)
	}

	blocks := make([]*model.Block, 0, minUint64(blockCount, maxPreallocatedBlocks))
	for i := uint64(0); i < blockCount; i++ {
		block, err := deserializeBlock(r)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "block %d", i)
		}
		blocks = append(blocks, block)
	}
	return difficulty, blocks, nil
}

func deserializeBlock(r io.Reader) (*model.Block, error) {
	header := &model.BlockHeader{}
	hash := &model.DomainHash{}
	var transactionCount uint64
	err := ReadElements(r,
		&header.Timestamp,
		&header.PrevHash,
		&header.Nonce,
		&header.Difficulty,
		hash,
		&transactionCount)
	if err != nil {
		return nil, err
	}
	if transactionCount > maxTransactions {
		return nil, errors.Errorf("transaction count %d is above the maximum of %d",
			transactionCount, maxTransactions)
	}

	transactions := make([]string, 0, minUint64(transactionCount, maxPreallocatedTransactions))
	for i := uint64(0); i < transactionCount; i++ {
		var transaction string
		err := ReadElement(r, &transaction)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}
		transactions = append(transactions, transaction)
	}

	return &model.Block{
		Header:       header,
		Transactions: transactions,
		Hash:         hash,
	}, nil
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
