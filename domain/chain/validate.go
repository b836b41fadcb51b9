package chain

import (
	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/domain/chain/utils/blockhashing"
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
	"github.com/pkg/errors"
)

// ValidateBlocks checks that blocks form a chain: a genesis block with a
// zero previous hash and a single "genesis" transaction, every later block
// linking to the hash of its predecessor, and every stored hash matching
// the block's contents and satisfying the block's own difficulty.
func ValidateBlocks(blocks []*model.Block) error {
	if len(blocks) == 0 {
		return errors.WithStack(ErrEmptyChain)
	}

	genesis := blocks[0]
	if genesis == nil || genesis.Header == nil {
		return errors.Wrap(ErrInvalidGenesis, "missing genesis header")
	}
	if !genesis.Header.PrevHash.IsZero() {
		return errors.Wrapf(ErrInvalidGenesis, "previous hash is %s", genesis.Header.PrevHash)
	}
	if len(genesis.Transactions) != 1 || genesis.Transactions[0] != GenesisTransaction {
		return errors.Wrapf(ErrInvalidGenesis, "transactions are %q", genesis.Transactions)
	}

	for i, block := range blocks {
		if block == nil || block.Header == nil || block.Hash == nil {
			return errors.Wrapf(ErrHashMismatch, "block %d is incomplete", i)
		}
		if i > 0 && block.Header.PrevHash != *blocks[i-1].Hash {
			return errors.Wrapf(ErrBrokenLink, "block %d: previous hash is %s, expected %s",
				i, block.Header.PrevHash, blocks[i-1].Hash)
		}
		expectedHash := blockhashing.BlockHash(block.Header, block.Transactions)
		if !expectedHash.Equal(block.Hash) {
			return errors.Wrapf(ErrHashMismatch, "block %d: stored hash is %s, contents hash to %s",
				i, block.Hash, expectedHash)
		}
		if !pow.CheckProofOfWork(block.Hash, block.Header.Difficulty) {
			return errors.Wrapf(ErrInsufficientWork, "block %d: hash %s at difficulty %d",
				i, block.Hash, block.Header.Difficulty)
		}
	}
	return nil
}
