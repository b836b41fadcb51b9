package config

import (
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
	"github.com/pkg/errors"
)

const (
	defaultDifficulty      = 4
	defaultMinTransactions = 1
	defaultMaxTransactions = 100

	// maxTransactionsPerBlock keeps generated blocks well under the
	// snapshot codec's per-block limit.
	maxTransactionsPerBlock = 10000
)

// MiningFlags holds the options that control how blocks are mined.
type MiningFlags struct {
	Difficulty      uint32 `long:"difficulty" description:"Number of leading zero bits required in block hashes. Only used when a new chain is created"`
	MaxAttempts     uint64 `long:"maxattempts" description:"Give up mining a block after this many hashes (0 means never give up)"`
	NumBlocks       uint64 `short:"n" long:"numblocks" description:"Mine this many blocks, save and exit instead of starting the interactive menu"`
	MinTransactions int    `long:"mintxs" description:"Minimum number of random transactions per generated block"`
	MaxTransactions int    `long:"maxtxs" description:"Maximum number of random transactions per generated block"`
}

// ResolveMining validates the mining options.
func (miningFlags *MiningFlags) ResolveMining() error {
	if miningFlags.Difficulty > pow.MaxDifficulty {
		return errors.Errorf("difficulty %d is above the maximum of %d",
			miningFlags.Difficulty, pow.MaxDifficulty)
	}
	if miningFlags.MinTransactions < 1 {
		return errors.Errorf("mintxs must be at least 1, got %d", miningFlags.MinTransactions)
	}
	if miningFlags.MaxTransactions < miningFlags.MinTransactions {
		return errors.Errorf("maxtxs (%d) can't be lower than mintxs (%d)",
			miningFlags.MaxTransactions, miningFlags.MinTransactions)
	}
	if miningFlags.MaxTransactions > maxTransactionsPerBlock {
		return errors.Errorf("maxtxs %d is above the maximum of %d",
			miningFlags.MaxTransactions, maxTransactionsPerBlock)
	}
	return nil
}

// BatchMode returns whether a fixed number of blocks should be mined
// instead of running the interactive menu.
func (miningFlags *MiningFlags) BatchMode() bool {
	return miningFlags.NumBlocks > 0
}
