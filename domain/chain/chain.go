package chain

import (
	"context"

	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
	"github.com/pkg/errors"
)

// GenesisTransaction is the only transaction of every genesis block.
const GenesisTransaction = "genesis"

// Chain is an append-only sequence of mined blocks. It always starts with a
// genesis block and every later block commits to the hash of the block
// before it.
//
// Chain isn't safe for concurrent use.
type Chain struct {
	blocks     []*model.Block
	difficulty uint32
	options    Options
}

// New creates a chain and mines its genesis block at difficulty.
func New(difficulty uint32) (*Chain, error) {
	return NewWithOptions(context.Background(), difficulty, nil)
}

// NewWithOptions is New with cancellation and options. options may be nil.
func NewWithOptions(ctx context.Context, difficulty uint32, options *Options) (*Chain, error) {
	chain := &Chain{difficulty: difficulty}
	if options != nil {
		chain.options = *options
	}

	genesis, err := NewBlockWithContext(ctx, model.ZeroHash.String(), []string{GenesisTransaction},
		difficulty, &chain.options)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't mine the genesis block")
	}
	chain.blocks = append(chain.blocks, genesis)
	chain.options.observer().GenesisCreated(genesis)
	return chain, nil
}

// FromBlocks rebuilds a chain from previously mined blocks, e.g. ones read
// from storage. The blocks are validated and owned by the returned chain.
func FromBlocks(difficulty uint32, blocks []*model.Block, options *Options) (*Chain, error) {
	if difficulty > pow.MaxDifficulty {
		return nil, errors.Wrapf(ErrInvalidDifficulty, "difficulty %d is above the maximum of %d",
			difficulty, pow.MaxDifficulty)
	}
	err := ValidateBlocks(blocks)
	if err != nil {
		return nil, err
	}
	chain := &Chain{
		blocks:     blocks,
		difficulty: difficulty,
	}
	if options != nil {
		chain.options = *options
	}
	return chain, nil
}

// SetOptions replaces the options used for blocks mined from now on.
func (c *Chain) SetOptions(options Options) {
	c.options = options
}

// Difficulty returns the difficulty new blocks are mined at.
func (c *Chain) Difficulty() uint32 {
	return c.difficulty
}

// Len returns the number of blocks, genesis included.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// LastBlock returns the most recently appended block, or nil if the chain
// is empty. The returned block must not be modified.
func (c *Chain) LastBlock() *model.Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns the blocks from genesis to tip. The slice is a copy but the
// blocks are shared and must not be modified.
func (c *Chain) Blocks() []*model.Block {
	blocks := make([]*model.Block, len(c.blocks))
	copy(blocks, c.blocks)
	return blocks
}

// AddBlock mines a block holding transactions on top of the last block and
// appends it. It blocks until mining finishes.
func (c *Chain) AddBlock(transactions []string) error {
	return c.AddBlockWithContext(context.Background(), transactions)
}

// AddBlockWithContext is AddBlock with cancellation and the chain's mining
// budget. The chain is left unchanged on any error.
func (c *Chain) AddBlockWithContext(ctx context.Context, transactions []string) error {
	lastBlock := c.LastBlock()
	if lastBlock == nil {
		return errors.WithStack(ErrEmptyChain)
	}

	block, err := NewBlockWithContext(ctx, lastBlock.Hash.String(), transactions, c.difficulty, &c.options)
	if err != nil {
		return err
	}
	c.blocks = append(c.blocks, block)
	return nil
}

// Clone returns a deep copy of the chain. Mining on the copy doesn't affect
// the original.
func (c *Chain) Clone() *Chain {
	blocks := make([]*model.Block, len(c.blocks))
	for i, block := range c.blocks {
		blocks[i] = block.Clone()
	}
	return &Chain{
		blocks:     blocks,
		difficulty: c.difficulty,
		options:    c.options,
	}
}

// Validate checks the chain's invariants. See ValidateBlocks.
func (c *Chain) Validate() error {
	return ValidateBlocks(c.blocks)
}
