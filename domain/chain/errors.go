package chain

import "github.com/pkg/errors"

var (
	// ErrEmptyChain is returned by AddBlock when the chain has no last
	// block. Chains built through this package always hold a genesis
	// block, so seeing it means a Chain was constructed by hand.
	ErrEmptyChain = errors.New("chain is empty, cannot add block")

	// ErrInvalidDifficulty is returned for difficulties above
	// pow.MaxDifficulty.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidPrevHash is returned when a previous hash decodes to
	// something other than 32 bytes. Malformed hex fails with a
	// *hexcodec.InvalidHexError instead.
	ErrInvalidPrevHash = errors.New("invalid previous block hash")

	// ErrInvalidGenesis is returned by Validate when the first block isn't a
	// genesis block.
	ErrInvalidGenesis = errors.New("invalid genesis block")

	// ErrBrokenLink is returned by Validate when a block's previous hash
	// isn't the hash of the block before it.
	ErrBrokenLink = errors.New("block doesn't link to its predecessor")

	// ErrHashMismatch is returned by Validate when a block's stored hash
	// differs from the hash of its contents.
	ErrHashMismatch = errors.New("block hash doesn't match its contents")

	// ErrInsufficientWork is returned by Validate when a block's hash
	// doesn't satisfy its header's difficulty.
	ErrInsufficientWork = errors.New("block hash doesn't satisfy its difficulty")
)
