package chain

import (
	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
)

// Observer is notified about blocks as they are mined. Chain operations
// never print anything themselves.
type Observer interface {
	// BlockMined is called after a block's nonce search succeeded, before
	// the block is appended.
	BlockMined(block *model.Block, result *pow.Result)

	// GenesisCreated is called once a new chain's genesis block was mined.
	GenesisCreated(block *model.Block)
}

type nopObserver struct{}

func (nopObserver) BlockMined(*model.Block, *pow.Result) {}
func (nopObserver) GenesisCreated(*model.Block)          {}

// Options tune block creation.
type Options struct {
	// MaxAttempts bounds each block's nonce search. Zero means unbounded.
	MaxAttempts uint64

	// Observer receives mining events. Nil means no one is notified.
	Observer Observer
}

func (options *Options) observer() Observer {
	if options == nil || options.Observer == nil {
		return nopObserver{}
	}
	return options.Observer
}

func (options *Options) maxAttempts() uint64 {
	if options == nil {
		return 0
	}
	return options.MaxAttempts
}
