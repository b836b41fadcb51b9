package chain

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
	"github.com/kaspanet/minichain/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CHAN")

// LogObserver reports mining events to the CHAN subsystem logger.
type LogObserver struct{}

// BlockMined logs the mined hash, and a full dump of the block at trace
// level.
func (LogObserver) BlockMined(block *model.Block, result *pow.Result) {
	log.Infof("Block mined: %s", block.Hash)
	log.Debugf("Found nonce %d after %d attempts in %s", result.Nonce, result.Attempts, result.Duration)
	log.Tracef("Mined block: %s", logger.NewLogClosure(func() string {
		return spew.Sdump(block)
	}))
}

// GenesisCreated logs the genesis block.
func (LogObserver) GenesisCreated(block *model.Block) {
	log.Infof("Genesis block initialized.")
	log.Infof("Hash: %s", block.Hash)
	log.Infof("Transactions: %q", block.Transactions)
	log.Infof("Nonce: %d", block.Header.Nonce)
}
