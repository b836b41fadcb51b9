package chain

import (
	"context"

	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
	"github.com/kaspanet/minichain/util/hexcodec"
	"github.com/pkg/errors"
)

// NewBlock builds a block on top of prevHashHex and mines it. It blocks
// until a qualifying nonce is found, however long that takes.
func NewBlock(prevHashHex string, transactions []string, difficulty uint32) (*model.Block, error) {
	return NewBlockWithContext(context.Background(), prevHashHex, transactions, difficulty, nil)
}

// NewBlockWithContext is NewBlock with cancellation and the mining budget
// and observer of options. options may be nil.
func NewBlockWithContext(ctx context.Context, prevHashHex string, transactions []string,
	difficulty uint32, options *Options) (*model.Block, error) {

	if difficulty > pow.MaxDifficulty {
		return nil, errors.Wrapf(ErrInvalidDifficulty, "difficulty %d is above the maximum of %d",
			difficulty, pow.MaxDifficulty)
	}
	prevHashBytes, err := hexcodec.Decode(prevHashHex)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode previous block hash")
	}
	prevHash, err := model.NewDomainHashFromByteSlice(prevHashBytes)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrevHash, "%s", err)
	}

	transactionsCopy := make([]string, len(transactions))
	copy(transactionsCopy, transactions)

	header := model.NewBlockHeader(prevHash, difficulty)
	result, err := pow.Mine(ctx, pow.NewMinerState(header, transactionsCopy), options.maxAttempts())
	if err != nil {
		return nil, err
	}

	block := &model.Block{
		Header:       header,
		Transactions: transactionsCopy,
		Hash:         result.Hash,
	}
	options.observer().BlockMined(block, result)
	return block, nil
}
