package chain

import (
	"context"
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/domain/chain/utils/pow"
	"github.com/pkg/errors"
)

func newTestChain(t *testing.T, difficulty uint32, numberOfBlocks int) *Chain {
	chain, err := New(difficulty)
	if err != nil {
		t.Fatalf("New: unexpected error: %s", err)
	}
	for i := 0; i < numberOfBlocks; i++ {
		err := chain.AddBlock([]string{fmt.Sprintf("transaction%d", i+1)})
		if err != nil {
			t.Fatalf("AddBlock %d: unexpected error: %s", i, err)
		}
	}
	return chain
}

func TestNewCreatesGenesisBlock(t *testing.T) {
	chain := newTestChain(t, 2, 0)
	if chain.Len() != 1 {
		t.Fatalf("expected a single block, got %d", chain.Len())
	}
	genesis := chain.Blocks()[0]
	if len(genesis.Transactions) != 1 || genesis.Transactions[0] != GenesisTransaction {
		t.Fatalf("unexpected genesis transactions %q", genesis.Transactions)
	}
	if !genesis.Header.PrevHash.IsZero() {
		t.Fatalf("expected a zero previous hash, got %s", genesis.Header.PrevHash)
	}
	if chain.Difficulty() != 2 || genesis.Header.Difficulty != 2 {
		t.Fatalf("expected difficulty 2, got %d (genesis %d)", chain.Difficulty(), genesis.Header.Difficulty)
	}
	if chain.LastBlock() != genesis {
		t.Fatalf("LastBlock of a new chain isn't the genesis block")
	}
}

func TestAddBlock(t *testing.T) {
	chain := newTestChain(t, 4, 0)
	err := chain.AddBlock([]string{"a", "b"})
	if err != nil {
		t.Fatalf("AddBlock: unexpected error: %s", err)
	}
	if chain.Len() != 2 {
		t.Fatalf("expected 2 blocks, got %d", chain.Len())
	}
	blocks := chain.Blocks()
	if blocks[1].Header.PrevHash != *blocks[0].Hash {
		t.Fatalf("block 1 previous hash %s doesn't match genesis hash %s",
			blocks[1].Header.PrevHash, blocks[0].Hash)
	}
	if chain.LastBlock() != blocks[1] {
		t.Fatalf("LastBlock isn't the appended block")
	}
	if len(blocks[1].Transactions) != 2 || blocks[1].Transactions[0] != "a" || blocks[1].Transactions[1] != "b" {
		t.Fatalf("unexpected transactions %q", blocks[1].Transactions)
	}
	if !pow.CheckProofOfWork(blocks[1].Hash, 4) {
		t.Fatalf("hash %s doesn't satisfy difficulty 4", blocks[1].Hash)
	}
}

func TestAddMultipleBlocksKeepsLinks(t *testing.T) {
	chain := newTestChain(t, 3, 5)
	if chain.Len() != 6 {
		t.Fatalf("expected 6 blocks, got %d", chain.Len())
	}
	blocks := chain.Blocks()
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Header.PrevHash != *blocks[i-1].Hash {
			t.Fatalf("block %d doesn't link to block %d", i, i-1)
		}
	}
	if blocks[2].Transactions[0] != "transaction2" {
		t.Fatalf("unexpected transactions in block 2: %q", blocks[2].Transactions)
	}
	if err := chain.Validate(); err != nil {
		t.Fatalf("Validate: unexpected error: %s", err)
	}
}

func TestAddBlockEmptyChain(t *testing.T) {
	chain := &Chain{difficulty: 1}
	if chain.LastBlock() != nil {
		t.Fatalf("LastBlock of an empty chain isn't nil")
	}
	err := chain.AddBlock([]string{"a"})
	if !errors.Is(err, ErrEmptyChain) {
		t.Fatalf("expected ErrEmptyChain, got %v", err)
	}
}

func TestAddBlockFailureLeavesChainUnchanged(t *testing.T) {
	chain := newTestChain(t, 0, 1)
	chain.difficulty = pow.MaxDifficulty
	chain.SetOptions(Options{MaxAttempts: 50})

	err := chain.AddBlock([]string{"never mined"})
	if !errors.Is(err, pow.ErrBudgetExhausted) {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}
	if chain.Len() != 2 {
		t.Fatalf("chain grew to %d blocks after a failed search", chain.Len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chain.SetOptions(Options{})
	err = chain.AddBlockWithContext(ctx, []string{"never mined"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if chain.Len() != 2 {
		t.Fatalf("chain grew to %d blocks after a cancelled search", chain.Len())
	}
}

func TestNewWithOptionsNotifiesObserver(t *testing.T) {
	observer := &recordingObserver{}
	chain, err := NewWithOptions(context.Background(), 1, &Options{Observer: observer})
	if err != nil {
		t.Fatalf("NewWithOptions: unexpected error: %s", err)
	}
	if len(observer.genesis) != 1 || observer.genesis[0] != chain.LastBlock() {
		t.Fatalf("expected one GenesisCreated event for the genesis block")
	}
	err = chain.AddBlock([]string{"a"})
	if err != nil {
		t.Fatalf("AddBlock: unexpected error: %s", err)
	}
	if len(observer.mined) != 2 || observer.mined[1] != chain.LastBlock() {
		t.Fatalf("expected BlockMined events for genesis and the new block, got %d", len(observer.mined))
	}
}

func TestNewWithOptionsBudgetExhausted(t *testing.T) {
	_, err := NewWithOptions(context.Background(), pow.MaxDifficulty, &Options{MaxAttempts: 5})
	if !errors.Is(err, pow.ErrBudgetExhausted) {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}
	_, err = New(pow.MaxDifficulty + 1)
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}

func collect(it *BlockIterator) []*model.Block {
	var blocks []*model.Block
	for it.Next() {
		blocks = append(blocks, it.Get())
	}
	return blocks
}

func TestIterators(t *testing.T) {
	chain := newTestChain(t, 2, 2)

	forward := collect(chain.Iterator())
	expectedTransactions := []string{GenesisTransaction, "transaction1", "transaction2"}
	if len(forward) != len(expectedTransactions) {
		t.Fatalf("expected %d blocks, got %d", len(expectedTransactions), len(forward))
	}
	for i, block := range forward {
		if block.Transactions[0] != expectedTransactions[i] {
			t.Errorf("forward block %d: expected %q, got %q", i, expectedTransactions[i], block.Transactions[0])
		}
	}

	reverse := collect(chain.ReverseIterator())
	if len(reverse) != len(forward) {
		t.Fatalf("reverse iteration returned %d blocks, forward %d", len(reverse), len(forward))
	}
	for i := range forward {
		if reverse[len(reverse)-1-i] != forward[i] {
			t.Fatalf("reversed forward iteration differs from reverse iteration at %d:\n%s\n%s",
				i, spew.Sdump(forward), spew.Sdump(reverse))
		}
	}
}

func TestIteratorsAreIndependent(t *testing.T) {
	chain := newTestChain(t, 1, 2)

	first := chain.Iterator()
	if first.Get() != nil {
		t.Fatalf("Get before Next returned a block")
	}
	first.Next()
	second := chain.Iterator()
	second.Next()
	second.Next()
	if first.Get() != chain.Blocks()[0] || second.Get() != chain.Blocks()[1] {
		t.Fatalf("iterators share their position")
	}

	// Iterators see the chain as it was when they were created.
	snapshot := chain.ReverseIterator()
	err := chain.AddBlock([]string{"later"})
	if err != nil {
		t.Fatalf("AddBlock: unexpected error: %s", err)
	}
	visited := collect(snapshot)
	if len(visited) != 3 || visited[0].Transactions[0] != "transaction2" {
		t.Fatalf("snapshot iterator visited %d blocks starting at %q", len(visited), visited[0].Transactions)
	}
	if snapshot.Next() || snapshot.Get() != nil {
		t.Fatalf("exhausted iterator returned another block")
	}
	if len(collect(chain.Iterator())) != 4 {
		t.Fatalf("a new iterator doesn't see the appended block")
	}
}

func TestClone(t *testing.T) {
	chain := newTestChain(t, 1, 1)
	clone := chain.Clone()
	if clone.Len() != chain.Len() || clone.Difficulty() != chain.Difficulty() {
		t.Fatalf("clone has %d blocks at difficulty %d, original %d at %d",
			clone.Len(), clone.Difficulty(), chain.Len(), chain.Difficulty())
	}
	for i, block := range chain.Blocks() {
		cloned := clone.Blocks()[i]
		if cloned == block || !cloned.Equal(block) {
			t.Fatalf("block %d wasn't deep copied", i)
		}
	}

	err := clone.AddBlock([]string{"only in clone"})
	if err != nil {
		t.Fatalf("AddBlock: unexpected error: %s", err)
	}
	if chain.Len() != 2 {
		t.Fatalf("adding to the clone changed the original")
	}
}

func TestFromBlocks(t *testing.T) {
	original := newTestChain(t, 2, 2)
	rebuilt, err := FromBlocks(original.Difficulty(), original.Clone().Blocks(), nil)
	if err != nil {
		t.Fatalf("FromBlocks: unexpected error: %s", err)
	}
	if rebuilt.Len() != original.Len() || !rebuilt.LastBlock().Equal(original.LastBlock()) {
		t.Fatalf("rebuilt chain differs from the original")
	}
	err = rebuilt.AddBlock([]string{"next"})
	if err != nil {
		t.Fatalf("AddBlock on a rebuilt chain: unexpected error: %s", err)
	}

	_, err = FromBlocks(2, nil, nil)
	if !errors.Is(err, ErrEmptyChain) {
		t.Fatalf("no blocks: expected ErrEmptyChain, got %v", err)
	}
	_, err = FromBlocks(pow.MaxDifficulty+1, original.Blocks(), nil)
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("difficulty too high: expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestValidateBlocks(t *testing.T) {
	base := newTestChain(t, 4, 2)

	tests := []struct {
		name        string
		tamper      func(blocks []*model.Block)
		expectedErr error
	}{
		{"genesis prev hash", func(blocks []*model.Block) {
			blocks[0].Header.PrevHash[0] = 1
		}, ErrInvalidGenesis},
		{"genesis transactions", func(blocks []*model.Block) {
			blocks[0].Transactions = []string{"not genesis"}
		}, ErrInvalidGenesis},
		{"broken link", func(blocks []*model.Block) {
			blocks[2].Header.PrevHash = *blocks[0].Hash
		}, ErrBrokenLink},
		{"transactions changed", func(blocks []*model.Block) {
			blocks[1].Transactions[0] = "forged"
		}, ErrHashMismatch},
		{"nonce changed", func(blocks []*model.Block) {
			blocks[2].Header.Nonce++
		}, ErrHashMismatch},
		{"missing hash", func(blocks []*model.Block) {
			blocks[1].Hash = nil
		}, ErrHashMismatch},
		{"difficulty raised", func(blocks []*model.Block) {
			blocks[1].Header.Difficulty = pow.MaxDifficulty
		}, ErrInsufficientWork},
	}
	for _, test := range tests {
		blocks := base.Clone().Blocks()
		test.tamper(blocks)
		err := ValidateBlocks(blocks)
		if !errors.Is(err, test.expectedErr) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expectedErr, err)
		}
	}

	if err := ValidateBlocks(base.Blocks()); err != nil {
		t.Fatalf("untampered blocks: unexpected error: %s", err)
	}
}
