package chain

import "github.com/kaspanet/minichain/domain/chain/model"

// BlockIterator walks a fixed snapshot of a chain's blocks. Blocks appended
// after the iterator was created aren't visited.
type BlockIterator struct {
	blocks  []*model.Block
	reverse bool
	next    int
	current *model.Block
}

// Iterator returns a new iterator from genesis to tip.
func (c *Chain) Iterator() *BlockIterator {
	return &BlockIterator{blocks: c.blocks[:len(c.blocks):len(c.blocks)]}
}

// ReverseIterator returns a new iterator from tip to genesis.
func (c *Chain) ReverseIterator() *BlockIterator {
	return &BlockIterator{blocks: c.blocks[:len(c.blocks):len(c.blocks)], reverse: true}
}

// Next advances the iterator and returns whether there is a block to Get.
func (it *BlockIterator) Next() bool {
	if it.next >= len(it.blocks) {
		it.current = nil
		return false
	}
	index := it.next
	if it.reverse {
		index = len(it.blocks) - 1 - it.next
	}
	it.current = it.blocks[index]
	it.next++
	return true
}

// Get returns the block the iterator points to. It returns nil before the
// first call to Next and after Next returned false.
func (it *BlockIterator) Get() *model.Block {
	return it.current
}
