package model

// Block is a mined header, its ordered opaque transactions and the digest
// sealing them. Hash is nil until mining completes.
type Block struct {
	Header       *BlockHeader
	Transactions []string
	Hash         *DomainHash
}

// Clone returns a deep copy of the block.
func (block *Block) Clone() *Block {
	transactionsClone := make([]string, len(block.Transactions))
	copy(transactionsClone, block.Transactions)

	return &Block{
		Header:       block.Header.Clone(),
		Transactions: transactionsClone,
		Hash:         block.Hash.Clone(),
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = Block{&BlockHeader{}, []string{}, &DomainHash{}}

// Equal returns whether block equals to other
func (block *Block) Equal(other *Block) bool {
	if block == nil || other == nil {
		return block == other
	}
	if !block.Header.Equal(other.Header) {
		return false
	}
	if !block.Hash.Equal(other.Hash) {
		return false
	}
	if len(block.Transactions) != len(other.Transactions) {
		return false
	}
	for i, transaction := range block.Transactions {
		if transaction != other.Transactions[i] {
			return false
		}
	}
	return true
}

// PrevHashString returns the hex encoded previous block hash.
func (block *Block) PrevHashString() string {
	return block.Header.PrevHash.String()
}

// HashString returns the hex encoded block hash, or an empty string if the
// block wasn't mined yet.
func (block *Block) HashString() string {
	if block.Hash == nil {
		return ""
	}
	return block.Hash.String()
}
