package app

import (
	"fmt"
	"math/rand"
)

// transactionGenerator makes placeholder transactions for new blocks.
type transactionGenerator struct {
	random *rand.Rand
	min    int
	max    int
}

func newTransactionGenerator(seed int64, min, max int) *transactionGenerator {
	return &transactionGenerator{
		random: rand.New(rand.NewSource(seed)),
		min:    min,
		max:    max,
	}
}

// generate returns between min and max transactions, both inclusive, named
// "transaction 0", "transaction 1" and so on.
func (g *transactionGenerator) generate() []string {
	count := g.min + g.random.Intn(g.max-g.min+1)
	transactions := make([]string, count)
	for i := range transactions {
		transactions[i] = fmt.Sprintf("transaction %d", i)
	}
	return transactions
}
