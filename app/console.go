package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kaspanet/minichain/domain/chain"
	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/pkg/errors"
)

const menu = `Simple Block Chain
1. Add block
2. Show all blocks
3. Show all blocks (newest first)
0. Exit
`

const prompt = ">> "

// console runs the operator menu against a chain.
type console struct {
	chain        *chain.Chain
	lines        <-chan string
	quit         chan struct{}
	quitOnce     sync.Once
	out          io.Writer
	showPrompt   bool
	transactions *transactionGenerator
}

func newConsole(chain *chain.Chain, in io.Reader, out io.Writer, showPrompt bool,
	transactions *transactionGenerator) *console {

	quit := make(chan struct{})
	return &console{
		chain:        chain,
		lines:        readLines(in, quit),
		quit:         quit,
		out:          out,
		showPrompt:   showPrompt,
		transactions: transactions,
	}
}

// readLines delivers the lines of r on the returned channel, which is
// closed once r is exhausted or quit is closed. Reading happens on its own
// goroutine so that the menu can stop waiting for input when interrupted.
// A read that is already blocked in r only returns with the next line.
func readLines(r io.Reader, quit <-chan struct{}) <-chan string {
	lines := make(chan string)
	spawn(func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-quit:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Errorf("Error reading input: %s", err)
		}
	})
	return lines
}

// run shows the menu until the operator exits, input ends or ctx is
// cancelled.
func (c *console) run(ctx context.Context) error {
	defer c.stopReading()
	for {
		fmt.Fprint(c.out, menu)
		if c.showPrompt {
			fmt.Fprint(c.out, prompt)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-c.lines:
			if !ok {
				fmt.Fprintln(c.out)
				return nil
			}
		}

		switch strings.TrimSpace(line) {
		case "0":
			fmt.Fprintln(c.out, "exit!")
			return nil
		case "1":
			fmt.Fprintln(c.out, "add block")
			err := c.addBlock(ctx)
			if isCancellation(err) {
				return nil
			}
			if err != nil {
				log.Errorf("Couldn't add a block: %s", err)
				continue
			}
			fmt.Fprintln(c.out, "Block added")
		case "2":
			fmt.Fprintln(c.out, "show all blocks")
			c.showBlocks(c.chain.Iterator())
		case "3":
			fmt.Fprintln(c.out, "show all blocks, newest first")
			c.showBlocks(c.chain.ReverseIterator())
		}
	}
}

func (c *console) stopReading() {
	c.quitOnce.Do(func() {
		close(c.quit)
	})
}

// runBatch mines numBlocks blocks without asking anything.
func (c *console) runBatch(ctx context.Context, numBlocks uint64) error {
	for i := uint64(0); i < numBlocks; i++ {
		err := c.addBlock(ctx)
		if err != nil {
			return errors.Wrapf(err, "couldn't add block %d of %d", i+1, numBlocks)
		}
	}
	return nil
}

func (c *console) addBlock(ctx context.Context) error {
	return c.chain.AddBlockWithContext(ctx, c.transactions.generate())
}

func (c *console) showBlocks(it *chain.BlockIterator) {
	for it.Next() {
		writeBlock(c.out, it.Get())
	}
}

func writeBlock(w io.Writer, block *model.Block) {
	fmt.Fprintf(w, "timestamp: %d\n", block.Header.Timestamp)
	fmt.Fprintf(w, "previous hash: %s\n", block.PrevHashString())
	fmt.Fprintf(w, "current hash: %s\n", block.HashString())
	fmt.Fprintf(w, "Nonce: %d\n", block.Header.Nonce)
	fmt.Fprintf(w, "transactions (%d): %q\n", len(block.Transactions), block.Transactions)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
