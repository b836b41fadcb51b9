package main

import (
	"os"

	"github.com/kaspanet/minichain/app"
)

func main() {
	if err := app.StartApp(); err != nil {
		os.Exit(1)
	}
}
