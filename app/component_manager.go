package app

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/kaspanet/minichain/domain/chain"
	"github.com/kaspanet/minichain/domain/chainstore"
	"github.com/kaspanet/minichain/infrastructure/config"
	"github.com/kaspanet/minichain/util/random"
	"github.com/pkg/errors"
)

// ComponentManager is a wrapper for the chain store and the console driving
// it.
type ComponentManager struct {
	cfg     *config.Config
	store   *chainstore.Store
	console *console

	started, shutdown int32
}

// NewComponentManager opens the chain store described by cfg and prepares
// a console reading operator input from in and writing to out.
func NewComponentManager(cfg *config.Config, in io.Reader, out io.Writer, showPrompt bool) (
	*ComponentManager, error) {

	doesVersionFileExist, err := checkDatabaseVersion(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	store, err := chainstore.OpenWithOptions(cfg.DataDir, &chainstore.Options{
		Difficulty: cfg.Difficulty,
		ChainOptions: &chain.Options{
			MaxAttempts: cfg.MaxAttempts,
			Observer:    chain.LogObserver{},
		},
	})
	if err != nil {
		return nil, err
	}

	if !doesVersionFileExist {
		err := createDatabaseVersionFile(cfg.DataDir)
		if err != nil {
			closeErr := store.Close()
			if closeErr != nil {
				log.Errorf("Error closing the chain store: %s", closeErr)
			}
			return nil, err
		}
	}

	logLoadResult(store)

	transactions := newTransactionGenerator(transactionSeed(), cfg.MinTransactions, cfg.MaxTransactions)
	return &ComponentManager{
		cfg:     cfg,
		store:   store,
		console: newConsole(store.Chain(), in, out, showPrompt, transactions),
	}, nil
}

func transactionSeed() int64 {
	seed, err := random.Uint64()
	if err != nil {
		log.Warnf("Couldn't read a random seed, falling back to the clock: %s", err)
		return time.Now().UnixNano()
	}
	return int64(seed)
}

func logLoadResult(store *chainstore.Store) {
	loadResult := store.LoadResult()
	switch loadResult.Status {
	case chainstore.LoadStatusLoaded:
		log.Infof("Blockchain loaded from storage. Current block height: %d", store.Chain().Len())
	case chainstore.LoadStatusCreated:
		log.Infof("Created a new blockchain at difficulty %d", store.Chain().Difficulty())
	case chainstore.LoadStatusReinitialized:
		log.Warnf("The stored blockchain was discarded and a new one was created at difficulty %d: %s",
			store.Chain().Difficulty(), loadResult.Cause)
	}
}

// Run drives the chain until the operator exits or ctx is cancelled. In
// batch mode it mines the configured number of blocks instead.
func (a *ComponentManager) Run(ctx context.Context) error {
	// Already started?
	if atomic.AddInt32(&a.started, 1) != 1 {
		return errors.New("the component manager was already started")
	}

	log.Trace("Starting minichain")

	if a.cfg.BatchMode() {
		log.Infof("Mining %d blocks", a.cfg.NumBlocks)
		err := a.console.runBatch(ctx, a.cfg.NumBlocks)
		if isCancellation(err) {
			log.Warnf("Mining interrupted after %d blocks", a.store.Chain().Len())
			return nil
		}
		return err
	}

	return a.console.run(ctx)
}

// Stop saves the chain and closes the store.
func (a *ComponentManager) Stop() error {
	// Make sure this only happens once.
	if atomic.AddInt32(&a.shutdown, 1) != 1 {
		log.Infof("Minichain is already in the process of shutting down")
		return nil
	}

	log.Trace("Minichain shutting down")

	saveErr := a.store.Save()
	if saveErr != nil {
		log.Errorf("Error saving the blockchain: %s", saveErr)
	} else {
		log.Infof("Blockchain saved successfully. Total blocks: %d", a.store.Chain().Len())
	}

	closeErr := a.store.Close()
	if closeErr != nil {
		log.Errorf("Error closing the chain store: %s", closeErr)
	}

	if saveErr != nil {
		return saveErr
	}
	return closeErr
}
