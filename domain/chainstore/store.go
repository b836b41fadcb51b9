// Package chainstore persists a chain as one snapshot record in leveldb.
package chainstore

import (
	"context"

	"github.com/kaspanet/minichain/domain/chain"
	"github.com/kaspanet/minichain/domain/chain/utils/serialization"
	"github.com/kaspanet/minichain/infrastructure/db/database"
	"github.com/kaspanet/minichain/infrastructure/db/database/ldb"
	"github.com/kaspanet/minichain/infrastructure/logger"
	"github.com/pkg/errors"
)

// DefaultDifficulty is the difficulty fresh chains are mined at unless
// Options say otherwise. A chain replacing an unreadable stored one is
// always mined at DefaultDifficulty.
const DefaultDifficulty = 4

var snapshotKey = database.MakeBucket([]byte("chain")).Key([]byte("snapshot"))

// LoadStatus tells how Open obtained the store's chain.
type LoadStatus int

const (
	// LoadStatusLoaded means the chain was read from the database.
	LoadStatusLoaded LoadStatus = iota

	// LoadStatusCreated means there was no stored chain and a fresh one was
	// mined.
	LoadStatusCreated

	// LoadStatusReinitialized means the stored chain couldn't be decoded
	// or validated and was replaced by a fresh one. The stored record is
	// overwritten on the next Save.
	LoadStatusReinitialized
)

var loadStatusStrings = map[LoadStatus]string{
	LoadStatusLoaded:        "Loaded",
	LoadStatusCreated:       "Created",
	LoadStatusReinitialized: "Reinitialized",
}

func (status LoadStatus) String() string {
	s, ok := loadStatusStrings[status]
	if !ok {
		return "Unknown"
	}
	return s
}

// LoadResult describes what Open found in the database.
type LoadResult struct {
	Status LoadStatus

	// Cause is the decoding or validation error that made Open discard the
	// stored chain. It is nil unless Status is LoadStatusReinitialized.
	Cause error
}

// Options configure Open.
type Options struct {
	// Difficulty is used when there is no stored chain. Loaded chains keep
	// their stored difficulty and reinitialized ones use DefaultDifficulty.
	// Zero is a valid difficulty and is not replaced by the default, so
	// start from DefaultOptions when only ChainOptions need changing.
	Difficulty uint32

	// ChainOptions are attached to the chain, loaded or fresh.
	ChainOptions *chain.Options
}

// DefaultOptions returns the options Open uses.
func DefaultOptions() *Options {
	return &Options{Difficulty: DefaultDifficulty}
}

// Store owns a database handle and the single mutable chain persisted in
// it. Store isn't safe for concurrent use.
type Store struct {
	db         database.Database
	chain      *chain.Chain
	loadResult LoadResult
}

// Open opens or creates the database at path and loads the chain stored in
// it, creating a fresh one at DefaultDifficulty when there is none.
func Open(path string) (*Store, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions is Open with options. options may be nil.
func OpenWithOptions(path string, options *Options) (*Store, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "chainstore.Open")
	defer onEnd()

	if options == nil {
		options = DefaultOptions()
	}

	db, err := ldb.NewLevelDB(path)
	if err != nil {
		return nil, newError(ErrOpen, "open "+path, err)
	}

	store := &Store{db: db}
	err = store.load(options)
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			log.Errorf("Couldn't close the database at %s: %s", path, closeErr)
		}
		return nil, err
	}
	return store, nil
}

func (s *Store) load(options *Options) error {
	serializedChain, err := s.db.Get(snapshotKey)
	if database.IsNotFoundError(err) {
		log.Debugf("No chain found in the database, creating a new one")
		return s.createChain(options.Difficulty, options.ChainOptions, LoadResult{Status: LoadStatusCreated})
	}
	if err != nil {
		return newError(ErrOpen, "read snapshot", err)
	}

	loadedChain, err := decodeChain(serializedChain, options.ChainOptions)
	if err != nil {
		log.Warnf("The stored chain is unreadable and will be replaced by a new one: %s", err)
		return s.createChain(DefaultDifficulty, options.ChainOptions,
			LoadResult{Status: LoadStatusReinitialized, Cause: err})
	}

	s.chain = loadedChain
	s.loadResult = LoadResult{Status: LoadStatusLoaded}
	log.Debugf("Loaded a chain of %d blocks at difficulty %d", loadedChain.Len(), loadedChain.Difficulty())
	return nil
}

func decodeChain(serializedChain []byte, chainOptions *chain.Options) (*chain.Chain, error) {
	difficulty, blocks, err := serialization.DeserializeChainFromBytes(serializedChain)
	if err != nil {
		return nil, err
	}
	return chain.FromBlocks(difficulty, blocks, chainOptions)
}

func (s *Store) createChain(difficulty uint32, chainOptions *chain.Options, loadResult LoadResult) error {
	newChain, err := chain.NewWithOptions(context.Background(), difficulty, chainOptions)
	if err != nil {
		return newError(ErrOpen, "create chain", err)
	}
	s.chain = newChain
	s.loadResult = loadResult
	return nil
}

// LoadResult tells whether the chain was loaded, created or reinitialized.
func (s *Store) LoadResult() LoadResult {
	return s.loadResult
}

// Chain returns the chain owned by the store. Blocks added to it are
// persisted by the next Save.
func (s *Store) Chain() *chain.Chain {
	return s.chain
}

// CurrentChain returns a deep copy of the store's chain. Changes to the
// copy are never persisted.
func (s *Store) CurrentChain() *chain.Chain {
	return s.chain.Clone()
}

// Save overwrites the stored snapshot with the store's chain. The write is
// flushed to disk before Save returns. A chain above the snapshot limits
// fails with ErrSerialize and leaves the stored snapshot untouched.
func (s *Store) Save() error {
	serializedChain, err := serialization.SerializeChainToBytes(s.chain.Difficulty(), s.chain.Blocks())
	if err != nil {
		return newError(ErrSerialize, "save", err)
	}
	err = s.db.Put(snapshotKey, serializedChain)
	if err != nil {
		return newError(ErrStore, "save", err)
	}
	log.Debugf("Saved a chain of %d blocks (%d bytes)", s.chain.Len(), len(serializedChain))
	return nil
}

// Close closes the database. The store must not be used afterwards.
func (s *Store) Close() error {
	err := s.db.Close()
	if err != nil {
		return newError(ErrStore, "close", errors.WithStack(err))
	}
	return nil
}
