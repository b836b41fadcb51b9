package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

var (
	// The chain snapshot is a single record rewritten on every save, so the
	// caches stay small.
	defaultOptions = opt.Options{
		Compression:            opt.NoCompression,
		BlockCacheCapacity:     8 * opt.MiB,
		WriteBuffer:            4 * opt.MiB,
		DisableSeeksCompaction: true,
	}

	// Options is a function that returns a leveldb
	// opt.Options struct for opening a database.
	// It's defined as a variable for the sake of testing.
	Options = func() *opt.Options {
		return &defaultOptions
	}

	// syncWriteOptions makes every write durable before it returns.
	syncWriteOptions = &opt.WriteOptions{Sync: true}
)
