/*
Minichain is a single-node hash chain sealed by proof of work and kept in an
embedded leveldb database.

Every block commits to the hash of the block before it and is mined by
searching nonces until its SHA-256 hash starts with the configured number of
zero bits. The whole chain is stored as one record and is written back on
exit.

Usage:

	minichain [OPTIONS]

For an up-to-date help message:

	minichain --help

Without options minichain opens (or creates) ./blockchain_db and shows a menu
for adding blocks of random placeholder transactions and listing the chain.
Use -n to mine a fixed number of blocks and exit instead.

The long form of all option flags (except -C) can be specified in a
configuration file, ./minichain.conf by default. The -C (--configfile) flag
can be used to override this location.
*/
package main
