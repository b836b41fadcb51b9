// Package blockhashing computes block digests.
//
// A block's pre-image is the text
//
//	decimal(timestamp) || hex(prevHash) || decimal(nonce) || concat(transactions)
//
// hashed with SHA-256. Transactions are concatenated without separators, so
// ["a", "bc"] and ["ab", "c"] share a pre-image.
package blockhashing

import (
	"crypto/sha256"
	"hash"
	"strconv"

	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/pkg/errors"
)

// HashWriter is used to incrementally hash data without concatenating all of
// the data to a single buffer. It exposes an io.Writer api and a Finalize
// function to get the resulting hash.
type HashWriter struct {
	hash.Hash
}

// NewHashWriter returns a HashWriter backed by SHA-256.
func NewHashWriter() HashWriter {
	return HashWriter{sha256.New()}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// hash.Hash promises that Write never returns an error.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// InfallibleWriteString writes the bytes of s.
func (h HashWriter) InfallibleWriteString(s string) {
	h.InfallibleWrite([]byte(s))
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *model.DomainHash {
	var sum model.DomainHash
	copy(sum[:], h.Sum(nil))
	return &sum
}

// BlockHash returns the digest of header and transactions.
func BlockHash(header *model.BlockHeader, transactions []string) *model.DomainHash {
	writer := NewHashWriter()
	writer.InfallibleWriteString(strconv.FormatUint(header.Timestamp, 10))
	writer.InfallibleWriteString(header.PrevHash.String())
	writer.InfallibleWriteString(strconv.FormatUint(header.Nonce, 10))
	for _, transaction := range transactions {
		writer.InfallibleWriteString(transaction)
	}
	return writer.Finalize()
}

// PreImage returns the exact bytes BlockHash digests. Useful for debugging
// and for callers that need to hash the same data elsewhere.
func PreImage(header *model.BlockHeader, transactions []string) []byte {
	preImage := make([]byte, 0, 128)
	preImage = strconv.AppendUint(preImage, header.Timestamp, 10)
	preImage = append(preImage, header.PrevHash.String()...)
	preImage = strconv.AppendUint(preImage, header.Nonce, 10)
	for _, transaction := range transactions {
		preImage = append(preImage, transaction...)
	}
	return preImage
}
