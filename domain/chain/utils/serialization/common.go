package serialization

import (
	"io"

	"github.com/kaspanet/minichain/domain/chain/model"
	"github.com/kaspanet/minichain/util/binaryserializer"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// WriteElement writes the little endian representation of element to w.
// Strings are written with a uint64 length prefix.
func WriteElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case uint32:
		return binaryserializer.PutUint32(w, e)

	case uint64:
		return binaryserializer.PutUint64(w, e)

	case string:
		return binaryserializer.PutString(w, e)

	case model.DomainHash:
		return binaryserializer.PutFixedBytes(w, e[:])

	case *model.DomainHash:
		return binaryserializer.PutFixedBytes(w, e[:])
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to. Strings longer than
// maxTransactionSize are rejected.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *string:
		rv, err := binaryserializer.String(r, maxTransactionSize)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *model.DomainHash:
		return binaryserializer.FixedBytes(r, e[:])
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}
