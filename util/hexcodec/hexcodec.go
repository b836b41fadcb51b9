// Package hexcodec converts between raw bytes and lowercase hexadecimal
// text.
package hexcodec

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidHex is matched by every decoding failure.
var ErrInvalidHex = errors.New("invalid hex string")

// InvalidHexError describes why a string could not be decoded.
type InvalidHexError struct {
	// Offset is the index of the offending character, or the string
	// length when the length itself is odd.
	Offset int
	Reason string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", ErrInvalidHex, e.Reason, e.Offset)
}

// Is makes errors.Is(err, ErrInvalidHex) hold for every InvalidHexError.
func (e *InvalidHexError) Is(target error) bool {
	return target == ErrInvalidHex
}

// Encode returns two lowercase hex digits per byte of b.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// Decode is the inverse of Encode. Upper-case digits are accepted.
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.WithStack(&InvalidHexError{Offset: len(s), Reason: "odd length"})
	}
	decoded := make([]byte, hex.DecodedLen(len(s)))
	_, err := hex.Decode(decoded, []byte(s))
	if err != nil {
		var invalidByte hex.InvalidByteError
		if errors.As(err, &invalidByte) {
			return nil, errors.WithStack(&InvalidHexError{
				Offset: indexOfInvalidByte(s),
				Reason: fmt.Sprintf("invalid character %q", byte(invalidByte)),
			})
		}
		return nil, errors.WithStack(&InvalidHexError{Offset: len(s), Reason: err.Error()})
	}
	return decoded, nil
}

func indexOfInvalidByte(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'
		if !isDigit && !isLower && !isUpper {
			return i
		}
	}
	return len(s)
}
