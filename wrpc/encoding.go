// Package wrpc holds the wRPC wire-encoding enumeration and a thin
// websocket client handle used to open a transport session against a
// resolved node. The RPC call surface itself lives with the caller.
package wrpc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is returned when an encoding token is not part of
// the supported set.
var ErrInvalidEncoding = errors.New("invalid wrpc encoding")

// Encoding enumerates the wire encodings a wRPC interface can speak.
type Encoding uint8

const (
	// EncodingBorsh is the binary borsh encoding.
	EncodingBorsh Encoding = iota

	// EncodingJSON is the textual json encoding.
	EncodingJSON
)

// ParseEncoding parses an encoding token against the supported set.
func ParseEncoding(token string) (Encoding, error) {
	switch strings.ToLower(token) {
	case "borsh":
		return EncodingBorsh, nil
	case "json":
		return EncodingJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEncoding, token)
	}
}

// String returns the canonical token of the encoding.
func (e Encoding) String() string {
	if e == EncodingJSON {
		return "json"
	}

	return "borsh"
}
