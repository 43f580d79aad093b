package address

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVersion is returned when an address is constructed or
	// decoded with a version byte outside the supported set.
	ErrUnknownVersion = errors.New("unknown address version")

	// ErrInvalidPayload is returned when the payload length does not
	// match the expected length for the address version.
	ErrInvalidPayload = errors.New("invalid address payload length")
)

// Prefix is the human readable part of an address. It identifies the
// network the address belongs to and is covered by the checksum.
type Prefix string

const (
	// PrefixMainnet is the address prefix of the main network.
	PrefixMainnet Prefix = "kaspa"

	// PrefixTestnet is the address prefix of the test networks.
	PrefixTestnet Prefix = "kaspatest"

	// PrefixDevnet is the address prefix of the development networks.
	PrefixDevnet Prefix = "kaspadev"

	// PrefixSimnet is the address prefix of the simulation networks.
	PrefixSimnet Prefix = "kaspasim"
)

// Version is the version byte of an address. It determines how the
// payload is interpreted when building the output script.
type Version byte

const (
	// VersionPubKey is the version of a schnorr pay-to-pubkey address.
	// The payload is a 32-byte x-only public key.
	VersionPubKey Version = 0x00

	// VersionPubKeyECDSA is the version of an ECDSA pay-to-pubkey
	// address. The payload is a 33-byte compressed public key.
	VersionPubKeyECDSA Version = 0x01

	// VersionScriptHash is the version of a pay-to-script-hash address.
	// The payload is a 32-byte script hash.
	VersionScriptHash Version = 0x08
)

// payloadLen returns the expected payload length for the version.
func (v Version) payloadLen() (int, error) {
	switch v {
	case VersionPubKey, VersionScriptHash:
		return 32, nil
	case VersionPubKeyECDSA:
		return 33, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownVersion, v)
	}
}

// Address is an immutable (prefix, version, payload) triple. The textual
// form is produced by String and parsed back by Decode.
type Address struct {
	prefix  Prefix
	version Version
	payload []byte
}

// New constructs an address from its parts, validating the payload
// length against the version.
func New(prefix Prefix, version Version, payload []byte) (*Address, error) {
	expected, err := version.payloadLen()
	if err != nil {
		return nil, err
	}
	if len(payload) != expected {
		return nil, fmt.Errorf("%w: version %d expects %d bytes, "+
			"got %d", ErrInvalidPayload, version, expected,
			len(payload))
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)

	return &Address{
		prefix:  prefix,
		version: version,
		payload: buf,
	}, nil
}

// Prefix returns the network prefix of the address.
func (a *Address) Prefix() Prefix {
	return a.prefix
}

// Version returns the version byte of the address.
func (a *Address) Version() Version {
	return a.version
}

// Payload returns a copy of the raw address payload.
func (a *Address) Payload() []byte {
	buf := make([]byte, len(a.payload))
	copy(buf, a.payload)
	return buf
}

// String returns the checksummed textual encoding of the address,
// including the network prefix.
func (a *Address) String() string {
	return encode(string(a.prefix), a.version, a.payload)
}

// Decode parses a textual address back into its parts and verifies the
// checksum.
func Decode(addr string) (*Address, error) {
	prefix, version, payload, err := decode(addr)
	if err != nil {
		return nil, err
	}

	return New(Prefix(prefix), version, payload)
}
