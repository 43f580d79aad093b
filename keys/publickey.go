// Package keys implements the public key side of the wallet SDK: parsing
// keys from their hex forms, projecting them to the x-only
// representation, deriving network addresses and computing short key
// fingerprints.
package keys

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/kaspanet/kaswallet/address"
	"github.com/kaspanet/kaswallet/network"
	"github.com/lightningnetwork/lnd/fn/v2"
)

var (
	// ErrInvalidKeyFormat is returned when a hex string parses neither
	// as a full public key nor as a 32-byte x-only key.
	ErrInvalidKeyFormat = errors.New("invalid public key format")

	// ErrNotFullKey is returned when an operation needs the full public
	// key but the instance was built from x-only data. The parity bit
	// cannot be recovered from an x-only key, so no reconstruction is
	// attempted.
	ErrNotFullKey = errors.New("public key does not carry a full " +
		"ECDSA form")
)

// fingerprintLen is the number of leading hash bytes kept in a key
// fingerprint.
const fingerprintLen = 4

// PublicKey is a verification key in one or two representations: the
// x-only projection, which is always present, and the full serialized
// point, which is only present when the key was built from a full form.
type PublicKey struct {
	xonly *XOnlyPublicKey
	full  fn.Option[*btcec.PublicKey]
}

// ParsePublicKey parses a hex-encoded public key. A full key (33-byte
// compressed or 65-byte uncompressed) is attempted first, falling back
// to a 32-byte x-only key.
func ParsePublicKey(keyHex string) (*PublicKey, error) {
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}

	if full, err := btcec.ParsePubKey(raw); err == nil {
		return FromFullKey(full), nil
	}

	xonly, err := schnorr.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}

	return &PublicKey{
		xonly: &XOnlyPublicKey{key: xonly},
	}, nil
}

// FromFullKey wraps a full public key, deriving its x-only projection.
func FromFullKey(full *btcec.PublicKey) *PublicKey {
	return &PublicKey{
		xonly: xOnlyProjection(full),
		full:  fn.Some(full),
	}
}

// XOnly returns the x-only projection of the key. Every key has one, so
// this cannot fail.
func (p *PublicKey) XOnly() *XOnlyPublicKey {
	return p.xonly
}

// Full returns the full public key, or ErrNotFullKey when the instance
// was built from x-only data.
func (p *PublicKey) Full() (*btcec.PublicKey, error) {
	return p.full.UnwrapOrErr(ErrNotFullKey)
}

// Address derives the schnorr pay-to-pubkey address of the key on the
// given network. The payload is the 32-byte x-only serialization, so
// this works for every key.
func (p *PublicKey) Address(netType network.Type) (*address.Address, error) {
	return p.xonly.Address(netType)
}

// AddressECDSA derives the ECDSA pay-to-pubkey address of the key on
// the given network. The payload is the 33-byte compressed
// serialization, so a full key is required.
func (p *PublicKey) AddressECDSA(netType network.Type) (*address.Address,
	error) {

	full, err := p.Full()
	if err != nil {
		return nil, err
	}

	return address.New(
		netType.Prefix(), address.VersionPubKeyECDSA,
		full.SerializeCompressed(),
	)
}

// Fingerprint computes the short key fingerprint: the hex form of the
// first four bytes of RIPEMD160(SHA256(compressed serialization)). The
// hash input depends on the parity bit, so keys without a full form
// have no fingerprint and None is returned.
func (p *PublicKey) Fingerprint() fn.Option[string] {
	return fn.MapOption(func(full *btcec.PublicKey) string {
		digest := btcutil.Hash160(full.SerializeCompressed())
		return hex.EncodeToString(digest[:fingerprintLen])
	})(p.full)
}

// String returns the hex form of the key: the compressed full
// serialization when available, the x-only serialization otherwise.
func (p *PublicKey) String() string {
	return fn.ElimOption(p.full,
		p.xonly.String,
		func(full *btcec.PublicKey) string {
			return hex.EncodeToString(full.SerializeCompressed())
		},
	)
}

// xOnlyProjection drops the parity bit of a full key. The result always
// deserializes, since it came straight from a valid point.
func xOnlyProjection(full *btcec.PublicKey) *XOnlyPublicKey {
	lifted, err := schnorr.ParsePubKey(schnorr.SerializePubKey(full))
	if err != nil {
		panic(fmt.Sprintf("x-only projection of valid key failed: %v",
			err))
	}

	return &XOnlyPublicKey{key: lifted}
}
