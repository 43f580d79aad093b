package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/kaspanet/kaswallet/address"
	"github.com/kaspanet/kaswallet/network"
)

// XOnlyPublicKey is the 32-byte x-only representation of a public key,
// with the parity bit stripped per the schnorr convention. It is used
// as the payload of schnorr pay-to-pubkey addresses.
type XOnlyPublicKey struct {
	key *btcec.PublicKey
}

// ParseXOnlyPublicKey parses a hex-encoded 32-byte x-only key.
func ParseXOnlyPublicKey(keyHex string) (*XOnlyPublicKey, error) {
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}

	key, err := schnorr.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}

	return &XOnlyPublicKey{key: key}, nil
}

// XOnlyPublicKeyFromAddress recovers the x-only key serving as the
// payload of a schnorr pay-to-pubkey address. This is the inverse of
// deriving the address from the key.
func XOnlyPublicKeyFromAddress(addr *address.Address) (*XOnlyPublicKey,
	error) {

	if addr.Version() != address.VersionPubKey {
		return nil, fmt.Errorf("%w: address version %d carries no "+
			"x-only key", ErrInvalidKeyFormat, addr.Version())
	}

	key, err := schnorr.ParsePubKey(addr.Payload())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}

	return &XOnlyPublicKey{key: key}, nil
}

// Serialize returns the 32-byte x-only serialization.
func (x *XOnlyPublicKey) Serialize() []byte {
	return schnorr.SerializePubKey(x.key)
}

// Address derives the schnorr pay-to-pubkey address of the key on the
// given network.
func (x *XOnlyPublicKey) Address(netType network.Type) (*address.Address,
	error) {

	return address.New(
		netType.Prefix(), address.VersionPubKey, x.Serialize(),
	)
}

// String returns the hex form of the x-only serialization.
func (x *XOnlyPublicKey) String() string {
	return hex.EncodeToString(x.Serialize())
}
