// Package network models the closed set of supported network types and
// the composite network identifiers that address a single network
// instance, optionally disambiguated by a numeric suffix.
package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaspanet/kaswallet/address"
	"github.com/lightningnetwork/lnd/fn/v2"
)

var (
	// ErrInvalidNetworkType is returned when a network type token is
	// not part of the supported set.
	ErrInvalidNetworkType = errors.New("invalid network type")

	// ErrSuffixRequired is returned when a network type that has no
	// single canonical instance is resolved without a suffix.
	ErrSuffixRequired = errors.New("network suffix required for this " +
		"network")

	// ErrInvalidNetworkID is returned when a composite network
	// identifier string cannot be parsed.
	ErrInvalidNetworkID = errors.New("invalid network id")
)

// Type enumerates the supported network types.
type Type uint8

const (
	// Mainnet is the main network. It is the only network type with a
	// single canonical instance.
	Mainnet Type = iota

	// Testnet is the public test network type. Multiple test networks
	// may run concurrently, so an identifier needs a suffix.
	Testnet

	// Devnet is the development network type.
	Devnet

	// Simnet is the simulation network type.
	Simnet
)

// ParseType parses a network type token against the supported set.
func ParseType(token string) (Type, error) {
	switch strings.ToLower(token) {
	case "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	case "devnet":
		return Devnet, nil
	case "simnet":
		return Simnet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidNetworkType, token)
	}
}

// Params returns the network parameters of the type.
func (t Type) Params() *Params {
	switch t {
	case Testnet:
		return &TestnetParams
	case Devnet:
		return &DevnetParams
	case Simnet:
		return &SimnetParams
	default:
		return &MainnetParams
	}
}

// Prefix returns the address prefix used on networks of this type.
func (t Type) Prefix() address.Prefix {
	return t.Params().Prefix
}

// RequiresSuffix reports whether identifiers of this type need a
// numeric suffix to name a concrete network instance.
func (t Type) RequiresSuffix() bool {
	return t != Mainnet
}

// String returns the canonical name of the network type.
func (t Type) String() string {
	return t.Params().Name
}

// ID identifies a concrete network instance: a network type plus, for
// types without a canonical instance, a numeric suffix. IDs are values
// and never mutated after construction.
type ID struct {
	netType Type
	suffix  fn.Option[uint32]
}

// NewID builds an identifier carrying an explicit suffix.
func NewID(netType Type, suffix uint32) ID {
	return ID{
		netType: netType,
		suffix:  fn.Some(suffix),
	}
}

// IDFromType builds the canonical, suffix-free identifier of a network
// type. It fails with ErrSuffixRequired for types that need one.
func IDFromType(netType Type) (ID, error) {
	if netType.RequiresSuffix() {
		return ID{}, fmt.Errorf("%w: %v", ErrSuffixRequired, netType)
	}

	return ID{netType: netType}, nil
}

// ResolveID maps a network type token plus an optional suffix to a
// network identifier. The canonical identifier is attempted first, so a
// suffix passed alongside an inherently unique type is ignored rather
// than rejected.
func ResolveID(token string, suffix fn.Option[uint32]) (ID, error) {
	netType, err := ParseType(token)
	if err != nil {
		return ID{}, err
	}

	id, err := IDFromType(netType)
	if err == nil {
		return id, nil
	}

	s, err := suffix.UnwrapOrErr(fmt.Errorf("%w: %v", ErrSuffixRequired,
		netType))
	if err != nil {
		return ID{}, err
	}

	return NewID(netType, s), nil
}

// ParseID parses the string form of an identifier, e.g. "mainnet" or
// "testnet-10".
func ParseID(s string) (ID, error) {
	token, suffixPart, found := strings.Cut(s, "-")
	if !found {
		return ResolveID(token, fn.None[uint32]())
	}

	suffix, err := strconv.ParseUint(suffixPart, 10, 32)
	if err != nil {
		return ID{}, fmt.Errorf("%w: bad suffix %q: %v",
			ErrInvalidNetworkID, suffixPart, err)
	}

	return ResolveID(token, fn.Some(uint32(suffix)))
}

// Type returns the network type of the identifier.
func (id ID) Type() Type {
	return id.netType
}

// Suffix returns the numeric suffix, if the identifier carries one.
func (id ID) Suffix() fn.Option[uint32] {
	return id.suffix
}

// Prefix returns the address prefix of the identified network.
func (id ID) Prefix() address.Prefix {
	return id.netType.Prefix()
}

// String returns the canonical string form: the type name, plus the
// suffix separated by a dash when present.
func (id ID) String() string {
	name := id.netType.String()

	return fn.ElimOption(id.suffix,
		func() string { return name },
		func(suffix uint32) string {
			return fmt.Sprintf("%s-%d", name, suffix)
		},
	)
}
