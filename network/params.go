package network

import (
	"github.com/kaspanet/kaswallet/address"
)

// Params couples the address prefix of a network with the default ports
// of the wRPC interfaces a node exposes on that network.
type Params struct {
	// Name is the canonical name of the network type.
	Name string

	// Net is the network type these parameters belong to.
	Net Type

	// Prefix is the address prefix used on this network.
	Prefix address.Prefix

	// DefaultBorshRPCPort is the default port of the borsh-encoded wRPC
	// interface.
	DefaultBorshRPCPort string

	// DefaultJSONRPCPort is the default port of the json-encoded wRPC
	// interface.
	DefaultJSONRPCPort string
}

// MainnetParams contains the parameters of the main network.
var MainnetParams = Params{
	Name:                "mainnet",
	Net:                 Mainnet,
	Prefix:              address.PrefixMainnet,
	DefaultBorshRPCPort: "17110",
	DefaultJSONRPCPort:  "18110",
}

// TestnetParams contains the parameters of the test networks.
var TestnetParams = Params{
	Name:                "testnet",
	Net:                 Testnet,
	Prefix:              address.PrefixTestnet,
	DefaultBorshRPCPort: "17210",
	DefaultJSONRPCPort:  "18210",
}

// SimnetParams contains the parameters of the simulation networks.
var SimnetParams = Params{
	Name:                "simnet",
	Net:                 Simnet,
	Prefix:              address.PrefixSimnet,
	DefaultBorshRPCPort: "17510",
	DefaultJSONRPCPort:  "18510",
}

// DevnetParams contains the parameters of the development networks.
var DevnetParams = Params{
	Name:                "devnet",
	Net:                 Devnet,
	Prefix:              address.PrefixDevnet,
	DefaultBorshRPCPort: "17610",
	DefaultJSONRPCPort:  "18610",
}
