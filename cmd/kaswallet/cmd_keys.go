package main

import (
	"errors"
	"fmt"

	"github.com/kaspanet/kaswallet/address"
	"github.com/kaspanet/kaswallet/keys"
	"github.com/kaspanet/kaswallet/network"
	"github.com/urfave/cli"
)

var addressCommand = cli.Command{
	Name:      "address",
	Category:  "Keys",
	Usage:     "Derive the address of a public key.",
	ArgsUsage: "pubkey_hex",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "the network type the address is for",
			Value: "mainnet",
		},
		cli.BoolFlag{
			Name: "ecdsa",
			Usage: "derive the ECDSA address instead of the " +
				"schnorr one; requires a full public key",
		},
	},
	Action: deriveAddress,
}

func deriveAddress(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "address")
	}

	netType, err := network.ParseType(ctx.String("network"))
	if err != nil {
		return err
	}

	key, err := keys.ParsePublicKey(ctx.Args().First())
	if err != nil {
		return err
	}

	var addr *address.Address
	if ctx.Bool("ecdsa") {
		addr, err = key.AddressECDSA(netType)
	} else {
		addr, err = key.Address(netType)
	}
	if err != nil {
		return err
	}

	fmt.Println(addr)

	return nil
}

var fingerprintCommand = cli.Command{
	Name:      "fingerprint",
	Category:  "Keys",
	Usage:     "Compute the 4-byte fingerprint of a full public key.",
	ArgsUsage: "pubkey_hex",
	Action:    fingerprint,
}

func fingerprint(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "fingerprint")
	}

	key, err := keys.ParsePublicKey(ctx.Args().First())
	if err != nil {
		return err
	}

	fp, err := key.Fingerprint().UnwrapOrErr(
		errors.New("x-only public keys have no fingerprint"),
	)
	if err != nil {
		return err
	}

	fmt.Println(fp)

	return nil
}

var xOnlyCommand = cli.Command{
	Name:      "xonly",
	Category:  "Keys",
	Usage:     "Project a public key to its x-only form.",
	ArgsUsage: "pubkey_hex",
	Action:    xOnly,
}

func xOnly(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "xonly")
	}

	key, err := keys.ParsePublicKey(ctx.Args().First())
	if err != nil {
		return err
	}

	fmt.Println(key.XOnly())

	return nil
}
