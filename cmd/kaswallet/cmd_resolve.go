package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaspanet/kaswallet/network"
	"github.com/kaspanet/kaswallet/resolver"
	"github.com/kaspanet/kaswallet/wrpc"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/urfave/cli"
)

var resolverFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "encoding",
		Usage: "the wrpc wire encoding, either borsh or json",
		Value: "borsh",
	},
	cli.StringFlag{
		Name:  "network",
		Usage: "the network type to resolve an endpoint for",
		Value: "mainnet",
	},
	cli.UintFlag{
		Name: "network_suffix",
		Usage: "the numeric suffix selecting a concrete network " +
			"instance; required for every type but mainnet",
	},
	cli.StringSliceFlag{
		Name: "resolver_url",
		Usage: "a resolver service to query instead of the " +
			"built-in public pool; may be specified multiple " +
			"times",
	},
	cli.BoolFlag{
		Name:  "tls",
		Usage: "only accept TLS-terminated endpoints",
	},
}

var resolveCommand = cli.Command{
	Name:     "resolve",
	Category: "Nodes",
	Usage:    "Resolve a live wRPC endpoint for a network.",
	Flags: append(resolverFlags, cli.BoolFlag{
		Name:  "url_only",
		Usage: "print the endpoint url instead of the descriptor",
	}),
	Action: resolve,
}

func resolve(ctx *cli.Context) error {
	r, encoding, id, err := resolverFromFlags(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool("url_only") {
		url, err := r.GetURL(context.Background(), encoding, id)
		if err != nil {
			return err
		}

		fmt.Println(url)

		return nil
	}

	node, err := r.GetNode(context.Background(), encoding, id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")

	return enc.Encode(node)
}

var connectCommand = cli.Command{
	Name:     "connect",
	Category: "Nodes",
	Usage:    "Resolve an endpoint and verify a session can be opened.",
	Flags:    resolverFlags,
	Action:   connect,
}

func connect(ctx *cli.Context) error {
	r, encoding, id, err := resolverFromFlags(ctx)
	if err != nil {
		return err
	}

	client, err := r.Connect(context.Background(), encoding, id)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		return err
	}

	fmt.Printf("connected to %s\n", client.URL())

	return nil
}

func resolverFromFlags(ctx *cli.Context) (*resolver.Resolver, wrpc.Encoding,
	network.ID, error) {

	encoding, err := wrpc.ParseEncoding(ctx.String("encoding"))
	if err != nil {
		return nil, 0, network.ID{}, err
	}

	suffix := fn.None[uint32]()
	if ctx.IsSet("network_suffix") {
		suffix = fn.Some(uint32(ctx.Uint("network_suffix")))
	}

	id, err := network.ResolveID(ctx.String("network"), suffix)
	if err != nil {
		return nil, 0, network.ID{}, err
	}

	opts := []resolver.Option{resolver.WithTLS(ctx.Bool("tls"))}
	if urls := ctx.StringSlice("resolver_url"); len(urls) > 0 {
		opts = append(opts, resolver.WithURLs(urls))
	}

	return resolver.New(opts...), encoding, id, nil
}
