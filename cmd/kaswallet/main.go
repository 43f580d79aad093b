package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[kaswallet] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "kaswallet"
	app.Usage = "derive wallet addresses and resolve wRPC endpoints"
	app.Commands = []cli.Command{
		addressCommand,
		fingerprintCommand,
		xOnlyCommand,
		resolveCommand,
		connectCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
