// Package main is the lighthouse-replay command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/lighthouse/cli"
)

func main() {
	if err := cli.NewApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
